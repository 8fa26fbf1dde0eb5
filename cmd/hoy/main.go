package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yahya-m2000/hoy-go/internal/client"
	"github.com/yahya-m2000/hoy-go/internal/config"
	"github.com/yahya-m2000/hoy-go/internal/events"
	"github.com/yahya-m2000/hoy-go/internal/logging"
	"github.com/yahya-m2000/hoy-go/internal/services"
	"github.com/yahya-m2000/hoy-go/internal/storage"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", "", "SQLite path for session state (default: in-memory)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	var store storage.Store = storage.NewMemory()
	if *dbPath != "" {
		db, err := storage.NewSQLite(*dbPath)
		if err != nil {
			logger.Fatal("Failed to open session store", zap.Error(err))
		}
		defer db.Close()
		store = db
	}

	bus := events.NewBus()
	bus.Subscribe(events.AuthLogout, func(p events.Payload) {
		logger.Warn("Session ended", zap.String("reason", p.Reason))
	})

	c := client.New(cfg,
		client.WithStore(store),
		client.WithLogger(logger),
		client.WithBus(bus),
	)
	api := services.NewAPI(c, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, api, flag.Args()); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}

func run(ctx context.Context, api *services.API, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: hoy [flags] <login|search|me|bookings|featured>")
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: hoy login <email> <password>")
		}
		session, err := api.Auth.Login(ctx, services.Credentials{Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s %s (%s)\n", session.User.FirstName, session.User.LastName, session.User.Email)
		return nil

	case "search":
		filters := services.SearchFilters{}
		if len(args) > 1 {
			filters.City = args[1]
		}
		results, err := api.Properties.Search(ctx, filters)
		if err != nil {
			return err
		}
		return printJSON(results)

	case "featured":
		results, err := api.Properties.Featured(ctx)
		if err != nil {
			return err
		}
		return printJSON(results)

	case "me":
		profile, err := api.Users.Me(ctx)
		if err != nil {
			return err
		}
		if profile.Corrupted {
			fmt.Fprintln(os.Stderr, "Warning: profile does not match this session; sign in again")
		}
		return printJSON(profile)

	case "bookings":
		bookings, err := api.Bookings.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(bookings)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
