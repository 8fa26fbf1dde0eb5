package services

import (
	"context"
	"fmt"

	"github.com/yahya-m2000/hoy-go/internal/client"
	"github.com/yahya-m2000/hoy-go/internal/storage"
)

// AuthService handles login, registration, logout, and password resets.
// All of its endpoints are public and exempt from circuit breaking.
type AuthService struct {
	client *client.Client
	store  storage.Store
}

// Login authenticates and persists the resulting session locally.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*Session, error) {
	resp, err := s.client.Post(ctx, &client.Request{
		Path:   "/auth/login",
		Body:   creds,
		Public: true,
	})
	if err != nil {
		return nil, err
	}

	session, err := decode[Session](resp)
	if err != nil {
		return nil, err
	}
	if err := s.persistSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account and persists the resulting session.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*Session, error) {
	resp, err := s.client.Post(ctx, &client.Request{
		Path:   "/auth/register",
		Body:   reg,
		Public: true,
	})
	if err != nil {
		return nil, err
	}

	session, err := decode[Session](resp)
	if err != nil {
		return nil, err
	}
	if err := s.persistSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout ends the session server-side and clears local session state. Local
// state is cleared even when the server call fails; a dead session must not
// linger on the device.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.Post(ctx, &client.Request{Path: "/auth/logout", Body: struct{}{}})

	for _, key := range []string{
		storage.KeyAccessToken,
		storage.KeyRefreshToken,
		storage.KeyCurrentUserID,
		storage.KeyHasValidAuthentication,
	} {
		if derr := s.store.Delete(ctx, key); derr != nil && err == nil {
			err = fmt.Errorf("clear session key %s: %w", key, derr)
		}
	}
	return err
}

// ForgotPassword requests a password reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.client.Post(ctx, &client.Request{
		Path:   "/auth/forgot-password",
		Body:   map[string]string{"email": email},
		Public: true,
	})
	return err
}

// ResetPassword completes a password reset with the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := s.client.Post(ctx, &client.Request{
		Path:   "/auth/reset-password",
		Body:   map[string]string{"token": token, "password": newPassword},
		Public: true,
	})
	return err
}

func (s *AuthService) persistSession(ctx context.Context, session *Session) error {
	if session.AccessToken == "" {
		return fmt.Errorf("auth response missing access token")
	}

	entries := map[string]string{
		storage.KeyAccessToken:            session.AccessToken,
		storage.KeyRefreshToken:           session.RefreshToken,
		storage.KeyCurrentUserID:          session.User.ID,
		storage.KeyHasValidAuthentication: "true",
	}
	for key, value := range entries {
		if err := s.store.Set(ctx, key, value); err != nil {
			return fmt.Errorf("persist session key %s: %w", key, err)
		}
	}
	return nil
}
