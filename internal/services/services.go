// Package services provides thin typed wrappers over the resilient client
// for each Hoy API resource. Wrappers only shape requests and unwrap the
// standard response envelope; resiliency concerns live below them.
package services

import (
	"encoding/json"
	"fmt"

	"github.com/yahya-m2000/hoy-go/internal/client"
	"github.com/yahya-m2000/hoy-go/internal/storage"
)

// API bundles all resource services sharing one client.
type API struct {
	Auth       *AuthService
	Properties *PropertiesService
	Bookings   *BookingsService
	Reviews    *ReviewsService
	Users      *UsersService
	Wishlist   *WishlistService
	Host       *HostService
}

// NewAPI creates the service bundle.
func NewAPI(c *client.Client, store storage.Store) *API {
	return &API{
		Auth:       &AuthService{client: c, store: store},
		Properties: &PropertiesService{client: c},
		Bookings:   &BookingsService{client: c},
		Reviews:    &ReviewsService{client: c},
		Users:      &UsersService{client: c},
		Wishlist:   &WishlistService{client: c},
		Host:       &HostService{client: c},
	}
}

// envelope is the standard API response shape: { success, data }.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// decode unwraps the response envelope into T.
func decode[T any](resp *client.Response) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode response envelope: %w", err)
	}
	return env.Data, nil
}
