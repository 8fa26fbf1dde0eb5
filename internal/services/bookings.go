package services

import (
	"context"

	"github.com/yahya-m2000/hoy-go/internal/client"
)

// BookingsService manages the authenticated user's reservations.
type BookingsService struct {
	client *client.Client
}

// Create reserves a property.
func (s *BookingsService) Create(ctx context.Context, req BookingRequest) (*Booking, error) {
	resp, err := s.client.Post(ctx, &client.Request{Path: "/bookings", Body: req})
	if err != nil {
		return nil, err
	}
	booking, err := decode[Booking](resp)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns the user's bookings, newest first.
func (s *BookingsService) List(ctx context.Context) ([]Booking, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/bookings"})
	if err != nil {
		return nil, err
	}
	return decode[[]Booking](resp)
}

// Get returns a single booking.
func (s *BookingsService) Get(ctx context.Context, id string) (*Booking, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/bookings/" + id})
	if err != nil {
		return nil, err
	}
	booking, err := decode[Booking](resp)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel cancels a booking. Refund treatment follows the host's policy.
func (s *BookingsService) Cancel(ctx context.Context, id string) (*Booking, error) {
	resp, err := s.client.Post(ctx, &client.Request{
		Path: "/bookings/" + id + "/cancel",
		Body: struct{}{},
	})
	if err != nil {
		return nil, err
	}
	booking, err := decode[Booking](resp)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
