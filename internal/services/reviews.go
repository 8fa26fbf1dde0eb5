package services

import (
	"context"

	"github.com/yahya-m2000/hoy-go/internal/client"
)

// ReviewsService reads and writes property reviews.
type ReviewsService struct {
	client *client.Client
}

// ListByProperty returns all reviews for a listing.
func (s *ReviewsService) ListByProperty(ctx context.Context, propertyID string) ([]Review, error) {
	resp, err := s.client.Get(ctx, &client.Request{
		Path:   "/properties/" + propertyID + "/reviews",
		Public: true,
	})
	if err != nil {
		return nil, err
	}
	return decode[[]Review](resp)
}

// Create submits a review for a completed stay.
func (s *ReviewsService) Create(ctx context.Context, req ReviewRequest) (*Review, error) {
	resp, err := s.client.Post(ctx, &client.Request{Path: "/reviews", Body: req})
	if err != nil {
		return nil, err
	}
	review, err := decode[Review](resp)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
