package services

import (
	"context"

	"github.com/yahya-m2000/hoy-go/internal/client"
)

// WishlistService manages the user's saved-property collections.
type WishlistService struct {
	client *client.Client
}

// Collections returns all of the user's collections.
func (s *WishlistService) Collections(ctx context.Context) ([]Collection, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/wishlist/collections"})
	if err != nil {
		return nil, err
	}
	return decode[[]Collection](resp)
}

// CreateCollection makes a new named collection.
func (s *WishlistService) CreateCollection(ctx context.Context, name string) (*Collection, error) {
	resp, err := s.client.Post(ctx, &client.Request{
		Path: "/wishlist/collections",
		Body: map[string]string{"name": name},
	})
	if err != nil {
		return nil, err
	}
	collection, err := decode[Collection](resp)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// DeleteCollection removes a collection and its saved entries.
func (s *WishlistService) DeleteCollection(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, &client.Request{Path: "/wishlist/collections/" + id})
	return err
}

// AddProperty saves a property into a collection.
func (s *WishlistService) AddProperty(ctx context.Context, collectionID, propertyID string) (*Collection, error) {
	resp, err := s.client.Post(ctx, &client.Request{
		Path: "/wishlist/collections/" + collectionID + "/properties",
		Body: map[string]string{"propertyId": propertyID},
	})
	if err != nil {
		return nil, err
	}
	collection, err := decode[Collection](resp)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// RemoveProperty drops a property from a collection.
func (s *WishlistService) RemoveProperty(ctx context.Context, collectionID, propertyID string) error {
	_, err := s.client.Delete(ctx, &client.Request{
		Path: "/wishlist/collections/" + collectionID + "/properties/" + propertyID,
	})
	return err
}
