package services

import (
	"context"
	"strconv"

	"github.com/yahya-m2000/hoy-go/internal/client"
)

// PropertiesService exposes the public listing catalog.
type PropertiesService struct {
	client *client.Client
}

// Search returns listings matching the filters.
func (s *PropertiesService) Search(ctx context.Context, filters SearchFilters) ([]Property, error) {
	resp, err := s.client.Get(ctx, &client.Request{
		Path:   "/properties/search",
		Query:  filters.query(),
		Public: true,
	})
	if err != nil {
		return nil, err
	}
	return decode[[]Property](resp)
}

// Get returns a single listing.
func (s *PropertiesService) Get(ctx context.Context, id string) (*Property, error) {
	resp, err := s.client.Get(ctx, &client.Request{
		Path:   "/properties/" + id,
		Public: true,
	})
	if err != nil {
		return nil, err
	}
	property, err := decode[Property](resp)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Featured returns the curated front-page listings.
func (s *PropertiesService) Featured(ctx context.Context) ([]Property, error) {
	resp, err := s.client.Get(ctx, &client.Request{
		Path:   "/properties/featured",
		Public: true,
	})
	if err != nil {
		return nil, err
	}
	return decode[[]Property](resp)
}

func (f SearchFilters) query() map[string]string {
	q := map[string]string{}
	if f.Query != "" {
		q["q"] = f.Query
	}
	if f.City != "" {
		q["city"] = f.City
	}
	if f.CheckIn != "" {
		q["checkIn"] = f.CheckIn
	}
	if f.CheckOut != "" {
		q["checkOut"] = f.CheckOut
	}
	if f.Guests > 0 {
		q["guests"] = strconv.Itoa(f.Guests)
	}
	if f.MinPrice > 0 {
		q["minPrice"] = strconv.FormatFloat(f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice > 0 {
		q["maxPrice"] = strconv.FormatFloat(f.MaxPrice, 'f', -1, 64)
	}
	if f.Page > 0 {
		q["page"] = strconv.Itoa(f.Page)
	}
	if f.PageSize > 0 {
		q["pageSize"] = strconv.Itoa(f.PageSize)
	}
	return q
}
