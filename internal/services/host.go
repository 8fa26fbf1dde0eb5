package services

import (
	"context"

	"github.com/yahya-m2000/hoy-go/internal/client"
)

// HostService exposes the host dashboard: listings, policies, earnings.
type HostService struct {
	client *client.Client
}

// ListProperties returns the host's own listings.
func (s *HostService) ListProperties(ctx context.Context) ([]Property, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/host/properties"})
	if err != nil {
		return nil, err
	}
	return decode[[]Property](resp)
}

// GetPolicies returns the host's booking policies.
func (s *HostService) GetPolicies(ctx context.Context) (*Policies, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/host/policies"})
	if err != nil {
		return nil, err
	}
	policies, err := decode[Policies](resp)
	if err != nil {
		return nil, err
	}
	return &policies, nil
}

// UpdatePolicies replaces the host's booking policies.
func (s *HostService) UpdatePolicies(ctx context.Context, policies Policies) (*Policies, error) {
	resp, err := s.client.Put(ctx, &client.Request{Path: "/host/policies", Body: policies})
	if err != nil {
		return nil, err
	}
	updated, err := decode[Policies](resp)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Earnings returns the host's payout summary.
func (s *HostService) Earnings(ctx context.Context) (*Earnings, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/host/earnings"})
	if err != nil {
		return nil, err
	}
	earnings, err := decode[Earnings](resp)
	if err != nil {
		return nil, err
	}
	return &earnings, nil
}
