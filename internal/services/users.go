package services

import (
	"context"

	"github.com/yahya-m2000/hoy-go/internal/client"
)

// UsersService manages the authenticated user's profile.
type UsersService struct {
	client *client.Client
}

// Profile wraps a user together with the identity cross-check verdict for
// the response it was decoded from.
type Profile struct {
	User
	// Corrupted reports that the profile belongs to a different user than
	// the one this session was established for. Callers should discard it
	// and force a fresh sign-in.
	Corrupted bool
}

// Me returns the current user's profile. The underlying response is
// cross-checked against the stored session identity; a mismatch is surfaced
// on Profile.Corrupted rather than as an error.
func (s *UsersService) Me(ctx context.Context) (*Profile, error) {
	resp, err := s.client.Get(ctx, &client.Request{Path: "/users/me"})
	if err != nil {
		return nil, err
	}
	user, err := decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Corrupted: resp.Corrupted}, nil
}

// UpdateProfile applies partial profile changes and returns the result.
func (s *UsersService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	resp, err := s.client.Patch(ctx, &client.Request{Path: "/users/me", Body: update})
	if err != nil {
		return nil, err
	}
	user, err := decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Corrupted: resp.Corrupted}, nil
}
