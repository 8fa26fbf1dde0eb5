package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryOf extracts the expiry claim from an access token without verifying
// its signature. Verification is the server's job; the client only needs the
// claim to schedule proactive refreshes.
func ExpiryOf(token string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("access token has no exp claim")
	}
	return exp.Time, nil
}

// ExpiringWithin reports whether token expires within threshold of now.
// A token that cannot be parsed is reported as expiring so the caller
// attempts a refresh rather than sending a token it cannot reason about.
func ExpiringWithin(token string, threshold time.Duration) bool {
	exp, err := ExpiryOf(token)
	if err != nil {
		return true
	}
	return time.Until(exp) < threshold
}

// SubjectOf extracts the subject claim (the user ID) without verification.
func SubjectOf(token string) (string, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("read sub claim: %w", err)
	}
	return sub, nil
}
