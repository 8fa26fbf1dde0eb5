/*
Package resilience implements per-endpoint circuit breaking for the API
client.

# Overview

Each endpoint URL carries an independent failure record: a consecutive
failure count and the timestamp of the last failure. The circuit for an
endpoint is derived, not stored:

  - OPEN when the count has reached the threshold and the reset window has
    not elapsed since the last failure
  - CLOSED otherwise

A success clears the endpoint's record outright, and a record whose last
failure is older than the window is discarded regardless of count.
Authentication endpoints (login, register, refresh, password reset family)
are permanently exempt: they are never gated and never recorded.

# Usage

	registry := resilience.NewRegistry(resilience.Settings{
		FailureThreshold: 5,
		Window:           60 * time.Second,
		OnStateChange: func(endpoint string, from, to resilience.State) {
			log.Printf("circuit %s: %s -> %s", endpoint, from, to)
		},
	})

	if err := registry.Allow("/properties/123"); err != nil {
		// blocked, no network attempt
	}

# Pattern

	Closed --[threshold failures]-> Open --[window elapses or success]-> Closed
*/
package resilience
