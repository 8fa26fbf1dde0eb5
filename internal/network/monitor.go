// Package network provides the connectivity probe consulted before any
// request leaves the client.
package network

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"
)

// Monitor reports whether the upstream API is believed reachable.
type Monitor interface {
	Online(ctx context.Context) bool
}

// Probe dials the API host to determine reachability. Results are cached for
// a short TTL so back-to-back requests do not each pay a dial.
type Probe struct {
	host    string
	timeout time.Duration
	ttl     time.Duration

	dial func(ctx context.Context, network, addr string) (net.Conn, error)

	mu      sync.Mutex
	online  bool
	checked time.Time
}

// NewProbe creates a probe for the API at baseURL. Ports default to 443/80
// based on the scheme when the URL carries none.
func NewProbe(baseURL string, timeout, ttl time.Duration) (*Probe, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	d := &net.Dialer{Timeout: timeout}
	return &Probe{
		host:    net.JoinHostPort(host, port),
		timeout: timeout,
		ttl:     ttl,
		dial:    d.DialContext,
	}, nil
}

// Online returns the cached reachability state, re-probing when the cache
// has expired.
func (p *Probe) Online(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.checked) < p.ttl {
		return p.online
	}

	conn, err := p.dial(ctx, "tcp", p.host)
	if conn != nil {
		conn.Close()
	}

	p.online = err == nil
	p.checked = time.Now()
	return p.online
}

// Static is a Monitor with a fixed answer. Useful in tests and for callers
// that already track connectivity elsewhere.
type Static bool

// Online implements Monitor.
func (s Static) Online(context.Context) bool { return bool(s) }
