package network

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeParsesHostPort(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"https default port", "https://api.hoy.example.com/v1", "api.hoy.example.com:443"},
		{"http default port", "http://localhost/api", "localhost:80"},
		{"explicit port", "http://localhost:3000/api/v1", "localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProbe(tt.baseURL, time.Second, time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.host)
		})
	}
}

func TestProbeCachesResult(t *testing.T) {
	p, err := NewProbe("http://localhost:3000", time.Second, time.Minute)
	require.NoError(t, err)

	dials := 0
	p.dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		dials++
		return nil, errors.New("unreachable")
	}

	ctx := context.Background()
	assert.False(t, p.Online(ctx))
	assert.False(t, p.Online(ctx))
	assert.Equal(t, 1, dials, "second call within TTL should not dial")
}

func TestProbeReprobesAfterTTL(t *testing.T) {
	p, err := NewProbe("http://localhost:3000", time.Second, time.Millisecond)
	require.NoError(t, err)

	dials := 0
	p.dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		dials++
		return nil, errors.New("unreachable")
	}

	ctx := context.Background()
	p.Online(ctx)
	time.Sleep(5 * time.Millisecond)
	p.Online(ctx)
	assert.Equal(t, 2, dials)
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).Online(context.Background()))
	assert.False(t, Static(false).Online(context.Background()))
}
