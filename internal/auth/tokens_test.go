package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiryOf(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{"sub": "userA", "exp": exp.Unix()})

	got, err := ExpiryOf(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

func TestExpiryOfErrors(t *testing.T) {
	t.Run("not a jwt", func(t *testing.T) {
		_, err := ExpiryOf("opaque-token")
		assert.Error(t, err)
	})

	t.Run("missing exp claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "userA"})
		_, err := ExpiryOf(token)
		assert.Error(t, err)
	})
}

func TestExpiringWithin(t *testing.T) {
	tests := []struct {
		name      string
		expIn     time.Duration
		threshold time.Duration
		want      bool
	}{
		{"well before expiry", time.Hour, 5 * time.Minute, false},
		{"inside threshold", 2 * time.Minute, 5 * time.Minute, true},
		{"already expired", -time.Minute, 5 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(tt.expIn).Unix()})
			assert.Equal(t, tt.want, ExpiringWithin(token, tt.threshold))
		})
	}

	t.Run("unparseable token counts as expiring", func(t *testing.T) {
		assert.True(t, ExpiringWithin("garbage", 5*time.Minute))
	})
}

func TestSubjectOf(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "userA", "exp": time.Now().Add(time.Hour).Unix()})

	sub, err := SubjectOf(token)
	require.NoError(t, err)
	assert.Equal(t, "userA", sub)
}
