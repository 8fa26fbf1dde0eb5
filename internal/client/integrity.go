package client

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/yahya-m2000/hoy-go/internal/storage"
)

// profilePath is the current-user profile endpoint, the only response whose
// identity is cross-checked against the locally stored user ID.
const profilePath = "/users/me"

// isProfileEndpoint reports whether endpoint returns the current user's
// profile document.
func isProfileEndpoint(endpoint string) bool {
	return endpoint == profilePath || strings.HasSuffix(endpoint, profilePath)
}

// checkIntegrity compares the user ID in a profile response against the
// locally stored identifier. On mismatch the payload is annotated with
// `_corrupted: true` and a persistent integrity-error flag is recorded. The
// response is still returned to the caller; enforcement is intentionally
// lenient and left to session handling.
func (c *Client) checkIntegrity(ctx context.Context, endpoint string, body []byte) ([]byte, bool) {
	if !isProfileEndpoint(endpoint) {
		return body, false
	}

	returned := gjson.GetBytes(body, "data._id").String()
	if returned == "" {
		returned = gjson.GetBytes(body, "data.id").String()
	}
	if returned == "" {
		return body, false
	}

	stored, err := storage.GetOrEmpty(ctx, c.store, storage.KeyCurrentUserID)
	if err != nil || stored == "" || stored == returned {
		return body, false
	}

	c.logger.Error("user data integrity mismatch",
		zap.String("stored", stored),
		zap.String("returned", returned),
	)
	c.metrics.RecordIntegrityFailure()

	if err := c.store.Set(ctx, storage.KeyUserDataIntegrityError, "true"); err != nil {
		c.logger.Warn("failed to persist integrity flag", zap.Error(err))
	}
	if err := c.store.Set(ctx, storage.KeyUserDataIntegrityDetail, "expected "+stored+", got "+returned); err != nil {
		c.logger.Warn("failed to persist integrity detail", zap.Error(err))
	}

	annotated, err := sjson.SetBytes(body, "_corrupted", true)
	if err != nil {
		return body, true
	}
	return annotated, true
}
