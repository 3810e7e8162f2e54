package ports

import (
	"context"
	"time"
)

// TokenRevoker is a denylist of token IDs (jti claims). Entries expire on
// their own once the underlying token would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
