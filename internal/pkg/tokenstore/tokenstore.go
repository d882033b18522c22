// Package tokenstore keeps the set of revoked session token ids until the
// tokens would have expired anyway.
package tokenstore

import (
	"context"
	"time"
)

// Store records revoked token ids (the JWT jti claim)
type Store interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
