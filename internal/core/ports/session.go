package ports

import (
	"context"
	"time"
)

// SessionRevoker records logged-out sessions until they would have expired.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
