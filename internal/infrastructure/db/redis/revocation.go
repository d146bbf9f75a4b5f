package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker records logged-out session ids until their token expiry.
// Key format: session:revoked:<jti>
type SessionRevoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionRevoker(client *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: client, now: time.Now}
}

// Revoke is a no-op for sessions that have already expired.
func (r *SessionRevoker) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *SessionRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (r *SessionRevoker) key(sessionID string) string {
	return "session:revoked:" + sessionID
}
