package ports

import (
	"context"
	"time"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// CheckoutAuditRepository keeps a trail of created checkout sessions.
type CheckoutAuditRepository interface {
	Insert(ctx context.Context, s *domain.CheckoutSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
	MarkReturned(ctx context.Context, sessionID string, at time.Time) error
}

// CheckoutReplayStore remembers the session created for an idempotency key so
// a repeated submission does not open a second charge.
type CheckoutReplayStore interface {
	Get(ctx context.Context, key string) (*domain.CheckoutSession, error)
	Put(ctx context.Context, key string, s *domain.CheckoutSession) error
}
