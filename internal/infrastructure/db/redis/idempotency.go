package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// DefaultReplayTTL matches how long the payment processor honours its own
// idempotency keys.
const DefaultReplayTTL = 24 * time.Hour

// CheckoutReplayStore remembers checkout sessions by idempotency key.
// Key format: checkout:idem:<product_id>:<key>
type CheckoutReplayStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutReplayStore(client *redis.Client, ttl time.Duration) *CheckoutReplayStore {
	if ttl <= 0 {
		ttl = DefaultReplayTTL
	}
	return &CheckoutReplayStore{client: client, ttl: ttl}
}

// Get returns nil, nil when nothing was stored under key.
func (s *CheckoutReplayStore) Get(ctx context.Context, key string) (*domain.CheckoutSession, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency get: %w", err)
	}
	var out replayEntry
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return out.toDomain(), nil
}

// Put stores the session unless another request stored one first.
func (s *CheckoutReplayStore) Put(ctx context.Context, key string, cs *domain.CheckoutSession) error {
	raw, err := json.Marshal(newReplayEntry(cs))
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.SetNX(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency put: %w", err)
	}
	return nil
}

func (s *CheckoutReplayStore) key(key string) string {
	return "checkout:idem:" + key
}

// replayEntry is the stored subset of a checkout session.
type replayEntry struct {
	SessionID   string               `json:"session_id"`
	RedirectURL string               `json:"url"`
	ProductID   uint                 `json:"product_id"`
	Status      domain.PaymentStatus `json:"status"`
}

func newReplayEntry(cs *domain.CheckoutSession) replayEntry {
	return replayEntry{SessionID: cs.SessionID, RedirectURL: cs.RedirectURL, ProductID: cs.ProductID, Status: cs.Status}
}

func (e replayEntry) toDomain() *domain.CheckoutSession {
	return &domain.CheckoutSession{SessionID: e.SessionID, RedirectURL: e.RedirectURL, ProductID: e.ProductID, Status: e.Status}
}
