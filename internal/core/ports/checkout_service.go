package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// CheckoutResult is what the buyer needs to continue at the hosted checkout.
type CheckoutResult struct {
	SessionID string               `json:"session_id"`
	URL       string               `json:"url"`
	Status    domain.PaymentStatus `json:"status"`
	Replayed  bool                 `json:"replayed,omitempty"`
}

// CheckoutReturn describes a buyer landing back on the success page. Status
// never reports a settled payment.
type CheckoutReturn struct {
	SessionID    string               `json:"session_id"`
	ProductTitle string               `json:"product_title,omitempty"`
	Status       domain.PaymentStatus `json:"status"`
}

type CheckoutService interface {
	CreateSession(ctx context.Context, actor domain.Actor, productID uint, idempotencyKey string) (*CheckoutResult, error)
	ConfirmReturn(ctx context.Context, sessionID string) (*CheckoutReturn, error)
}
