package domain

import (
	"fmt"
	"time"
)

// PaymentStatus is what the marketplace knows about a checkout. Without a
// processor webhook the local system never learns that a payment settled, so
// a created session stays PendingConfirmation even after the buyer returns.
type PaymentStatus string

const (
	PaymentPendingConfirmation PaymentStatus = "pending_confirmation"
)

// CheckoutStage is the local progress of a checkout session.
type CheckoutStage string

const (
	CheckoutCreated  CheckoutStage = "created"
	CheckoutReturned CheckoutStage = "returned"
)

// PayoutStage names the processor interaction that failed.
type PayoutStage string

const (
	StageOnboarding    PayoutStage = "onboarding"
	StageChargeSession PayoutStage = "charge_session"
)

// PayoutProviderError wraps a payment processor failure with the stage it
// happened in, so callers can tell "seller cannot be onboarded" apart from
// "checkout session could not be built".
type PayoutProviderError struct {
	Stage     PayoutStage
	Operation string
	Err       error
}

func (e *PayoutProviderError) Error() string {
	return fmt.Sprintf("payout provider %s failed during %s: %v", e.Operation, e.Stage, e.Err)
}

func (e *PayoutProviderError) Unwrap() error {
	return e.Err
}

// CheckoutSession is a hosted checkout created for one product purchase.
type CheckoutSession struct {
	SessionID      string        `json:"session_id" bson:"session_id"`
	RedirectURL    string        `json:"url" bson:"redirect_url"`
	ProductID      uint          `json:"product_id" bson:"product_id"`
	ProductTitle   string        `json:"product_title" bson:"product_title"`
	SellerID       uint          `json:"seller_id" bson:"seller_id"`
	BuyerID        uint          `json:"buyer_id,omitempty" bson:"buyer_id,omitempty"`
	Destination    string        `json:"destination" bson:"destination"`
	AmountMinor    int64         `json:"amount_minor" bson:"amount_minor"`
	ApplicationFee int64         `json:"application_fee" bson:"application_fee"`
	Currency       string        `json:"currency" bson:"currency"`
	Stage          CheckoutStage `json:"stage" bson:"stage"`
	Status         PaymentStatus `json:"status" bson:"status"`
	IdempotencyKey string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	ReturnedAt     *time.Time    `json:"returned_at,omitempty" bson:"returned_at,omitempty"`
}
