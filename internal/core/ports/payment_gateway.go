package ports

import "context"

// ConnectedAccountInput carries the data needed to open a payable seller
// account at the payment processor.
type ConnectedAccountInput struct {
	Email          string
	IdempotencyKey string
}

// OnboardingLinkInput requests a one-time onboarding link for an account.
type OnboardingLinkInput struct {
	AccountID  string
	RefreshURL string
	ReturnURL  string
}

// PriceInput describes the priceable unit sold in one checkout.
type PriceInput struct {
	Name       string
	UnitAmount int64
	Currency   string
	// IdempotencyKey, when set, keys both the product and the price so a
	// retry reuses the objects created by the first attempt.
	IdempotencyKey string
}

// CheckoutSessionInput describes a hosted checkout with a split payment:
// ApplicationFee stays with the platform and the remainder is transferred to
// Destination.
type CheckoutSessionInput struct {
	PriceID        string
	Quantity       int64
	SuccessURL     string
	CancelURL      string
	ApplicationFee int64
	Destination    string
	// IdempotencyKey is forwarded to the processor when the buyer supplied one.
	IdempotencyKey string
}

// RemoteCheckoutSession is the processor's answer to a session request.
type RemoteCheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway is the payment processor boundary. Implementations must not
// retry CreateCheckoutSession on their own.
type PaymentGateway interface {
	CreateConnectedAccount(ctx context.Context, in ConnectedAccountInput) (accountID string, err error)
	CreateOnboardingLink(ctx context.Context, in OnboardingLinkInput) (url string, err error)
	// CreatePrice creates the processor product and its price, returning the price id.
	CreatePrice(ctx context.Context, in PriceInput) (priceID string, err error)
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*RemoteCheckoutSession, error)
}
