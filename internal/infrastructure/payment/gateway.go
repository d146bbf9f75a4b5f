package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// CreateConnectedAccount opens an express account for an individual seller
// with card payments and transfers requested.
func (g *StripeGateway) CreateConnectedAccount(ctx context.Context, in ports.ConnectedAccountInput) (string, error) {
	params := &stripe.AccountParams{
		Type:         stripe.String(string(stripe.AccountTypeExpress)),
		Country:      stripe.String(g.country),
		Email:        stripe.String(in.Email),
		BusinessType: stripe.String(string(stripe.AccountBusinessTypeIndividual)),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	if g.business != "" {
		params.BusinessProfile = &stripe.AccountBusinessProfileParams{URL: stripe.String(g.business)}
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}

	var acct *stripe.Account
	err := g.call("create_account", func() (err error) {
		acct, err = g.api.Accounts.New(params)
		return err
	})
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (g *StripeGateway) CreateOnboardingLink(ctx context.Context, in ports.OnboardingLinkInput) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(in.AccountID),
		RefreshURL: stripe.String(in.RefreshURL),
		ReturnURL:  stripe.String(in.ReturnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	var link *stripe.AccountLink
	err := g.call("create_onboarding_link", func() (err error) {
		link, err = g.api.AccountLinks.New(params)
		return err
	})
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

// CreatePrice creates a Stripe product named after the listing and a one-off
// price for it.
func (g *StripeGateway) CreatePrice(ctx context.Context, in ports.PriceInput) (string, error) {
	productParams := &stripe.ProductParams{Name: stripe.String(in.Name)}
	productParams.Context = ctx
	if in.IdempotencyKey != "" {
		productParams.SetIdempotencyKey("product-" + in.IdempotencyKey)
	}

	var product *stripe.Product
	err := g.call("create_product", func() (err error) {
		product, err = g.api.Products.New(productParams)
		return err
	})
	if err != nil {
		return "", err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(product.ID),
		UnitAmount: stripe.Int64(in.UnitAmount),
		Currency:   stripe.String(in.Currency),
	}
	priceParams.Context = ctx
	if in.IdempotencyKey != "" {
		priceParams.SetIdempotencyKey("price-" + in.IdempotencyKey)
	}

	var price *stripe.Price
	err = g.call("create_price", func() (err error) {
		price, err = g.api.Prices.New(priceParams)
		return err
	})
	if err != nil {
		return "", err
	}
	return price.ID, nil
}

// CreateCheckoutSession creates a one-time payment session whose application
// fee stays with the platform and whose remainder goes to in.Destination.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in ports.CheckoutSessionInput) (*ports.RemoteCheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(in.PriceID), Quantity: stripe.Int64(in.Quantity)},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(in.ApplicationFee),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(in.Destination),
			},
		},
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey("checkout-" + in.IdempotencyKey)
	}

	var sess *stripe.CheckoutSession
	err := g.call("create_checkout_session", func() (err error) {
		sess, err = g.api.CheckoutSessions.New(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ports.RemoteCheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) call(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	g.observe(operation, time.Since(start), err)
	if err != nil {
		return &CallError{Operation: operation, Err: err}
	}
	return nil
}

// CallError is a failed Stripe request. The underlying *stripe.Error, when
// there is one, stays reachable through errors.As.
type CallError struct {
	Operation string
	Err       error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("stripe %s: %s", e.Operation, describe(e.Err))
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// describe keeps the Stripe error type and code, which is all callers need to
// tell a declined request from an outage.
func describe(err error) string {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		if serr.Code != "" {
			return fmt.Sprintf("%s (%s): %s", serr.Type, serr.Code, serr.Msg)
		}
		return fmt.Sprintf("%s: %s", serr.Type, serr.Msg)
	}
	return err.Error()
}
