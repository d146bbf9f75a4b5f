// Package payment adapts the Stripe API to the marketplace payment gateway.
package payment

import (
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const defaultTimeout = 10 * time.Second

type StripeConfig struct {
	APIKey string
	// Country is the jurisdiction of every connected account.
	Country string
	// BusinessURL is reported as the seller's business profile URL.
	BusinessURL string
	Timeout     time.Duration
	// BaseURL overrides the Stripe API host. Used by tests.
	BaseURL string
}

// CallObserver is told about every processor call, successful or not.
type CallObserver func(operation string, elapsed time.Duration, err error)

// StripeGateway implements ports.PaymentGateway. The backend is configured
// with zero automatic network retries so a checkout session is never created
// twice by the client library.
type StripeGateway struct {
	api      *client.API
	country  string
	business string
	observe  CallObserver
}

func NewStripeGateway(cfg StripeConfig, observe CallObserver) *StripeGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cfg.Country == "" {
		cfg.Country = "US"
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	if observe == nil {
		observe = func(string, time.Duration, error) {}
	}

	return &StripeGateway{
		api:      client.New(cfg.APIKey, stripe.NewBackendsWithConfig(backendCfg)),
		country:  cfg.Country,
		business: cfg.BusinessURL,
		observe:  observe,
	}
}
