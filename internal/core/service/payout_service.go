package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

const (
	defaultProviderTimeout = 10 * time.Second
	accountCreateAttempts  = 2
)

type PayoutConfig struct {
	RefreshURL string
	ReturnURL  string
	// Timeout bounds each processor call.
	Timeout time.Duration
}

// PayoutService moves a seller from Unregistered to Onboarding: it opens a
// connected account and returns the one-time onboarding link. Whether the
// seller later becomes payable is decided by the processor.
type PayoutService struct {
	gateway ports.PaymentGateway
	cfg     PayoutConfig
	logger  zerolog.Logger
}

func NewPayoutService(gateway ports.PaymentGateway, cfg PayoutConfig, logger zerolog.Logger) *PayoutService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProviderTimeout
	}
	return &PayoutService{gateway: gateway, cfg: cfg, logger: logger}
}

// Onboard creates the connected account, retrying once with the same
// idempotency key, and then requests the onboarding link without retry.
func (s *PayoutService) Onboard(ctx context.Context, email string) (string, string, error) {
	input := ports.ConnectedAccountInput{Email: email, IdempotencyKey: accountIdempotencyKey(email)}

	var (
		accountID string
		err       error
	)
	for attempt := 1; attempt <= accountCreateAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		accountID, err = s.gateway.CreateConnectedAccount(callCtx, input)
		cancel()
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		s.logger.Warn().Err(err).Int("attempt", attempt).Msg("connected account creation failed")
	}
	if err != nil {
		return "", "", &domain.PayoutProviderError{Stage: domain.StageOnboarding, Operation: "create_account", Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	url, err := s.gateway.CreateOnboardingLink(callCtx, ports.OnboardingLinkInput{
		AccountID:  accountID,
		RefreshURL: s.cfg.RefreshURL,
		ReturnURL:  s.cfg.ReturnURL,
	})
	if err != nil {
		return "", "", &domain.PayoutProviderError{Stage: domain.StageOnboarding, Operation: "create_onboarding_link", Err: err}
	}

	s.logger.Info().Str("payout_account_id", accountID).Msg("payout account created")
	return accountID, url, nil
}

// accountIdempotencyKey is stable per email so a retried or repeated
// registration never opens a second account at the processor.
func accountIdempotencyKey(email string) string {
	sum := sha256.Sum256([]byte("connected-account:" + email))
	return "acct-" + hex.EncodeToString(sum[:16])
}
