package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

type CheckoutConfig struct {
	Currency string
	// ApplicationFee is the flat platform fee in minor units.
	ApplicationFee int64
	SuccessURL     string
	CancelURL      string
	Timeout        time.Duration
}

// CheckoutOptions holds the optional collaborators of CheckoutService. Any of
// them may be nil.
type CheckoutOptions struct {
	Audit    ports.CheckoutAuditRepository
	Replay   ports.CheckoutReplayStore
	Notifier ports.SellerNotifier
}

// CheckoutService builds hosted checkout sessions that split each payment
// between the platform fee and the seller's payout account.
type CheckoutService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	gateway  ports.PaymentGateway
	audit    ports.CheckoutAuditRepository
	replay   ports.CheckoutReplayStore
	notifier ports.SellerNotifier
	cfg      CheckoutConfig
	now      func() time.Time
	logger   zerolog.Logger
}

func NewCheckoutService(products ports.ProductRepository, users ports.UserRepository, gateway ports.PaymentGateway, cfg CheckoutConfig, opts CheckoutOptions, logger zerolog.Logger) *CheckoutService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProviderTimeout
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &CheckoutService{
		products: products,
		users:    users,
		gateway:  gateway,
		audit:    opts.Audit,
		replay:   opts.Replay,
		notifier: opts.Notifier,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// CreateSession prepares a hosted checkout for one unit of productID. The
// seller must already hold a payout account; that is checked before any call
// to the processor. The price is created first, then the session, which is
// never retried. A client idempotency key is scoped to the product before it
// reaches the processor. The returned status is always pending confirmation.
func (s *CheckoutService) CreateSession(ctx context.Context, actor domain.Actor, productID uint, idempotencyKey string) (*ports.CheckoutResult, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	seller, err := s.users.FindByID(ctx, product.OwnerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("product %d owner %d: %w", product.ID, product.OwnerID, domain.ErrOwnerMissing)
	}
	if err != nil {
		return nil, err
	}
	if !seller.Payable() {
		return nil, fmt.Errorf("seller %d: %w", seller.ID, domain.ErrSellerNotPayable)
	}

	amount, err := ToMinorUnits(product.Price)
	if err != nil {
		return nil, err
	}

	replayKey := ""
	if idempotencyKey != "" {
		replayKey = fmt.Sprintf("%d:%s", product.ID, idempotencyKey)
		if existing := s.lookupReplay(ctx, replayKey); existing != nil {
			s.logger.Info().Str("idempotency_key", idempotencyKey).Str("session_id", existing.SessionID).Msg("idempotent replay")
			return &ports.CheckoutResult{SessionID: existing.SessionID, URL: existing.RedirectURL, Status: existing.Status, Replayed: true}, nil
		}
	}

	priceCtx, cancelPrice := context.WithTimeout(ctx, s.cfg.Timeout)
	priceID, err := s.gateway.CreatePrice(priceCtx, ports.PriceInput{
		Name:           product.Title,
		UnitAmount:     amount,
		Currency:       s.cfg.Currency,
		IdempotencyKey: replayKey,
	})
	cancelPrice()
	if err != nil {
		return nil, &domain.PayoutProviderError{Stage: domain.StageChargeSession, Operation: "create_price", Err: err}
	}

	sessionCtx, cancelSession := context.WithTimeout(ctx, s.cfg.Timeout)
	remote, err := s.gateway.CreateCheckoutSession(sessionCtx, ports.CheckoutSessionInput{
		PriceID:        priceID,
		Quantity:       1,
		SuccessURL:     s.cfg.SuccessURL,
		CancelURL:      s.cfg.CancelURL,
		ApplicationFee: s.cfg.ApplicationFee,
		Destination:    seller.PayoutAccountID,
		IdempotencyKey: replayKey,
	})
	cancelSession()
	if err != nil {
		return nil, &domain.PayoutProviderError{Stage: domain.StageChargeSession, Operation: "create_checkout_session", Err: err}
	}

	record := &domain.CheckoutSession{
		SessionID:      remote.ID,
		RedirectURL:    remote.URL,
		ProductID:      product.ID,
		ProductTitle:   product.Title,
		SellerID:       seller.ID,
		BuyerID:        actor.ID,
		Destination:    seller.PayoutAccountID,
		AmountMinor:    amount,
		ApplicationFee: s.cfg.ApplicationFee,
		Currency:       s.cfg.Currency,
		Stage:          domain.CheckoutCreated,
		Status:         domain.PaymentPendingConfirmation,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      s.now().UTC(),
	}
	s.record(ctx, replayKey, record)

	s.logger.Info().
		Str("session_id", remote.ID).
		Uint("product_id", product.ID).
		Int64("amount_minor", amount).
		Msg("checkout session created")

	return &ports.CheckoutResult{SessionID: remote.ID, URL: remote.URL, Status: domain.PaymentPendingConfirmation}, nil
}

// ConfirmReturn handles the buyer landing on the success page. Landing there
// does not prove the payment settled, so the status stays pending.
func (s *CheckoutService) ConfirmReturn(ctx context.Context, sessionID string) (*ports.CheckoutReturn, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required: %w", domain.ErrValidation)
	}
	result := &ports.CheckoutReturn{SessionID: sessionID, Status: domain.PaymentPendingConfirmation}
	if s.audit == nil {
		return result, nil
	}

	record, err := s.audit.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result.ProductTitle = record.ProductTitle

	if record.Stage != domain.CheckoutReturned {
		if err := s.audit.MarkReturned(ctx, sessionID, s.now().UTC()); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to mark checkout returned")
		}
		notifyCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		s.notifySeller(notifyCtx, record)
		cancel()
	}
	return result, nil
}

func (s *CheckoutService) lookupReplay(ctx context.Context, key string) *domain.CheckoutSession {
	if s.replay == nil {
		return nil
	}
	existing, err := s.replay.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("idempotency lookup failed")
		return nil
	}
	return existing
}

// record writes the audit entry and replay key. Both are best effort: the
// remote session already exists and the buyer must still be redirected.
func (s *CheckoutService) record(ctx context.Context, replayKey string, record *domain.CheckoutSession) {
	if s.audit != nil {
		if err := s.audit.Insert(ctx, record); err != nil {
			s.logger.Warn().Err(err).Str("session_id", record.SessionID).Msg("failed to write checkout audit record")
		}
	}
	if s.replay != nil && replayKey != "" {
		if err := s.replay.Put(ctx, replayKey, record); err != nil {
			s.logger.Warn().Err(err).Str("session_id", record.SessionID).Msg("failed to store idempotency key")
		}
	}
}

func (s *CheckoutService) notifySeller(ctx context.Context, record *domain.CheckoutSession) {
	if s.notifier == nil {
		return
	}
	seller, err := s.users.FindByID(ctx, record.SellerID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("seller_id", record.SellerID).Msg("seller lookup for notification failed")
		return
	}
	if err := s.notifier.CheckoutReturned(ctx, seller, record); err != nil {
		s.logger.Warn().Err(err).Uint("seller_id", seller.ID).Msg("seller notification failed")
	}
}
