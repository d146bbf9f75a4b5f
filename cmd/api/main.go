// Command api runs the marketplace HTTP API.
//
//	@title						Marketplace API
//	@version					1.0
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/service"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/config"
	mongostore "github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/db/mongo"
	redisstore "github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/db/redis"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/db/sqldb"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/http/handlers"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/notify"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/payment"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/storage"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/pkg/password"
	"github.com/ChrisSpescha/EcommerceWebsite/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace-api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		File:    cfg.LogFile,
		Service: "marketplace-api",
	})

	// --- Relational store ---
	db, err := sqldb.Connect(ctx, sqldb.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Debug:  cfg.Database.Debug,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer disconnect(log, "database", func(context.Context) error { return sqlDB.Close() })
	}
	if err := sqldb.Migrate(db); err != nil {
		return err
	}
	health := map[string]handlers.Check{"database": handlers.SQLCheck(db)}

	users := sqldb.NewUserRepository(db)
	products := sqldb.NewProductRepository(db)
	reviews := sqldb.NewReviewRepository(db)
	chats := sqldb.NewChatRepository(db)

	// --- Optional stores ---
	var (
		audit    ports.CheckoutAuditRepository
		replay   ports.CheckoutReplayStore
		revoker  ports.SessionRevoker
		notifier ports.SellerNotifier
		images   ports.ImageStore
	)

	if cfg.Mongo.Enabled() {
		client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer disconnect(log, "mongodb", func(ctx context.Context) error { return client.Disconnect(ctx) })

		repo := mongostore.NewCheckoutRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		audit = repo
		health["mongodb"] = handlers.MongoCheck(mdb)
		log.Info().Str("database", cfg.Mongo.Database).Msg("checkout audit trail enabled")
	}

	if cfg.Redis.Enabled() {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer disconnect(log, "redis", func(context.Context) error { return rdb.Close() })

		replay = redisstore.NewCheckoutReplayStore(rdb, redisstore.DefaultReplayTTL)
		revoker = redisstore.NewSessionRevoker(rdb)
		health["redis"] = handlers.RedisCheck(rdb)
		log.Info().Msg("checkout replay and session revocation enabled")
	}

	if cfg.SMTP.Enabled() {
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		log.Info().Str("host", cfg.SMTP.Host).Msg("seller email notifications enabled")
	}

	if cfg.S3.Enabled() {
		store, err := storage.NewS3ImageStore(ctx, storage.S3Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Endpoint:        cfg.S3.Endpoint,
		})
		if err != nil {
			return err
		}
		images = store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("listing image uploads enabled")
	}

	// --- Payment processor ---
	gateway := payment.NewStripeGateway(payment.StripeConfig{
		APIKey:      cfg.Payment.APIKey,
		Country:     cfg.Payment.Country,
		BusinessURL: cfg.Payment.BusinessURL,
		Timeout:     cfg.Payment.Timeout,
	}, metrics.ObserveProviderCall)

	// --- Services ---
	sessions := service.NewSessionCodec(cfg.Session.Secret, cfg.Session.TTL)
	payout := service.NewPayoutService(gateway, service.PayoutConfig{
		RefreshURL: cfg.Payment.RefreshURL,
		ReturnURL:  cfg.Payment.ReturnURL,
		Timeout:    cfg.Payment.Timeout,
	}, log)
	authService := service.NewAuthService(users, payout, password.NewHasher(cfg.Session.PasswordIterations), sessions,
		service.AuthOptions{AdminEmail: cfg.AdminEmail, Revoker: revoker}, log)
	checkout := service.NewCheckoutService(products, users, gateway, service.CheckoutConfig{
		Currency:       cfg.Payment.Currency,
		ApplicationFee: cfg.Payment.ApplicationFee,
		SuccessURL:     cfg.Payment.SuccessURL,
		CancelURL:      cfg.Payment.CancelURL,
		Timeout:        cfg.Payment.Timeout,
	}, service.CheckoutOptions{Audit: audit, Replay: replay, Notifier: notifier}, log)

	e := api.NewRouter(api.Dependencies{
		Log:          log,
		Sessions:     sessions,
		Revoker:      revoker,
		Auth:         authService,
		Catalog:      service.NewCatalogService(products, users, reviews, log),
		Reviews:      service.NewReviewService(reviews, products, log),
		Messaging:    service.NewMessagingService(chats, users, log),
		Checkout:     checkout,
		Images:       images,
		Health:       health,
		SecureCookie: cfg.Session.CookieSecure,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func disconnect(log zerolog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn().Err(err).Str("dependency", name).Msg("close failed")
	}
}
