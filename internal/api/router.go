package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ChrisSpescha/EcommerceWebsite/docs"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/handler"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/middleware"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/infrastructure/http/handlers"
)

// bodyLimit leaves headroom above the 10 MB image cap for multipart framing.
const bodyLimit = "11M"

// Dependencies are the services and adapters the router wires into handlers.
// Images and Revoker are optional.
type Dependencies struct {
	Log          zerolog.Logger
	Sessions     middleware.SessionParser
	Revoker      ports.SessionRevoker
	Auth         ports.AuthService
	Catalog      ports.CatalogService
	Reviews      ports.ReviewService
	Messaging    ports.MessagingService
	Checkout     ports.CheckoutService
	Images       ports.ImageStore
	Health       map[string]handlers.Check
	SecureCookie bool

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	requireAuth := middleware.Auth(deps.Sessions, deps.Revoker)
	optionalAuth := middleware.OptionalAuth(deps.Sessions, deps.Revoker)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Probes, metrics, docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.Health).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SecureCookie)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, optionalAuth)

	userHandler := handler.NewUserHandler(deps.Auth)
	e.GET("/users/me", userHandler.Me, requireAuth)
	e.GET("/admin/users", userHandler.List, requireAuth, requireAdmin)

	// --- Catalog ---
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)
	e.GET("/products", catalogHandler.List)
	e.POST("/products/search", catalogHandler.Search)
	e.GET("/products/:id", catalogHandler.Get)

	products := e.Group("/products", requireAuth)
	products.POST("", catalogHandler.Create)
	products.PUT("/:id", catalogHandler.Update)
	products.DELETE("/:id", catalogHandler.Delete)
	products.POST("/:id/reviews", reviewHandler.Add)
	if deps.Images != nil {
		products.POST("/images", handler.NewImageHandler(deps.Images).Upload)
	}
	e.DELETE("/reviews/:id", reviewHandler.Delete, requireAuth)

	// --- Messaging ---
	messageHandler := handler.NewMessageHandler(deps.Messaging)
	e.POST("/messages", messageHandler.Compose, requireAuth)
	chats := e.Group("/chats", requireAuth)
	chats.GET("", messageHandler.ListChats)
	chats.GET("/:id", messageHandler.GetChat)
	chats.POST("/:id/messages", messageHandler.Append)

	// --- Checkout (buyers may be anonymous) ---
	checkoutHandler := handler.NewCheckoutHandler(deps.Checkout)
	e.GET("/checkout/success", checkoutHandler.Success)
	e.GET("/checkout/cancel", checkoutHandler.Cancel)
	e.POST("/checkout/:product_id", checkoutHandler.Create, optionalAuth)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
