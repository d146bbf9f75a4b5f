package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/middleware"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// --- Stub services ---

type stubAuthService struct {
	registerFn    func(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error)
	loginFn       func(ctx context.Context, email, password string) (*domain.Session, *domain.User, error)
	logoutFn      func(ctx context.Context, session *domain.Session) error
	currentUserFn func(ctx context.Context, actor domain.Actor) (*domain.User, error)
	listUsersFn   func(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, session *domain.Session) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, session)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	return s.currentUserFn(ctx, actor)
}

func (s *stubAuthService) ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	return s.listUsersFn(ctx, actor)
}

type stubCatalogService struct {
	listFn   func(ctx context.Context, filter string) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id uint) (*domain.ProductDetail, error)
	createFn func(ctx context.Context, actor domain.Actor, in ports.ListingInput) (*domain.Product, error)
	editFn   func(ctx context.Context, actor domain.Actor, id uint, in ports.ListingInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id uint) error
}

func (s *stubCatalogService) ListProducts(ctx context.Context, filter string) ([]*domain.Product, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id uint) (*domain.ProductDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) CreateListing(ctx context.Context, actor domain.Actor, in ports.ListingInput) (*domain.Product, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubCatalogService) EditListing(ctx context.Context, actor domain.Actor, id uint, in ports.ListingInput) (*domain.Product, error) {
	return s.editFn(ctx, actor, id, in)
}

func (s *stubCatalogService) DeleteListing(ctx context.Context, actor domain.Actor, id uint) error {
	return s.deleteFn(ctx, actor, id)
}

type stubReviewService struct {
	addFn    func(ctx context.Context, actor domain.Actor, productID uint, text string) (*domain.Review, error)
	deleteFn func(ctx context.Context, actor domain.Actor, reviewID uint) error
}

func (s *stubReviewService) AddReview(ctx context.Context, actor domain.Actor, productID uint, text string) (*domain.Review, error) {
	return s.addFn(ctx, actor, productID, text)
}

func (s *stubReviewService) DeleteReview(ctx context.Context, actor domain.Actor, reviewID uint) error {
	return s.deleteFn(ctx, actor, reviewID)
}

type stubMessagingService struct {
	composeFn func(ctx context.Context, actor domain.Actor, receiverID uint, body string) (*domain.Chat, error)
	appendFn  func(ctx context.Context, actor domain.Actor, chatID uint, body string) (*domain.Message, error)
	listFn    func(ctx context.Context, actor domain.Actor) ([]*domain.Chat, error)
	getFn     func(ctx context.Context, actor domain.Actor, chatID uint) (*domain.Chat, error)
}

func (s *stubMessagingService) Compose(ctx context.Context, actor domain.Actor, receiverID uint, body string) (*domain.Chat, error) {
	return s.composeFn(ctx, actor, receiverID, body)
}

func (s *stubMessagingService) AppendMessage(ctx context.Context, actor domain.Actor, chatID uint, body string) (*domain.Message, error) {
	return s.appendFn(ctx, actor, chatID, body)
}

func (s *stubMessagingService) ListMyChats(ctx context.Context, actor domain.Actor) ([]*domain.Chat, error) {
	return s.listFn(ctx, actor)
}

func (s *stubMessagingService) GetChat(ctx context.Context, actor domain.Actor, chatID uint) (*domain.Chat, error) {
	return s.getFn(ctx, actor, chatID)
}

type stubCheckoutService struct {
	createFn  func(ctx context.Context, actor domain.Actor, productID uint, key string) (*ports.CheckoutResult, error)
	confirmFn func(ctx context.Context, sessionID string) (*ports.CheckoutReturn, error)
}

func (s *stubCheckoutService) CreateSession(ctx context.Context, actor domain.Actor, productID uint, key string) (*ports.CheckoutResult, error) {
	return s.createFn(ctx, actor, productID, key)
}

func (s *stubCheckoutService) ConfirmReturn(ctx context.Context, sessionID string) (*ports.CheckoutReturn, error) {
	return s.confirmFn(ctx, sessionID)
}

type stubImageStore struct {
	uploaded    []byte
	contentType string
}

func (s *stubImageStore) Upload(_ context.Context, _ string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.uploaded = data
	s.contentType = contentType
	return "listings/abc.png", nil
}

func (s *stubImageStore) URL(_ context.Context, key string) (string, error) {
	return "https://images.example.com/" + key, nil
}

// --- Helpers ---

var alice = domain.Actor{ID: 1, Name: "alice", Role: domain.RoleMember}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withActor(c echo.Context, actor domain.Actor) {
	c.Set(middleware.ActorKey, actor)
}

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}
