package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/service"
)

type stubRevoker struct {
	revoked map[string]bool
}

func (s *stubRevoker) Revoke(_ context.Context, id string, _ time.Time) error {
	s.revoked[id] = true
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	return s.revoked[id], nil
}

func issue(t *testing.T, codec *service.SessionCodec) *domain.Session {
	t.Helper()
	session, err := codec.Issue(&domain.User{ID: 7, Name: "alice", Role: domain.RoleMember})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return session
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	e := echo.New()
	codec := service.NewSessionCodec("secret", time.Hour)
	session := issue(t, codec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(codec, nil)(func(c echo.Context) error {
		called = true
		actor, _ := c.Get(ActorKey).(domain.Actor)
		if actor.ID != 7 || actor.Name != "alice" || actor.Role != domain.RoleMember {
			t.Fatalf("unexpected actor: %+v", actor)
		}
		if s, _ := c.Get(SessionKey).(*domain.Session); s == nil || s.ID != session.ID {
			t.Fatalf("session not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_SessionCookie(t *testing.T) {
	e := echo.New()
	codec := service.NewSessionCodec("secret", time.Hour)
	session := issue(t, codec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(codec, nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(service.NewSessionCodec("secret", time.Hour), nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(service.NewSessionCodec("secret", time.Hour), nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	e := echo.New()
	session := issue(t, service.NewSessionCodec("other-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(service.NewSessionCodec("secret", time.Hour), nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	e := echo.New()
	codec := service.NewSessionCodec("secret", time.Hour)
	session := issue(t, codec)
	revoker := &stubRevoker{revoked: map[string]bool{session.ID: true}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(codec, revoker)(func(c echo.Context) error {
		t.Fatalf("revoked session must not pass")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := OptionalAuth(service.NewSessionCodec("secret", time.Hour), nil)(func(c echo.Context) error {
		called = true
		if c.Get(ActorKey) != nil {
			t.Fatalf("anonymous request must not carry an actor")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
