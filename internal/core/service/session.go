package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionClaims is the JWT payload of a login session.
type SessionClaims struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionCodec issues and parses HS256 session tokens.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a new session for user.
func (c *SessionCodec) Issue(user *domain.User) (*domain.Session, error) {
	id := uuid.NewString()
	now := c.now()
	expires := now.Add(c.ttl)
	claims := SessionClaims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &domain.Session{Token: token, ID: id, ExpiresAt: expires}, nil
}

// Parse validates token and returns the actor it was issued for.
func (c *SessionCodec) Parse(token string) (domain.Actor, *domain.Session, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !parsed.Valid {
		return domain.Actor{}, nil, errors.Join(domain.ErrUnauthenticated, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return domain.Actor{}, nil, fmt.Errorf("session subject %q: %w", claims.Subject, domain.ErrUnauthenticated)
	}

	actor := domain.Actor{ID: uint(id), Name: claims.Name, Role: claims.Role}
	session := &domain.Session{Token: token, ID: claims.ID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return actor, session, nil
}
