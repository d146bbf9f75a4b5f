// Package password hashes and verifies user passwords with PBKDF2-HMAC-SHA256.
//
// Encoded hashes look like pbkdf2:sha256:<iterations>$<salt>$<hex digest>.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 600000
	saltLength        = 16
	keyLength         = 32
	method            = "pbkdf2:sha256"
)

var ErrMalformedHash = errors.New("malformed password hash")

// Hasher produces and checks encoded password hashes.
type Hasher struct {
	iterations int
}

// NewHasher returns a Hasher using the given iteration count, falling back to
// DefaultIterations when iterations is not positive.
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

func (h *Hasher) Hash(plain string) (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	digest := pbkdf2.Key([]byte(plain), []byte(salt), h.iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", method, h.iterations, salt, hex.EncodeToString(digest)), nil
}

// Verify reports whether plain matches encoded. The iteration count stored in
// encoded is used, so hashes made with older settings keep verifying.
func (h *Hasher) Verify(encoded, plain string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return false, ErrMalformedHash
	}
	header, salt, wantHex := parts[0], parts[1], parts[2]

	prefix := method + ":"
	if !strings.HasPrefix(header, prefix) {
		return false, ErrMalformedHash
	}
	iterations, err := strconv.Atoi(strings.TrimPrefix(header, prefix))
	if err != nil || iterations <= 0 {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(wantHex)
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := pbkdf2.Key([]byte(plain), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
