package password

import (
	"strings"
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(1000)

	encoded, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if strings.Contains(encoded, "hunter22") {
		t.Fatalf("encoded hash contains the plaintext")
	}
	if !strings.HasPrefix(encoded, "pbkdf2:sha256:1000$") {
		t.Fatalf("unexpected hash header: %s", encoded)
	}

	ok, err := h.Verify(encoded, "hunter22")
	if err != nil || !ok {
		t.Fatalf("expected password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify(encoded, "hunter23")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to be rejected")
	}
}

func TestHasher_SaltIsPerHash(t *testing.T) {
	h := NewHasher(1000)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}

	salt := strings.Split(a, "$")[1]
	if len(salt) < 16 {
		t.Fatalf("salt too short: %q", salt)
	}
}

func TestHasher_VerifyUsesStoredIterations(t *testing.T) {
	old := NewHasher(500)
	encoded, _ := old.Hash("pw")

	ok, err := NewHasher(2000).Verify(encoded, "pw")
	if err != nil || !ok {
		t.Fatalf("expected hash from older settings to verify, ok=%v err=%v", ok, err)
	}
}

func TestHasher_VerifyMalformed(t *testing.T) {
	h := NewHasher(1000)

	cases := []string{
		"",
		"plaintext",
		"bcrypt:10$salt$abcd",
		"pbkdf2:sha256:x$salt$abcd",
		"pbkdf2:sha256:10$salt$zz",
	}
	for _, encoded := range cases {
		if _, err := h.Verify(encoded, "pw"); err != ErrMalformedHash {
			t.Fatalf("Verify(%q): expected ErrMalformedHash, got %v", encoded, err)
		}
	}
}
