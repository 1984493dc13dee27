package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("HireMe@2025!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("HireMe@2025!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected salted hashes to differ")
	}
	if !h.Verify("HireMe@2025!", first) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("wrong", first) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestPasswordVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	for _, hash := range []string{"", "plain", "$2b$broken"} {
		if h.Verify("secret", hash) {
			t.Fatalf("expected malformed hash %q to fail", hash)
		}
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	if got := NewPasswordHasher(0).Cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewPasswordHasher(99).Cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}
