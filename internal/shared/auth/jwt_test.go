package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestIssuer(t *testing.T, alg string) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", alg, 30*time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	for _, alg := range []string{"HS256", "hs384", "HS512"} {
		issuer := newTestIssuer(t, alg)
		token, err := issuer.Issue("jane@example.com", issuer.TTL())
		if err != nil {
			t.Fatalf("%s issue: %v", alg, err)
		}
		sub, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("%s verify: %v", alg, err)
		}
		if sub != "jane@example.com" {
			t.Fatalf("%s subject = %q", alg, sub)
		}
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := newTestIssuer(t, "HS256")
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }
	token, err := issuer.Issue("jane@example.com", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueDefaultsNonPositiveTTL(t *testing.T) {
	issuer := newTestIssuer(t, "HS256")
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }
	token, err := issuer.Issue("jane@example.com", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(14 * time.Minute) }
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("expected token valid at 14m: %v", err)
	}
	issuer.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, err := issuer.Verify(token); err == nil {
		t.Fatalf("expected token expired at 16m")
	}
}

func TestVerifyRejectsTamperedAndForeignTokens(t *testing.T) {
	issuer := newTestIssuer(t, "HS256")
	token, err := issuer.Issue("jane@example.com", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other, err := NewTokenIssuer("another-secret", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	foreign, _ := other.Issue("jane@example.com", time.Minute)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "jane@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for name, candidate := range map[string]string{
		"empty":    "",
		"garbage":  "not-a-token",
		"foreign":  foreign,
		"tampered": tampered,
		"none":     unsigned,
	} {
		if _, err := issuer.Verify(candidate); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestVerifyRejectsAlgorithmMismatch(t *testing.T) {
	hs512 := newTestIssuer(t, "HS512")
	token, err := hs512.Issue("jane@example.com", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := newTestIssuer(t, "HS256").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenIssuerValidation(t *testing.T) {
	if _, err := NewTokenIssuer(" ", "HS256", time.Minute); err == nil {
		t.Fatalf("expected missing secret error")
	}
	if _, err := NewTokenIssuer("s", "RS256", time.Minute); err == nil {
		t.Fatalf("expected unsupported algorithm error")
	}
}
