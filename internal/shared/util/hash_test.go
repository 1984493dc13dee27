package util

import (
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestOwnerDigest(t *testing.T) {
	got := OwnerDigest("user-3f1c2b")
	if got != OwnerDigest("user-3f1c2b") {
		t.Fatalf("expected stable digest, got %s", got)
	}
	if !hexDigest.MatchString(got) {
		t.Fatalf("expected 64 lowercase hex characters, got %q", got)
	}
	if got == OwnerDigest("user-3f1c2c") {
		t.Fatalf("expected distinct digests for distinct owners")
	}
}
