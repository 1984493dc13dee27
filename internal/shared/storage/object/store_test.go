package object

import (
	"strings"
	"testing"
)

func TestExportKey(t *testing.T) {
	key := ExportKey("user-1", "resume-1")
	if !strings.HasPrefix(key, "exports/") || !strings.HasSuffix(key, "/resume-1.pdf") {
		t.Fatalf("unexpected key %q", key)
	}
	if strings.Contains(key, "user-1") {
		t.Fatalf("expected hashed user segment, got %q", key)
	}
	if key != ExportKey("user-1", "resume-1") {
		t.Fatalf("expected stable key")
	}
}
