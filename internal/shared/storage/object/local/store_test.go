package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "exports/abc/resume-1.pdf", "application/pdf", strings.NewReader("%PDF-1.3 first"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != int64(len("%PDF-1.3 first")) {
		t.Fatalf("unexpected size %d", n)
	}
	if _, err := store.Put(ctx, "exports/abc/resume-1.pdf", "application/pdf", strings.NewReader("%PDF-1.3 second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	rc, err := store.Open(ctx, "exports/abc/resume-1.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.3 second" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape.pdf", "/etc/passwd", "", "a/../../b"} {
		if _, err := store.Put(context.Background(), key, "application/pdf", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestPutHonorsCanceledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, "exports/a.pdf", "application/pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected context error")
	}
}
