package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "exports/u/r.pdf", want: "exports/u/r.pdf"},
		{name: "simple prefix", prefix: "root", key: "exports/u/r.pdf", want: "root/exports/u/r.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "exports/u/r.pdf", want: "root/exports/u/r.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/exports/u/r.pdf", want: "root/exports/u/r.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "exports/u/r.pdf", want: "root/sub/exports/u/r.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type recordedPut struct {
	method string
	path   string
	body   string
	sse    string
}

func TestPutUploadsToPrefixedKey(t *testing.T) {
	var (
		mu  sync.Mutex
		got recordedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = recordedPut{method: r.Method, path: r.URL.Path, body: string(body), sse: r.Header.Get("X-Amz-Server-Side-Encryption")}
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := s3.NewFromConfig(aws.Config{
		Region:      "us-east-1",
		Credentials: aws.AnonymousCredentials{},
	}, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.UsePathStyle = true
	})
	store := NewWithClient(client, "bucket", "/root/", "")

	n, err := store.Put(context.Background(), "exports/u/r.pdf", "application/pdf", strings.NewReader("%PDF-1.3"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != int64(len("%PDF-1.3")) {
		t.Fatalf("unexpected size %d", n)
	}

	mu.Lock()
	defer mu.Unlock()
	if got.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", got.method)
	}
	if got.path != "/bucket/root/exports/u/r.pdf" {
		t.Fatalf("unexpected path %q", got.path)
	}
	if !strings.Contains(got.body, "%PDF-1.3") {
		t.Fatalf("unexpected body %q", got.body)
	}
	if got.sse != "AES256" {
		t.Fatalf("expected AES256 encryption header, got %q", got.sse)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), "us-east-1", "", "", ""); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestPutUsesKMSWhenConfigured(t *testing.T) {
	var (
		mu      sync.Mutex
		headers http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		headers = r.Header.Clone()
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := s3.NewFromConfig(aws.Config{
		Region:      "us-east-1",
		Credentials: aws.AnonymousCredentials{},
	}, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.UsePathStyle = true
	})
	store := NewWithClient(client, "bucket", "", " kms-key-1 ")

	if _, err := store.Put(context.Background(), "exports/u/r.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.3"))); err != nil {
		t.Fatalf("put: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if got := headers.Get("X-Amz-Server-Side-Encryption"); got != "aws:kms" {
		t.Fatalf("expected aws:kms, got %q", got)
	}
	if got := headers.Get("X-Amz-Server-Side-Encryption-Aws-Kms-Key-Id"); got != "kms-key-1" {
		t.Fatalf("expected trimmed kms key id, got %q", got)
	}
	if got := headers.Get("Cache-Control"); got != "private, no-store" {
		t.Fatalf("unexpected cache control %q", got)
	}
}
