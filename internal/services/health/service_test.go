package health

import (
	"context"
	"errors"
	"testing"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestStatusHealthy(t *testing.T) {
	svc := NewService(pingerFunc(func(ctx context.Context) error { return nil }))
	payload, ok := svc.Status(context.Background())
	if !ok || payload["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v %v", payload, ok)
	}
}

func TestStatusUnhealthyWhenPingFails(t *testing.T) {
	svc := NewService(pingerFunc(func(ctx context.Context) error { return errors.New("down") }))
	payload, ok := svc.Status(context.Background())
	if ok || payload["status"] != "unhealthy" {
		t.Fatalf("expected unhealthy, got %v %v", payload, ok)
	}
}

func TestStatusPingHasDeadline(t *testing.T) {
	svc := NewService(pingerFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("missing deadline")
		}
		return nil
	}))
	if _, ok := svc.Status(context.Background()); !ok {
		t.Fatalf("expected ping with deadline")
	}
}
