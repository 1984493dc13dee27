package health

import (
	"context"
	"time"
)

const defaultTimeout = 2 * time.Second

// Pinger is implemented by the shared key-value store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	Store   Pinger
	Timeout time.Duration
}

// NewService constructs a new health service.
func NewService(store Pinger) *Service {
	return &Service{Store: store, Timeout: defaultTimeout}
}

// Status pings the store and returns the health payload and whether it is healthy.
func (s *Service) Status(ctx context.Context) (map[string]string, bool) {
	if s == nil || s.Store == nil {
		return map[string]string{"status": "healthy"}, true
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		return map[string]string{"status": "unhealthy"}, false
	}
	return map[string]string{"status": "healthy"}, true
}
