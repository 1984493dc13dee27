package bootstrap

import (
	"context"
	"fmt"

	"resume-platform/internal/shared/telemetry"
)

// Seed creates the demo account when enabled. An existing account is left as is.
func Seed(ctx context.Context, app *App) error {
	cfg := app.Config
	if !cfg.SeedDemoUser {
		return nil
	}
	created, err := app.UsersService.EnsureUser(ctx, cfg.DemoEmail, cfg.DemoPassword)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	if created {
		telemetry.Info("bootstrap.demo_user_created", map[string]any{"email": cfg.DemoEmail})
	}
	return nil
}
