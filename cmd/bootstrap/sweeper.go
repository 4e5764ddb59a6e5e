package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"venuehub-api/internal/pkg/config"
	"venuehub-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the stale-booking sweep on a fixed interval for the
// lifetime of the app.
func StartSweeper(lc fx.Lifecycle, sweeper commands.SweeperCommands, cfg config.BookingConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.SweepInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if _, err := sweeper.CancelExpired(ctx); err != nil {
							slog.Error("booking sweep failed", "error", err.Error())
						}
					}
				}
			}()
			slog.Info("booking sweeper started", "interval", cfg.SweepInterval.String())
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
