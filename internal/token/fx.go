package token

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
)

const cleanupInterval = time.Hour

// startRefreshCleanup sweeps expired refresh tokens in the background.
// Expired rows are also removed lazily on use; the sweep keeps the table
// from growing when tokens are abandoned.
func startRefreshCleanup(lc fx.Lifecycle, tokens identitydomain.TokenRepository, clk clock.Clock, log *zap.Logger) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(cleanupInterval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						n, err := tokens.DeleteExpiredRefreshTokens(context.Background(), clk.Now())
						if err != nil {
							log.Warn("refresh token cleanup failed", zap.Error(err))
							continue
						}
						if n > 0 {
							log.Info("expired refresh tokens removed", zap.Int64("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}

var Module = fx.Module("token.service",
	fx.Provide(New),
	fx.Invoke(startRefreshCleanup),
)
