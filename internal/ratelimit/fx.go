package ratelimit

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/config"
)

func newLimiter(cfg config.Config, conn *gorm.DB, clk clock.Clock, log *zap.Logger) Limiter {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.Info("rate limiter using redis", zap.String("addr", cfg.RedisAddr))
		return NewRedisLimiter(client)
	}

	log.Info("rate limiter using database window store")
	return NewStoreLimiter(conn, clk)
}

var Module = fx.Module("ratelimit",
	fx.Provide(newLimiter),
)
