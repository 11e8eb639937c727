package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/config"
	eventdomain "github.com/feedbackpod/feedbackpod/internal/event/domain"
	feedbackdomain "github.com/feedbackpod/feedbackpod/internal/feedback/domain"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	"github.com/feedbackpod/feedbackpod/internal/ratelimit"
	"github.com/feedbackpod/feedbackpod/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node, logger *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs derive the schema from the models.
			if err := conn.AutoMigrate(
				&identitydomain.User{},
				&identitydomain.Tenant{},
				&identitydomain.RefreshToken{},
				&identitydomain.BlacklistedToken{},
				&eventdomain.Event{},
				&feedbackdomain.Feedback{},
				&ratelimit.WindowHit{},
			); err != nil {
				return err
			}
		}

		if err := seed.EnsureRootTenant(conn, node, cfg.RootOrgID); err != nil {
			return err
		}

		exists, err := seed.RootAdminExists(context.Background(), conn)
		if err != nil {
			return err
		}
		if !exists {
			logger.Warn("no root administrator yet, POST /setup to create one")
		}
		return nil
	}),
)
