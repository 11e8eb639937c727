package identity

import (
	"github.com/feedbackpod/feedbackpod/internal/identity/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("identity",
	fx.Provide(
		repository.NewUserRepository,
		repository.NewTenantRepository,
		repository.NewTokenRepository,
	),
)
