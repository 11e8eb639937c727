package feedback

import (
	"go.uber.org/fx"

	"github.com/feedbackpod/feedbackpod/internal/feedback/repository"
)

// Module wires feedback dependencies.
var Module = fx.Module("feedback",
	fx.Provide(
		repository.New,
		NewService,
	),
)
