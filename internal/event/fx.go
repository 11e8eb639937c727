package event

import (
	"go.uber.org/fx"

	"github.com/feedbackpod/feedbackpod/internal/event/repository"
)

// Module wires event dependencies.
var Module = fx.Module("event",
	fx.Provide(
		repository.New,
		NewService,
	),
)
