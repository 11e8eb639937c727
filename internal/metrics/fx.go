package metrics

import "go.uber.org/fx"

// Module wires the Prometheus collectors.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
