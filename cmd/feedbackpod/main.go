package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/config"
	"github.com/feedbackpod/feedbackpod/internal/logger"
	"github.com/feedbackpod/feedbackpod/internal/server"
	"github.com/feedbackpod/feedbackpod/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// HTTP server plus every feature module it serves
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
