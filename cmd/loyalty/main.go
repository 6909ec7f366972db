package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/loyaltyhq/loyalty/internal/clock"
	"github.com/loyaltyhq/loyalty/internal/config"
	"github.com/loyaltyhq/loyalty/internal/customer"
	"github.com/loyaltyhq/loyalty/internal/logger"
	"github.com/loyaltyhq/loyalty/internal/loyalty"
	"github.com/loyaltyhq/loyalty/internal/metrics"
	"github.com/loyaltyhq/loyalty/internal/migration"
	"github.com/loyaltyhq/loyalty/internal/order"
	"github.com/loyaltyhq/loyalty/internal/scheduler"
	"github.com/loyaltyhq/loyalty/internal/server"
	"github.com/loyaltyhq/loyalty/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		metrics.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,

		// Domain modules
		customer.Module,
		loyalty.Module,
		order.Module,

		// Edges
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
