package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/Jguyatt/backend/internal/account"
	"github.com/Jguyatt/backend/internal/catalog"
	"github.com/Jguyatt/backend/internal/clock"
	"github.com/Jguyatt/backend/internal/config"
	"github.com/Jguyatt/backend/internal/lifecycle"
	"github.com/Jguyatt/backend/internal/observability"
	"github.com/Jguyatt/backend/internal/payment"
	"github.com/Jguyatt/backend/internal/purchase"
	"github.com/Jguyatt/backend/internal/server"
	"github.com/Jguyatt/backend/internal/store"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		store.Module,
		catalog.Module,

		purchase.Module,
		lifecycle.Module,
		account.Module,
		payment.Module,

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
