// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"mottars_backend/internal/app"
	"mottars_backend/internal/config"
	"mottars_backend/internal/detail"
	"mottars_backend/internal/draft"
	"mottars_backend/internal/filestorage"
	"mottars_backend/internal/jobs"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/seller"
	"mottars_backend/internal/session"
	"mottars_backend/internal/verification"
	"mottars_backend/internal/view"

	"github.com/google/wire"
	"github.com/jonboulle/clockwork"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideDatabase,
		provideRedis,
		clockwork.NewRealClock,
		provideViewRegistry,
		provideFileStorage,
		wire.Bind(new(draft.PhotoStore), new(*filestorage.FileStorageService)),
		wire.Bind(new(jobs.IdleSweeper), new(*view.Registry)),

		// Sessions
		session.NewStore,
		session.NewService,
		session.NewHandler,

		// Domain Modules
		listing.NewGORMRepository,
		listing.NewService,
		listing.NewHandler,
		detail.NewService,
		detail.NewHandler,
		verification.NewGORMRepository,
		verification.NewService,
		verification.NewHandler,
		draft.NewService,
		draft.NewHandler,
		seller.NewService,
		seller.NewHandler,
		jobs.NewViewSweeperJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

// initializeCommands builds the services used by the maintenance commands.
func initializeCommands(cfg *config.Config) (*commands, func(), error) {
	wire.Build(
		provideLogger,
		provideDatabase,
		provideRedis,
		clockwork.NewRealClock,
		provideViewRegistry,
		session.NewStore,
		session.NewService,
		listing.NewGORMRepository,
		listing.NewService,
		verification.NewGORMRepository,
		verification.NewService,
		wire.Struct(new(commands), "*"),
	)
	return nil, nil, nil
}
