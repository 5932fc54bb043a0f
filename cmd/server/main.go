package main

import (
	"context"
	"fmt"

	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/handler"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/media"
	"github.com/vidtube/vidtube/internal/server"
	"github.com/vidtube/vidtube/internal/service"
	"github.com/vidtube/vidtube/internal/store"
	"github.com/vidtube/vidtube/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vidtube-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	uploader, err := media.NewUploader(cfg.Media, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating media uploader")
	}

	services := service.NewServices(storages, uploader, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
