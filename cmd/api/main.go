package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/accountly/user-service/docs"
	"github.com/accountly/user-service/internal/api"
	"github.com/accountly/user-service/internal/infrastructure/config"
	mongodb "github.com/accountly/user-service/internal/infrastructure/db/mongo"
	"github.com/accountly/user-service/pkg/logger"
)

// @title        User Account API
// @version      1.0
// @description  Minimal user-account REST API: registration, login, and CRUD.
// @BasePath     /api/users
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid mongodb configuration")
	}

	if err := mongodb.Ping(ctx, client, 10*time.Second); err != nil {
		// Lenient startup: serve anyway, data operations fail per
		// request until the database comes back.
		log.Warn().Err(err).Msg("mongodb unreachable at startup, continuing")
	} else {
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure indexes")
		}
	}

	e := api.NewRouter(cfg, db, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server running")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
}
