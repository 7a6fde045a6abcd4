package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nskopt/catalog-api/internal/api"
	"github.com/nskopt/catalog-api/internal/core/service"
	"github.com/nskopt/catalog-api/internal/infrastructure/config"
	mongodb "github.com/nskopt/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nskopt/catalog-api/internal/infrastructure/db/redis"
	"github.com/nskopt/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; this is the one place a bare exit is fine.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	users := mongodb.NewUserRepository(db)

	// A weak signing key must stop the process here: serving authenticated
	// traffic with a degraded scheme is not an option.
	tokens, err := service.NewTokenService(users, cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token service configuration invalid")
	}

	e := api.NewRouter(api.Dependencies{
		Log:        log,
		Tokens:     tokens,
		Users:      users,
		Products:   mongodb.NewProductRepository(db),
		Categories: mongodb.NewCategoryRepository(db),
		Images:     mongodb.NewImageRepository(db),
		ImageCache: redisdb.NewImageCache(rdb),
		Mongo:      db,
		Redis:      rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting catalog API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
