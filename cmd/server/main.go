package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/kindling-app/kindling-backend/internal/app"
	"github.com/kindling-app/kindling-backend/internal/cache"
	"github.com/kindling-app/kindling-backend/internal/config"
	"github.com/kindling-app/kindling-backend/internal/db"
	"github.com/kindling-app/kindling-backend/internal/handlers"
	"github.com/kindling-app/kindling-backend/internal/logger"
	"github.com/kindling-app/kindling-backend/internal/server"
	"github.com/kindling-app/kindling-backend/internal/service/account"
	"github.com/kindling-app/kindling-backend/internal/service/chat"
	"github.com/kindling-app/kindling-backend/internal/service/connect"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		return
	}

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB (schema is auto-created on first startup)
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Inject logger into app context
	appCtx := app.New(database, redisCache, log)

	if cfg.AppEnv == "development" {
		if err := db.SeedDemoData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.NewHandler(
		cfg,
		log,
		account.NewService(appCtx),
		connect.NewService(appCtx),
		chat.NewService(appCtx),
	)

	if err := server.StartHTTPServer(ctx, cfg, h.SetupRouter()); err != nil {
		log.Error("failed to run HTTP server", "err", err)
	}
}
