package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/enginequip/quotation-backend/api/routes"
	"github.com/enginequip/quotation-backend/internal/auth"
	"github.com/enginequip/quotation-backend/internal/catalog"
	"github.com/enginequip/quotation-backend/internal/parts"
	"github.com/enginequip/quotation-backend/internal/quotations"
	"github.com/enginequip/quotation-backend/internal/users"
	"github.com/enginequip/quotation-backend/pkg/auth/session"
	"github.com/enginequip/quotation-backend/pkg/config"
	"github.com/enginequip/quotation-backend/pkg/db"
	"github.com/enginequip/quotation-backend/pkg/logger"
	"github.com/enginequip/quotation-backend/pkg/migrate"
	"github.com/enginequip/quotation-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(users.NewRepository(dbClient.DB()), sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	partsRepo := parts.NewRepository(dbClient.DB())

	partsService, err := parts.NewService(partsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create parts service", err)
		os.Exit(1)
	}

	quotationsService, err := quotations.NewService(
		quotations.NewRepository(dbClient.DB()),
		dbClient,
		quotations.NewNumberGenerator(cfg.Quote),
		partsRepo,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quotations service", err)
		os.Exit(1)
	}

	draftStore, err := quotations.NewDraftStore(redisClient, cfg.Draft)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft store", err)
		os.Exit(1)
	}

	draftService, err := quotations.NewDraftService(draftStore, catalogService, quotationsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			authService,
			catalogService,
			partsService,
			quotationsService,
			draftService,
			prometheus.NewRegistry(),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
