package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/plantmatch/internal/assistant"
	"github.com/HerbHall/plantmatch/internal/auth"
	"github.com/HerbHall/plantmatch/internal/catalog"
	"github.com/HerbHall/plantmatch/internal/config"
	"github.com/HerbHall/plantmatch/internal/garden"
	"github.com/HerbHall/plantmatch/internal/metrics"
	"github.com/HerbHall/plantmatch/internal/server"
	"github.com/HerbHall/plantmatch/internal/services"
	"github.com/HerbHall/plantmatch/internal/store"
	"github.com/HerbHall/plantmatch/internal/version"
	"github.com/HerbHall/plantmatch/internal/wishlist"
)

func newServeCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := loadSettings(configPath())
			if err != nil {
				return err
			}
			logger, err := newLogger(settings.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, settings, logger)
		},
	}
}

func serve(ctx context.Context, settings config.Settings, logger *zap.Logger) error {
	logger.Info("PlantMatch server starting", zap.String("version", version.Short()))

	engine, err := newEngine(settings.Catalog)
	if err != nil {
		return err
	}

	db, err := store.New(settings.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(reg)

	opts := []server.Option{
		server.WithMetrics(rec),
		server.WithRoutes(catalog.NewHandler(engine, logger.Named("catalog"), rec)),
	}

	if settings.Auth.JWTSecret != "" {
		gardenRepo, err := services.NewSQLiteGardenRepository(ctx, db, nil)
		if err != nil {
			return err
		}
		wishlistRepo, err := services.NewSQLiteWishlistRepository(ctx, db, nil)
		if err != nil {
			return err
		}
		mw := auth.NewMiddleware(auth.NewVerifier(settings.Auth.JWTSecret, settings.Auth.Issuer), logger.Named("auth"))
		opts = append(opts, server.WithRoutes(
			garden.NewHandler(gardenRepo, engine, mw, logger.Named("garden")),
			wishlist.NewHandler(wishlistRepo, engine, mw, logger.Named("wishlist")),
		))
	} else {
		logger.Warn("auth.jwt_secret is not set; garden and wishlist endpoints are disabled")
	}

	if settings.RateLimit.Enabled {
		trusted, err := server.ParseTrustedProxies(settings.RateLimit.TrustedProxies)
		if err != nil {
			return fmt.Errorf("ratelimit: %w", err)
		}
		opts = append(opts, server.WithRateLimiter(server.NewRateLimiter(
			settings.RateLimit.RPS, settings.RateLimit.Burst, server.WithTrustedProxies(trusted))))
	}

	if settings.MCP.Enabled {
		mcpServer := assistant.NewServer(engine, logger.Named("assistant"))
		opts = append(opts, server.WithHandler("/mcp", assistant.NewHTTPHandler(mcpServer)))
	}

	srv := server.New(settings.Server.Addr(), logger, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server shutdown error", zap.Error(err))
			return err
		}
		return nil
	})

	logger.Info("PlantMatch server ready", zap.String("addr", settings.Server.Addr()))
	err = g.Wait()
	logger.Info("PlantMatch server stopped")
	return err
}
