package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"token_creator/internal/app/port"
	"token_creator/internal/app/provider"
	"token_creator/internal/app/service"
	"token_creator/internal/infrastructure/configloader"
	"token_creator/internal/infrastructure/metrics"
	"token_creator/internal/infrastructure/restapi"
	"token_creator/internal/pkg/logger"
	"token_creator/internal/pkg/utils"
)

const defaultConfigPath = "config/config.yml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.InitZap(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Token creator starting",
		zap.String("config", configPath),
		zap.String("walletMode", cfg.Wallet.Mode),
		zap.String("network", cfg.Network.Name))

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewSlogAdapter()
	recorder := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
	clk := clock.New()

	addresses := utils.NewMockAddressGenerator(nil)
	minter := provider.NewSimulatedMinter(clk, cfg.SimulatedLatency(), addresses.Next, appLogger.With("component", "minter"))
	wallets := provider.NewWalletProvider(cfg.Wallet.Mode, appLogger.With("component", "wallets"))

	viewOpts := service.ViewOptions{
		WalletName:                    cfg.Wallet.Name,
		NotificationTTL:               cfg.NotificationTTL(),
		CancelSupersededNotifications: cfg.CancelSupersededNotifications(),
	}
	sessions := service.NewSessionRegistry(cfg.SessionTTL(), cfg.SessionCleanupInterval(),
		func(sessionID string) port.TokenCreatorView {
			return service.NewTokenCreatorView(minter, clk, recorder, zapLogger.With(zap.String("session", sessionID)), viewOpts)
		},
		recorder, appLogger.With("component", "sessions"))
	defer sessions.Close()

	router, err := restapi.SetupRouter(restapi.RouterDeps{
		Config:   cfg,
		Sessions: sessions,
		Wallets:  wallets,
		Metrics:  recorder,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("Failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		// Живые websocket-соединения завершаются вместе с сессиями.
		sessions.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting")
}
