package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-device-manager/internal/config"
	"fleet-device-manager/internal/infrastructure/database/postgres"
	"fleet-device-manager/internal/ingestion"
	"fleet-device-manager/internal/logger"
	"fleet-device-manager/internal/routes"
	pkgmqtt "fleet-device-manager/pkg/mqtt"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// The presence feed is optional. Without a broker the service still runs;
	// projection simply reports stale or missing SOTI overlays.
	var processor *ingestion.Processor
	var feedClient *ingestion.MQTTFeedClient
	if cfg.SotiFeed.Broker != "" {
		sotiRepository := postgres.NewSotiRepository(db)
		processor = ingestion.NewProcessor(
			sotiRepository,
			cfg.SotiFeed.BatchSize,
			4,
			10000,
			cfg.SotiFeed.BatchTimeout,
		)
		processor.Start()

		feedClient, err = ingestion.NewMQTTFeedClient(&ingestion.MQTTFeedConfig{
			ClientConfig: &pkgmqtt.Config{
				Broker:               cfg.SotiFeed.Broker,
				ClientID:             cfg.SotiFeed.ClientID,
				Username:             cfg.SotiFeed.Username,
				Password:             cfg.SotiFeed.Password,
				KeepAlive:            cfg.SotiFeed.KeepAlive,
				ConnectTimeout:       cfg.SotiFeed.ConnectTimeout,
				AutoReconnect:        true,
				MaxReconnectInterval: time.Minute,
			},
			PresenceTopic: cfg.SotiFeed.PresenceTopic,
			QoS:           byte(cfg.SotiFeed.QoS),
		}, processor)
		if err != nil {
			logger.Fatal("Failed to configure presence feed", zap.Error(err))
		}
		if err := feedClient.Start(); err != nil {
			logger.Fatal("Failed to start presence feed", zap.Error(err))
		}
	} else {
		logger.Info("Presence feed disabled, SOTI_FEED_BROKER not set")
	}

	router := routes.SetupRoutes(cfg, db, processor)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	// Stop the feed after the HTTP server so in-flight requests keep seeing
	// fresh metrics, then flush whatever the processor buffered.
	if feedClient != nil {
		feedClient.Stop()
	}
	if processor != nil {
		processor.Stop()
	}

	logger.Info("Server exited properly")
}
