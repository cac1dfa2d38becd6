package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"device-telemetry-hub/internal/api"
	"device-telemetry-hub/internal/config"
	"device-telemetry-hub/internal/db"
	"device-telemetry-hub/internal/hub"
	k "device-telemetry-hub/internal/kafka"
	"device-telemetry-hub/internal/mirror"
)

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	slog.InfoContext(ctx, "Starting service...")

	store, err := db.Init(ctx, db.Config{
		ConnString:     cfg.Database.URL,
		MigrationsPath: cfg.Database.MigrationsPath,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	hubCfg := hub.Config{
		QueueSize:    cfg.Hub.QueueSize,
		WriteTimeout: cfg.Hub.WriteTimeout,
		PingInterval: cfg.Hub.PingInterval,
		PongTimeout:  cfg.Hub.PongTimeout,
	}

	wg := sync.WaitGroup{}
	var eventMirror *mirror.Mirror
	if cfg.MirrorEnabled() {
		eventMirror = mirror.New(mirror.Config{
			Writer: k.NewWriter(k.WriterConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
			}),
			QueueSize: cfg.Kafka.QueueSize,
		})
		hubCfg.Taps = append(hubCfg.Taps, eventMirror)
		wg.Go(func() {
			eventMirror.Run(ctx)
		})
		slog.InfoContext(ctx, "Kafka mirror enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	broadcastHub := hub.New(hubCfg)

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: api.NewRouter(api.RouterConfig{
			API: api.New(api.Config{
				DB:  store,
				Hub: broadcastHub,
			}),
			Subscribers: broadcastHub,
			WSPath:      cfg.Hub.WSPath,
			Ping:        store.Ping,
		}),
	}

	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", cfg.HTTP.Addr, "ws_path", cfg.Hub.WSPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
			cancel()
		}
	}()

	select {
	case <-sigs:
		slog.InfoContext(ctx, "Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
	defer shutdownCancel()

	// Hijacked websocket connections are not tracked by Shutdown, so the hub
	// is closed first to release them.
	broadcastHub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "HTTP server shutdown error", "error", err)
	}

	cancel()
	wg.Wait()
	if eventMirror != nil {
		eventMirror.Close(shutdownCtx)
	}
	slog.InfoContext(shutdownCtx, "Service stopped")
}
