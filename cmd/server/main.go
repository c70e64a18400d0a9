package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taylormck/japanese-properties-api/internal/api"
	"github.com/taylormck/japanese-properties-api/internal/auth"
	"github.com/taylormck/japanese-properties-api/internal/config"
	"github.com/taylormck/japanese-properties-api/internal/ingest"
	"github.com/taylormck/japanese-properties-api/internal/metrics"
	"github.com/taylormck/japanese-properties-api/internal/notify"
	"github.com/taylormck/japanese-properties-api/internal/store"
	"github.com/taylormck/japanese-properties-api/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional — used for API keys and webhook URLs in development.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no config file — using defaults", "path", *configPath)
		cfg = config.Default()
	case err != nil:
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// The PORT environment variable wins over the config file, so the same
	// image runs unmodified on platforms that assign ports.
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			slog.Error("invalid PORT environment variable", "value", p)
			os.Exit(1)
		}
		cfg.Server.HTTPPort = port
	}

	slog.Info("properties-api starting",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"max_upload_bytes", cfg.Server.Upload.MaxBytes,
		"watch_path", cfg.Server.Watch.Path,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st := store.New()
	m := metrics.New()
	notifier := notify.New(cfg.Server.Webhooks)

	// One ingester per ingest source so notifications carry their origin.
	ingestFn := func(source string) func(ingest.Result) {
		return func(res ingest.Result) {
			go notifier.Publish(notify.Event{
				Count:      res.Count,
				Generation: res.Generation,
				Source:     source,
				At:         time.Now().UTC().Format(time.RFC3339),
			})
		}
	}
	uploadIngester := ingest.New(st, m, ingestFn("upload"))

	// Optional: re-ingest a CSV file from disk whenever it changes.
	if path := cfg.Server.Watch.Path; path != "" {
		watchIngester := ingest.New(st, m, ingestFn("watch"))
		go func() {
			if err := ingest.Watch(ctx, path, watchIngester); err != nil {
				slog.Error("file watcher stopped", "path", path, "err", err)
			}
		}()
	}

	// WebSocket hub — broadcasts the current generation to connected clients.
	hub := ws.New(st, time.Duration(cfg.Server.Stream.Interval))
	go hub.Run(ctx)

	handler := api.New(st, uploadIngester, api.Options{
		MaxUploadBytes: cfg.Server.Upload.MaxBytes,
		UploadAuth: auth.Middleware(
			cfg.Server.Auth.Mode,
			cfg.Server.Auth.EffectiveHeader(),
			cfg.Server.Auth.Key(),
		),
		Metrics: m,
	})

	httpMux := http.NewServeMux()
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", m.Handler(st))
	httpMux.Handle("/", handler)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("properties-api shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
