package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/p-n-ai/freecourses/internal/curriculum"
	"github.com/p-n-ai/freecourses/internal/events"
	"github.com/p-n-ai/freecourses/internal/platform/cache"
	"github.com/p-n-ai/freecourses/internal/platform/config"
	"github.com/p-n-ai/freecourses/internal/platform/database"
	"github.com/p-n-ai/freecourses/internal/web"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.Log))

	content, err := curriculum.NewLoader(cfg.ContentPath)
	if err != nil {
		slog.Error("failed to load content", "path", cfg.ContentPath, "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ready := &readiness{version: content.Version()}
	sinks := events.MultiLogger{}

	if cfg.Database.Enabled() {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, events.NewPostgresLogger(db.Pool))
		ready.add("database", db.HealthCheck)
		slog.Info("postgres event sink enabled")
	}

	if cfg.Cache.Enabled() {
		c, err := cache.New(ctx, cfg.Cache)
		if err != nil {
			slog.Error("failed to connect to cache", "error", err)
			os.Exit(1)
		}
		defer c.Close()
		sinks = append(sinks, events.NewRedisLogger(c, cfg.Events.Stream, cfg.Events.StreamMaxLen))
		ready.add("cache", c.HealthCheck)
		slog.Info("stream event sink enabled", "stream", cfg.Events.Stream)
	}

	var sink events.Logger = events.NopLogger{}
	if len(sinks) > 0 {
		sink = sinks
	}

	site := web.NewServer(web.ServerConfig{
		Content:        content,
		Events:         sink,
		OriginPatterns: cfg.Server.AllowedOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     newMux(ready, site),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: websocket connections are long-lived.
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func newLogger(c config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
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
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// readiness reports the content version and the health of optional backends.
type readiness struct {
	version string
	names   []string
	checks  []func(context.Context) error
}

func (r *readiness) add(name string, check func(context.Context) error) {
	r.names = append(r.names, name)
	r.checks = append(r.checks, check)
}

// newMux creates the HTTP router with health check endpoints and the site routes.
func newMux(ready *readiness, site *web.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", ready.handle)
	if site != nil {
		site.Register(mux)
	}
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

type readyResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (r *readiness) handle(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	resp := readyResponse{Status: "ready", Version: r.version}
	code := http.StatusOK
	for i, check := range r.checks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(r.checks))
		}
		if err := check(ctx); err != nil {
			slog.Warn("readiness check failed", "check", r.names[i], "error", err)
			resp.Checks[r.names[i]] = err.Error()
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[r.names[i]] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
