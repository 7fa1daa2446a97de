package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/campusfound/campusfound/internal/api"
	"github.com/campusfound/campusfound/internal/config"
	"github.com/campusfound/campusfound/internal/db"
	"github.com/campusfound/campusfound/internal/imagehost"
	"github.com/campusfound/campusfound/internal/session"
	"github.com/campusfound/campusfound/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR
// goes to stderr. If logPath is non-empty, all levels are also written to
// that file. Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	cfg := config.Load()

	cleanup, err := setupLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Auto-generate the session secret if not provided.
	if cfg.SessionSecret == "" {
		secret, err := generateSecret(32)
		if err != nil {
			slog.Error("failed to generate session secret", "error", err)
			os.Exit(1)
		}
		cfg.SessionSecret = secret
		slog.Info("session secret auto-generated (sessions will be invalidated on restart)")
	}

	// Open database and run migrations (idempotent).
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Session store: Redis when configured, the application database otherwise.
	var sessions session.Store
	if cfg.SessionRedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.SessionRedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.SessionRedisAddr, "error", err)
			os.Exit(1)
		}
		sessions = session.NewRedisStore(client)
		slog.Info("using redis session store", "addr", cfg.SessionRedisAddr)
	} else {
		sessions = session.NewSQLStore(database)
	}

	// Photo hosting: external service when a key is configured, a local
	// directory served under /uploads/ otherwise.
	var uploader imagehost.Uploader
	uploadsDir := ""
	if cfg.ImageHostKey != "" {
		uploader = imagehost.NewHTTPHost(cfg.ImageHostURL, cfg.ImageHostKey)
	} else {
		local, err := imagehost.NewLocalHost(cfg.UploadsPath)
		if err != nil {
			slog.Error("failed to set up local photo storage", "error", err)
			os.Exit(1)
		}
		uploader = local
		uploadsDir = cfg.UploadsPath
		slog.Info("no image host key configured, storing photos locally", "dir", uploadsDir)
	}

	// Set up routers: API routes take priority, web routes handle the rest.
	apiRouter := api.NewRouter(database, cfg.SessionSecret, sessions)
	webRouter, err := web.NewRouter(database, cfg.SessionSecret, sessions, uploader, uploadsDir)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		slog.Info("server listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// generateSecret creates a random hex secret of the given byte length.
func generateSecret(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
