package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"paycheckbuddy/internal/config"
	"paycheckbuddy/internal/datacache"
	"paycheckbuddy/internal/gateway"
	"paycheckbuddy/internal/gateway/api"
	"paycheckbuddy/internal/gateway/memory"
	"paycheckbuddy/internal/log"
	"paycheckbuddy/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: "app",
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Choose data backend (default: memory, seeded with demo data).
	var (
		auth      gateway.Authenticator
		gw        datacache.Gateway
		apiClient *api.Client
	)
	switch cfg.DataBackend {
	case "api":
		apiClient = api.New(cfg.APIBaseURL, cfg.RequestTimeout)
		auth, gw = apiClient, apiClient
		logger.Info("Initialized API backend", "base_url", cfg.APIBaseURL)
	default:
		store := memory.NewSeeded()
		auth, gw = store, store
		logger.Info("Initialized memory backend")
	}

	sess := session.New(auth)
	if apiClient != nil {
		apiClient.SetCredentials(sess)
	}

	cache := datacache.New(gw, sess)
	sess.OnChange(func(authenticated bool) {
		if !authenticated {
			cache.Reset()
		}
	})

	username, password := cfg.Username, cfg.Password
	if username == "" {
		username, password = "demo", "demo"
	}

	if err := sess.Login(ctx, username, password); err != nil {
		logger.Error("Login failed", "error", err, "username", username)
		os.Exit(1)
	}
	if user, ok := sess.User(); ok {
		logger.Info("Logged in", "user_id", user.ID, "username", user.Username)
	}

	if err := cache.LoadAll(ctx); err != nil {
		logger.Error("Failed to load user data", "error", err)
		os.Exit(1)
	}
	logger.Info("User data loaded",
		"time_periods", len(cache.TimePeriods()),
		"expenses", len(cache.Expenses()),
		"paychecks", len(cache.Paychecks()))

	if err := renderOverview(os.Stdout, cache); err != nil {
		logger.Error("Failed to render overview", "error", err)
		os.Exit(1)
	}

	if log.ParseLevel(cfg.LogLevel) == slog.LevelDebug {
		if err := dumpMetrics(os.Stderr); err != nil {
			logger.Warn("Failed to dump metrics", "error", err)
		}
	}

	sess.Logout()
}
