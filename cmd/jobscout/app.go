package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/config"
	"github.com/daniel/jobscout/internal/db"
	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/logger"
	"github.com/daniel/jobscout/internal/pipeline"
	"github.com/daniel/jobscout/internal/sources"
)

// app bundles the wired-up collaborators a command needs.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *db.DB
	llm   llm.Client
	orch  *pipeline.Orchestrator
}

// loadMergedConfig loads the optional config file, applies environment
// fallbacks, and validates the result.
func loadMergedConfig(path string, override func(cfg *config.Config)) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if override != nil {
		override(cfg)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp connects the store and the model client and wires the orchestrator.
// The returned cleanup closes both.
func newApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	registry := sources.NewDefaultRegistry(sources.Config{
		SerpAPIKey:        cfg.SerpAPIKey,
		GreenhouseBoards:  cfg.GreenhouseBoards,
		LeverBoards:       cfg.LeverBoards,
		RequestsPerSecond: cfg.RequestsPerSecond,
		RequestBurst:      cfg.RequestBurst,
	})

	policy := sources.DefaultPolicy()
	if cfg.RetryAttempts > 0 {
		policy.MaxAttempts = cfg.RetryAttempts
	}

	orch := pipeline.New(store, client, registry, pipeline.Options{
		MatchThreshold: cfg.MatchThreshold,
		RetryPolicy:    policy,
	}, log)

	cleanup := func() {
		_ = client.Close()
		store.Close()
		_ = log.Sync()
	}

	return &app{cfg: cfg, log: log, store: store, llm: client, orch: orch}, cleanup, nil
}
