package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/adapters"
	"github.com/aretw0/parley/internal/adapters/memory"
	redisstore "github.com/aretw0/parley/internal/adapters/redis"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/session"
)

// createLogger configures the application logger. Debug output goes to
// stderr so stdout stays clean for the conversation.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(opts RunOptions, logger *slog.Logger) (*parley.Engine, error) {
	engineOpts := []parley.Option{
		parley.WithLogger(logger),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, parley.WithLifecycleHooks(createDebugHooks(logger)))
	}

	engine, err := parley.New(opts.ScenarioPaths, opts.SlotPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing parley: %w", err)
	}
	return engine, nil
}

// setupPersistence picks the state store: Redis when a URL is given, a file
// store when a path is given, memory otherwise. The returned func closes
// whatever needs closing.
func setupPersistence(opts RunOptions, logger *slog.Logger) (*session.Manager, func(), error) {
	managerOpts := []session.Option{session.WithLogger(logger)}

	if opts.RedisURL != "" {
		store := redisstore.New(opts.RedisURL, "", 0)
		manager := session.NewManager(store, managerOpts...)
		return manager, func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close redis store", "err", err)
			}
		}, nil
	}

	if opts.StorePath != "" {
		store := adapters.NewFileStore(opts.StorePath)
		return session.NewManager(store, managerOpts...), func() {}, nil
	}

	return session.NewManager(memory.New(), managerOpts...), func() {}, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(ctx context.Context, e *domain.TurnEvent) {
			logger.Debug("Turn Start", "session_id", e.SessionID, "utterance", e.Utterance)
		},
		OnTurnEnd: func(ctx context.Context, e *domain.TurnEvent) {
			logger.Debug("Turn End", "session_id", e.SessionID, "node", e.HitNode, "action", e.Action)
		},
		OnSlotFill: func(ctx context.Context, e *domain.SlotEvent) {
			logger.Debug("Slot Filled", "node", e.Node, "slot", e.Slot, "value", e.Value)
		},
	}
}
