package parley

import (
	"context"
	"log/slog"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ports"
	"github.com/aretw0/parley/pkg/scenario"
)

// Version is the library version, shown by the CLI banner and version command.
const Version = "0.4.0"

// Engine is the high-level entry point for the Parley library.
// It wraps the internal turn pipeline and provides a simplified API for
// consumers: load scenarios once, then run turns against per-session state.
type Engine struct {
	runtime *runtime.Engine
	source  ports.ScenarioSource
	logger  *slog.Logger

	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTokenizer injects a custom tokenizer behind the recognizer.
func WithTokenizer(t ports.Tokenizer) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithTokenizer(t))
	}
}

// WithRepeatSignals replaces the default repeat-interrupt phrases.
func WithRepeatSignals(signals []string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRepeatSignals(signals))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithCompleteResponse sets the reply used when the scenario graph is
// exhausted.
func WithCompleteResponse(text string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithCompleteResponse(text))
	}
}

// WithRepeatFallback sets the reply for a repeat interrupt arriving before
// anything has been said.
func WithRepeatFallback(text string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRepeatFallback(text))
	}
}

// WithRestartOnComplete controls whether exhausted sessions restart at the
// graph entry nodes (default true).
func WithRestartOnComplete(restart bool) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRestartOnComplete(restart))
	}
}

// New loads scenario documents plus a slot table from disk and initializes
// an engine. Load problems (malformed files, dangling child references,
// undefined slots) are fatal here; nothing later in the conversation can
// fail that way.
func New(scenarioPaths []string, slotPath string, opts ...Option) (*Engine, error) {
	store, err := scenario.LoadFiles(scenarioPaths, slotPath)
	if err != nil {
		return nil, err
	}
	return NewFromSource(store, opts...), nil
}

// NewFromSource initializes an engine on an already-built scenario source,
// bypassing file loading (embedded graphs, tests).
func NewFromSource(source ports.ScenarioSource, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	runtimeOpts := append([]runtime.EngineOption{runtime.WithLogger(e.logger)}, e.runtimeOpts...)
	e.runtime = runtime.NewEngine(source, runtimeOpts...)
	return e
}

// NewSession creates fresh session memory seeded at the graph entry nodes.
func (e *Engine) NewSession() *domain.State {
	return e.runtime.NewSession()
}

// NewSessionWithID creates fresh session memory with a caller-chosen ID.
func (e *Engine) NewSessionWithID(id string) *domain.State {
	return e.runtime.NewSessionWithID(id)
}

// RunTurn processes one user utterance against a session, mutating the
// state in place and returning the response. It always returns a usable
// turn for a non-nil state; per-turn errors are recovered internally.
func (e *Engine) RunTurn(ctx context.Context, state *domain.State, utterance string) (*domain.Turn, error) {
	return e.runtime.RunTurn(ctx, state, utterance)
}

// Source exposes the read-only scenario source (introspection, drivers).
func (e *Engine) Source() ports.ScenarioSource {
	return e.source
}

// Inspect returns the full node list for visualization tools.
func (e *Engine) Inspect() []domain.Node {
	if s, ok := e.source.(*scenario.Store); ok {
		return s.Nodes()
	}
	ids := e.source.NodeIDs()
	nodes := make([]domain.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := e.source.Node(id); ok {
			nodes = append(nodes, *n)
		}
	}
	return nodes
}
