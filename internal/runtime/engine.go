package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/parley/internal/adapters/tokenize"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ports"
)

// Default user-facing strings. All overridable per engine.
const (
	DefaultRepeatFallback   = "How can I help you?"
	DefaultCompleteResponse = "That covers everything. Is there anything else I can help you with?"
	DefaultErrorResponse    = "Sorry, something went wrong on my end. Could you say that differently?"
)

// Engine runs the dialogue pipeline: understanding, state tracking, policy,
// and generation, over one session's mutable state.
type Engine struct {
	source    ports.ScenarioSource
	tokenizer ports.Tokenizer

	recognizer *recognizer
	generator  *generator

	logger *slog.Logger
	hooks  domain.LifecycleHooks

	repeatSignals    []string
	completeResponse string
	errorResponse    string
	restartOnDone    bool
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithTokenizer injects a custom tokenizer (e.g. a language-specific
// segmenter). Defaults to the Unicode-aware simple tokenizer.
func WithTokenizer(t ports.Tokenizer) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.tokenizer = t
		}
	}
}

// WithRepeatSignals replaces the default repeat-interrupt phrase set.
func WithRepeatSignals(signals []string) EngineOption {
	return func(e *Engine) {
		e.repeatSignals = signals
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRepeatFallback sets the reply for a repeat interrupt that arrives
// before anything has been said.
func WithRepeatFallback(text string) EngineOption {
	return func(e *Engine) {
		e.generator.repeatFallback = text
	}
}

// WithCompleteResponse sets the reply for an exhausted scenario graph.
func WithCompleteResponse(text string) EngineOption {
	return func(e *Engine) {
		e.completeResponse = text
	}
}

// WithErrorResponse sets the safe fallback reply used when generation fails.
func WithErrorResponse(text string) EngineOption {
	return func(e *Engine) {
		e.errorResponse = text
	}
}

// WithRestartOnComplete controls whether an exhausted session is reseeded
// with the graph's entry nodes (default) or left exhausted, in which case
// every further turn returns the complete response.
func WithRestartOnComplete(restart bool) EngineOption {
	return func(e *Engine) {
		e.restartOnDone = restart
	}
}

// NewEngine creates an engine bound to a loaded scenario source.
func NewEngine(source ports.ScenarioSource, opts ...EngineOption) *Engine {
	e := &Engine{
		source:           source,
		tokenizer:        tokenize.New(),
		generator:        &generator{source: source, repeatFallback: DefaultRepeatFallback},
		logger:           logging.NewNop(),
		repeatSignals:    DefaultRepeatSignals,
		completeResponse: DefaultCompleteResponse,
		errorResponse:    DefaultErrorResponse,
		restartOnDone:    true,
	}
	for _, opt := range opts {
		opt(e)
	}

	// The recognizer pre-tokenizes repeat signals, so it is built after the
	// tokenizer option has been applied.
	e.recognizer = newRecognizer(source, e.tokenizer, e.repeatSignals)
	return e
}

// NewSession creates fresh session memory seeded with the graph's entry
// nodes and a generated session ID.
func (e *Engine) NewSession() *domain.State {
	return e.NewSessionWithID(uuid.NewString())
}

// NewSessionWithID creates fresh session memory with a caller-chosen ID.
func (e *Engine) NewSessionWithID(id string) *domain.State {
	return domain.NewState(id, e.source.EntryNodes())
}

// Source returns the scenario source the engine runs against.
func (e *Engine) Source() ports.ScenarioSource {
	return e.source
}

// RunTurn threads one user utterance through the pipeline, mutating state
// in place and returning the turn result.
//
// Per-turn failures never escape: an exhausted graph becomes a
// scenario-complete reply and a generation failure becomes the error
// fallback, both with valid state. The returned error is reserved for
// caller misuse (nil state).
func (e *Engine) RunTurn(ctx context.Context, state *domain.State, utterance string) (*domain.Turn, error) {
	if state == nil {
		return nil, fmt.Errorf("run turn: state must not be nil")
	}

	e.emitTurnStart(ctx, state, utterance)

	rec, err := e.recognizer.Recognize(utterance, state)
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidateNodes) {
			return e.finishTurn(ctx, state, e.completeTurn(state)), nil
		}
		// No other recognizer errors exist today; treat unknowns like an
		// exhausted graph rather than crashing the turn.
		e.logger.Error("recognizer failed", "session_id", state.SessionID, "error", err)
		return e.finishTurn(ctx, state, e.completeTurn(state)), nil
	}

	if rec.IsRepeat {
		return e.finishTurn(ctx, state, e.repeatTurn(state)), nil
	}

	return e.finishTurn(ctx, state, e.normalTurn(ctx, state, rec)), nil
}

// repeatTurn replays the previous response. Node, slots, and reachable set
// stay exactly as they were entering the turn.
func (e *Engine) repeatTurn(state *domain.State) *domain.Turn {
	response := e.generator.Repeat(state.LastResponse)
	state.LastAction = domain.ActionRepeat

	e.logger.Debug("repeat interrupt",
		"session_id", state.SessionID,
		"node", state.HitNode,
	)

	return &domain.Turn{
		Response:    response,
		Action:      domain.ActionRepeat,
		HitNode:     state.HitNode,
		RequireSlot: state.RequireSlot,
	}
}

// completeTurn handles an exhausted scenario graph: answer with the
// configured completion reply and, by default, reseed the session so the
// next utterance starts the script over.
func (e *Engine) completeTurn(state *domain.State) *domain.Turn {
	if e.restartOnDone {
		state.Reset(e.source.EntryNodes())
	}
	state.LastResponse = e.completeResponse
	state.LastAction = domain.ActionComplete

	e.logger.Debug("scenario complete", "session_id", state.SessionID)

	return &domain.Turn{
		Response: e.completeResponse,
		Action:   domain.ActionComplete,
	}
}

// normalTurn runs tracking, policy, and generation for a recognized intent.
func (e *Engine) normalTurn(ctx context.Context, state *domain.State, rec *Recognition) *domain.Turn {
	node, ok := e.source.Node(rec.HitNode)
	if !ok {
		// AvailableNodes is always a subset of loaded IDs, so this is a
		// broken invariant; recover with the error fallback.
		e.logger.Error("hit node missing from source",
			"session_id", state.SessionID,
			"node", rec.HitNode,
		)
		state.LastResponse = e.errorResponse
		state.LastAction = domain.ActionReply
		return &domain.Turn{Response: e.errorResponse, Action: domain.ActionReply}
	}

	e.mergeSlots(ctx, state, node, rec.ExtractedSlots)

	requireSlot := trackState(node, state.FilledSlots)
	decision := decide(false, requireSlot, node, state)

	if state.HitNode != node.ID {
		state.History = append(state.History, node.ID)
	}
	state.HitNode = node.ID
	state.RequireSlot = requireSlot
	state.AvailableNodes = decision.AvailableNodes
	state.LastAction = decision.Action

	e.logger.Debug("turn decided",
		"session_id", state.SessionID,
		"node", node.ID,
		"score", rec.Score,
		"action", decision.Action,
		"require_slot", requireSlot,
	)

	response := e.render(state, node, decision.Action, requireSlot)
	state.LastResponse = response

	return &domain.Turn{
		Response:    response,
		Action:      decision.Action,
		HitNode:     node.ID,
		RequireSlot: requireSlot,
	}
}

// render produces the reply text for a request or reply action, recovering
// locally from template failures.
func (e *Engine) render(state *domain.State, node *domain.Node, action domain.Action, requireSlot string) string {
	if action == domain.ActionRequest {
		return e.generator.Request(requireSlot)
	}

	response, err := e.generator.Reply(node, state.FilledSlots)
	if err != nil {
		e.logger.Error("response generation failed",
			"session_id", state.SessionID,
			"node", node.ID,
			"error", err,
		)
		return e.errorResponse
	}
	return response
}

// mergeSlots folds newly extracted values into the session. Filled slots
// are never overwritten; the recognizer only extracts missing ones, and
// this guards the invariant a second time.
func (e *Engine) mergeSlots(ctx context.Context, state *domain.State, node *domain.Node, extracted map[string]string) {
	for slot, value := range extracted {
		if _, done := state.FilledSlots[slot]; done {
			continue
		}
		state.FilledSlots[slot] = value
		e.emitSlotFill(ctx, state, node.ID, slot, value)
	}
}

func (e *Engine) finishTurn(ctx context.Context, state *domain.State, turn *domain.Turn) *domain.Turn {
	state.Turns++
	e.emitTurnEnd(ctx, state, turn)
	return turn
}

func (e *Engine) emitTurnStart(ctx context.Context, state *domain.State, utterance string) {
	if e.hooks.OnTurnStart == nil {
		return
	}
	e.hooks.OnTurnStart(ctx, &domain.TurnEvent{
		EventBase: eventBase(domain.EventTurnStart, state.SessionID),
		Utterance: utterance,
	})
}

func (e *Engine) emitTurnEnd(ctx context.Context, state *domain.State, turn *domain.Turn) {
	if e.hooks.OnTurnEnd == nil {
		return
	}
	e.hooks.OnTurnEnd(ctx, &domain.TurnEvent{
		EventBase: eventBase(domain.EventTurnEnd, state.SessionID),
		HitNode:   turn.HitNode,
		Action:    turn.Action,
	})
}

func (e *Engine) emitSlotFill(ctx context.Context, state *domain.State, nodeID, slot, value string) {
	if e.hooks.OnSlotFill == nil {
		return
	}
	e.hooks.OnSlotFill(ctx, &domain.SlotEvent{
		EventBase: eventBase(domain.EventSlotFill, state.SessionID),
		Node:      nodeID,
		Slot:      slot,
		Value:     value,
	})
}

func eventBase(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: sessionID,
	}
}
