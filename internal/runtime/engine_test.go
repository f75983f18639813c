package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ports"
	"github.com/aretw0/parley/pkg/scenario"
)

// newShopSource builds a small clothes-shop graph: an order node collecting
// two slots, then a terminal confirmation.
func newShopSource(t *testing.T) ports.ScenarioSource {
	t.Helper()
	src, err := scenario.New(
		[]domain.Node{
			{
				ID:       "shop/order",
				Intents:  []string{"i want to buy a shirt", "buy a shirt"},
				Slots:    []string{"#size#", "#color#"},
				Response: "Got it, one #color# shirt in size #size#.",
				Children: []string{"shop/confirm"},
			},
			{
				ID:       "shop/confirm",
				Intents:  []string{"yes please", "confirm"},
				Response: "Order placed.",
			},
		},
		[]domain.SlotDefinition{
			{Name: "#size#", Pattern: "small|medium|large", Prompt: "What size would you like?"},
			{Name: "#color#", Pattern: "red|blue|black", Prompt: "What color would you like?"},
		},
	)
	require.NoError(t, err)
	return src
}

func TestEngineFullConversation(t *testing.T) {
	engine := NewEngine(newShopSource(t))
	state := engine.NewSession()
	ctx := context.Background()

	require.Equal(t, []string{"shop/order"}, state.AvailableNodes,
		"only unreferenced roots are entry nodes")

	// Turn 1: intent hits, no slot value in the utterance, so the engine
	// asks for the first declared slot.
	turn, err := engine.RunTurn(ctx, state, "I want to buy a shirt")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRequest, turn.Action)
	assert.Equal(t, "What size would you like?", turn.Response)
	assert.Equal(t, "#size#", turn.RequireSlot)
	assert.Equal(t, []string{"shop/order"}, state.AvailableNodes, "request pins the node")

	// Turn 2: a bare slot answer. The pinned node wins despite zero
	// intent overlap.
	turn, err = engine.RunTurn(ctx, state, "medium")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRequest, turn.Action)
	assert.Equal(t, "What color would you like?", turn.Response)
	assert.Equal(t, "medium", state.FilledSlots["#size#"])

	// Turn 3: last slot arrives, template renders, graph advances.
	turn, err = engine.RunTurn(ctx, state, "blue please")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionReply, turn.Action)
	assert.Equal(t, "Got it, one blue shirt in size medium.", turn.Response)
	assert.Equal(t, []string{"shop/confirm"}, state.AvailableNodes)

	// Turn 4: terminal node replies and leaves nothing reachable.
	turn, err = engine.RunTurn(ctx, state, "yes please")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionReply, turn.Action)
	assert.Equal(t, "Order placed.", turn.Response)
	assert.True(t, state.Exhausted())

	// Turn 5: exhausted graph surfaces the completion reply and, by
	// default, reseeds the session.
	turn, err = engine.RunTurn(ctx, state, "thanks")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionComplete, turn.Action)
	assert.Equal(t, DefaultCompleteResponse, turn.Response)
	assert.Equal(t, []string{"shop/order"}, state.AvailableNodes)
	assert.Empty(t, state.FilledSlots, "restart clears collected slots")

	assert.Equal(t, 5, state.Turns)
	assert.Equal(t, []string{"shop/order", "shop/confirm"}, state.History)
}

func TestEngineSlotFromFirstUtterance(t *testing.T) {
	engine := NewEngine(newShopSource(t))
	state := engine.NewSession()

	turn, err := engine.RunTurn(context.Background(), state, "buy a medium shirt")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRequest, turn.Action)
	assert.Equal(t, "#color#", turn.RequireSlot,
		"a slot supplied up front is skipped, the next missing one is asked")
	assert.Equal(t, "medium", state.FilledSlots["#size#"])
}

func TestEngineRepeatLeavesStateUntouched(t *testing.T) {
	engine := NewEngine(newShopSource(t))
	state := engine.NewSession()
	ctx := context.Background()

	_, err := engine.RunTurn(ctx, state, "buy a shirt")
	require.NoError(t, err)

	before := state.Clone()

	turn, err := engine.RunTurn(ctx, state, "sorry, say that again?")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRepeat, turn.Action)
	assert.Equal(t, "What size would you like?", turn.Response,
		"repeat replays the previous reply verbatim")

	assert.Equal(t, before.AvailableNodes, state.AvailableNodes)
	assert.Equal(t, before.FilledSlots, state.FilledSlots)
	assert.Equal(t, before.HitNode, state.HitNode)
	assert.Equal(t, before.RequireSlot, state.RequireSlot)
	assert.Equal(t, before.LastResponse, state.LastResponse)
	assert.Equal(t, before.Turns+1, state.Turns, "repeat still counts as a turn")

	// Consecutive repeats return the identical string.
	again, err := engine.RunTurn(ctx, state, "pardon")
	require.NoError(t, err)
	assert.Equal(t, turn.Response, again.Response)

	// The conversation resumes where it left off.
	turn, err = engine.RunTurn(ctx, state, "large")
	require.NoError(t, err)
	assert.Equal(t, "What color would you like?", turn.Response)
}

func TestEngineRepeatBeforeAnything(t *testing.T) {
	engine := NewEngine(newShopSource(t))
	state := engine.NewSession()

	turn, err := engine.RunTurn(context.Background(), state, "pardon?")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRepeat, turn.Action)
	assert.Equal(t, DefaultRepeatFallback, turn.Response)
}

func TestEngineNoRestartOnComplete(t *testing.T) {
	engine := NewEngine(newShopSource(t), WithRestartOnComplete(false))
	state := domain.NewState("s", nil) // already exhausted
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		turn, err := engine.RunTurn(ctx, state, "hello")
		require.NoError(t, err)
		assert.Equal(t, domain.ActionComplete, turn.Action)
		assert.True(t, state.Exhausted())
	}
}

func TestEngineCustomResponses(t *testing.T) {
	engine := NewEngine(newShopSource(t),
		WithCompleteResponse("All done here."),
		WithRepeatFallback("Go ahead."),
	)
	ctx := context.Background()

	turn, err := engine.RunTurn(ctx, domain.NewState("a", nil), "hi")
	require.NoError(t, err)
	assert.Equal(t, "All done here.", turn.Response)

	turn, err = engine.RunTurn(ctx, engine.NewSession(), "pardon")
	require.NoError(t, err)
	assert.Equal(t, "Go ahead.", turn.Response)
}

func TestEngineLifecycleHooks(t *testing.T) {
	var starts, ends, fills int
	var filledSlot string

	engine := NewEngine(newShopSource(t), WithLifecycleHooks(domain.LifecycleHooks{
		OnTurnStart: func(ctx context.Context, ev *domain.TurnEvent) { starts++ },
		OnTurnEnd:   func(ctx context.Context, ev *domain.TurnEvent) { ends++ },
		OnSlotFill: func(ctx context.Context, ev *domain.SlotEvent) {
			fills++
			filledSlot = ev.Slot
		},
	}))

	state := engine.NewSession()
	ctx := context.Background()

	_, err := engine.RunTurn(ctx, state, "buy a medium shirt")
	require.NoError(t, err)
	_, err = engine.RunTurn(ctx, state, "pardon")
	require.NoError(t, err)

	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, ends)
	assert.Equal(t, 1, fills)
	assert.Equal(t, "#size#", filledSlot)
}

func TestEngineNilState(t *testing.T) {
	engine := NewEngine(newShopSource(t))
	_, err := engine.RunTurn(context.Background(), nil, "hello")
	assert.Error(t, err)
}

func TestEngineNewSessionWithID(t *testing.T) {
	engine := NewEngine(newShopSource(t))

	state := engine.NewSessionWithID("alpha")
	assert.Equal(t, "alpha", state.SessionID)
	assert.Equal(t, []string{"shop/order"}, state.AvailableNodes)

	generated := engine.NewSession()
	assert.NotEmpty(t, generated.SessionID)
}
