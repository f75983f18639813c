package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/scenario"
)

func newTestGenerator(t *testing.T) *generator {
	t.Helper()
	src, err := scenario.New(
		[]domain.Node{{ID: "order", Intents: []string{"buy"}, Slots: []string{"#size#", "#color#"}}},
		[]domain.SlotDefinition{
			{Name: "#size#", Pattern: "small|medium|large", Prompt: "What size would you like?"},
			{Name: "#color#", Pattern: "red|blue|black"},
		},
	)
	require.NoError(t, err)
	return &generator{source: src, repeatFallback: DefaultRepeatFallback}
}

func TestGeneratorRepeat(t *testing.T) {
	g := newTestGenerator(t)

	assert.Equal(t, "What size would you like?", g.Repeat("What size would you like?"))
	assert.Equal(t, DefaultRepeatFallback, g.Repeat(""),
		"repeat before anything was said uses the fallback")
}

func TestGeneratorRequest(t *testing.T) {
	g := newTestGenerator(t)

	assert.Equal(t, "What size would you like?", g.Request("#size#"))
	assert.Equal(t, "What is your color?", g.Request("#color#"),
		"a slot without a prompt gets a synthesized question")
	assert.Equal(t, "What is your shoe size?", g.Request("#shoe size#"))
}

func TestGeneratorReply(t *testing.T) {
	g := newTestGenerator(t)
	node := &domain.Node{
		ID:       "order",
		Slots:    []string{"#size#", "#color#"},
		Response: "One #color# shirt in #size#.",
	}

	t.Run("fills every placeholder", func(t *testing.T) {
		out, err := g.Reply(node, map[string]string{"#size#": "medium", "#color#": "blue"})
		require.NoError(t, err)
		assert.Equal(t, "One blue shirt in medium.", out)
	})

	t.Run("missing referenced slot is a template error", func(t *testing.T) {
		_, err := g.Reply(node, map[string]string{"#size#": "medium"})
		var terr *domain.TemplateError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "order", terr.NodeID)
		assert.Equal(t, "#color#", terr.Slot)
	})

	t.Run("missing unreferenced slot is fine", func(t *testing.T) {
		plain := &domain.Node{ID: "n", Slots: []string{"#color#"}, Response: "All set."}
		out, err := g.Reply(plain, map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "All set.", out)
	})
}
