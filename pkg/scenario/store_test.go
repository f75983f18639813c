package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/parley/pkg/domain"
)

func TestNewValidStore(t *testing.T) {
	store, err := New(
		[]domain.Node{
			{ID: "a", Intents: []string{"hi"}, Slots: []string{"#size#"}, Children: []string{"b"}},
			{ID: "b", Intents: []string{"bye"}},
			{ID: "c", Intents: []string{"other root"}},
		},
		[]domain.SlotDefinition{
			{Name: "#size#", Pattern: "small|large", Prompt: "Which size?"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, store.NodeIDs())
	assert.Equal(t, []string{"a", "c"}, store.EntryNodes(),
		"entry nodes are unreferenced roots in declaration order")

	node, ok := store.Node("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, node.Children)

	def, ok := store.Slot("#size#")
	require.True(t, ok)
	assert.Equal(t, "Which size?", def.Prompt)

	re, ok := store.Pattern("#size#")
	require.True(t, ok)
	assert.Equal(t, "large", re.FindString("a large one"))

	_, ok = store.Node("missing")
	assert.False(t, ok)
}

func TestNewRejectsBrokenGraphs(t *testing.T) {
	cases := []struct {
		name  string
		nodes []domain.Node
		slots []domain.SlotDefinition
	}{
		{
			name:  "empty node id",
			nodes: []domain.Node{{ID: ""}},
		},
		{
			name:  "duplicate node id",
			nodes: []domain.Node{{ID: "a"}, {ID: "a"}},
		},
		{
			name:  "dangling child",
			nodes: []domain.Node{{ID: "a", Children: []string{"ghost"}}},
		},
		{
			name:  "undefined slot",
			nodes: []domain.Node{{ID: "a", Slots: []string{"#size#"}}},
		},
		{
			name:  "empty slot name",
			nodes: []domain.Node{{ID: "a"}},
			slots: []domain.SlotDefinition{{Name: "", Pattern: "x"}},
		},
		{
			name:  "duplicate slot",
			nodes: []domain.Node{{ID: "a"}},
			slots: []domain.SlotDefinition{{Name: "#s#", Pattern: "x"}, {Name: "#s#", Pattern: "y"}},
		},
		{
			name:  "invalid pattern",
			nodes: []domain.Node{{ID: "a"}},
			slots: []domain.SlotDefinition{{Name: "#s#", Pattern: "["}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.nodes, tc.slots)
			var lerr *domain.LoadError
			assert.ErrorAs(t, err, &lerr)
		})
	}
}

func TestStoreNodesSnapshot(t *testing.T) {
	store, err := New([]domain.Node{{ID: "a", Children: []string{"b"}}, {ID: "b"}}, nil)
	require.NoError(t, err)

	nodes := store.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "b", nodes[1].ID)
}
