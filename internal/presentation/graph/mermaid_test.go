package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/parley/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	nodes := []domain.Node{
		{
			ID:       "shop/order",
			Slots:    []string{"#size#"},
			Children: []string{"shop/confirm"},
		},
		{ID: "shop/confirm"},
	}

	out := GenerateMermaid(nodes, nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `shop_order[/"shop/order <br/> #size#"/]`,
		"slotted nodes render as parallelograms with their slot list")
	assert.Contains(t, out, `shop_confirm((("shop/confirm")))`,
		"terminal nodes render as double circles")
	assert.Contains(t, out, "shop_order --> shop_confirm")
}

func TestGenerateMermaidCrossScenarioEdge(t *testing.T) {
	nodes := []domain.Node{
		{ID: "shop/order", Children: []string{"movie/book"}},
		{ID: "movie/book"},
	}

	out := GenerateMermaid(nodes, nil)
	assert.Contains(t, out, "shop_order -.-> movie_book",
		"edges across scenario namespaces are dotted")
}

func TestGenerateMermaidOverlay(t *testing.T) {
	nodes := []domain.Node{
		{ID: "a", Children: []string{"b"}},
		{ID: "b"},
	}
	overlay := &Overlay{
		VisitedNodes: []string{"a", "a"},
		CurrentNode:  "b",
	}

	out := GenerateMermaid(nodes, overlay)

	assert.Contains(t, out, "classDef visited")
	assert.Contains(t, out, "class b current;")
	assert.Equal(t, 1, strings.Count(out, "class a visited;"),
		"revisits collapse to one class line")
}
