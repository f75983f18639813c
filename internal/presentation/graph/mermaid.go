// Package graph renders scenario graphs for visualization tools.
package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Overlay contains dynamic session data to visualize on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) from the loaded
// nodes. Nodes requiring slots render as parallelograms (they collect
// input), terminal nodes as double circles, everything else as rectangles.
// Cross-scenario edges render dotted.
func GenerateMermaid(nodes []domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.Terminal():
			opener, closer = "(((", ")))"
		case len(node.Slots) > 0:
			opener, closer = "[/", "/]"
		}

		label := node.ID
		if len(node.Slots) > 0 {
			label = fmt.Sprintf("%s <br/> %s", node.ID, strings.Join(node.Slots, ", "))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, child := range node.Children {
			safeTo := sanitizeMermaidID(child)

			arrow := "-->"
			if path.Dir(node.ID) != path.Dir(child) {
				arrow = "-.->"
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", "#", "_")
	return replacer.Replace(id)
}
