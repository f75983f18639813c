package ports

import (
	"regexp"

	"github.com/aretw0/parley/pkg/domain"
)

// ScenarioSource defines how the engine reads the dialogue graph.
// Implementations must be immutable after construction: the engine shares
// one source across concurrent sessions without locking.
type ScenarioSource interface {
	// Node retrieves a node definition by ID.
	// The second return is false if the ID is unknown.
	Node(id string) (*domain.Node, bool)

	// Slot retrieves a slot definition by name.
	Slot(name string) (*domain.SlotDefinition, bool)

	// Pattern returns the compiled extraction pattern for a slot.
	// Compilation happens once at load time, not per turn.
	Pattern(name string) (*regexp.Regexp, bool)

	// NodeIDs returns every loaded node ID.
	NodeIDs() []string

	// EntryNodes returns the IDs new sessions start from, in tie-break order.
	EntryNodes() []string
}
