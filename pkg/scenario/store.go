package scenario

import (
	"fmt"
	"regexp"

	"github.com/aretw0/parley/pkg/domain"
)

// Store holds a validated scenario graph and its slot table.
// It is read-only after construction.
type Store struct {
	nodes    map[string]*domain.Node
	order    []string // declaration order, drives deterministic iteration
	slots    map[string]*domain.SlotDefinition
	patterns map[string]*regexp.Regexp
	entry    []string
}

// New builds a Store from pre-parsed nodes and slot definitions.
// Entry nodes are the nodes never referenced as a child, in declaration order.
// It returns a *domain.LoadError if the graph is structurally inconsistent.
func New(nodes []domain.Node, slots []domain.SlotDefinition) (*Store, error) {
	s := &Store{
		nodes:    make(map[string]*domain.Node, len(nodes)),
		slots:    make(map[string]*domain.SlotDefinition, len(slots)),
		patterns: make(map[string]*regexp.Regexp, len(slots)),
	}

	for i := range slots {
		def := slots[i]
		if def.Name == "" {
			return nil, &domain.LoadError{Reason: "slot definition with empty name"}
		}
		if _, dup := s.slots[def.Name]; dup {
			return nil, &domain.LoadError{Reason: fmt.Sprintf("duplicate slot definition %q", def.Name)}
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, &domain.LoadError{Reason: fmt.Sprintf("slot %q has invalid pattern: %v", def.Name, err)}
		}
		s.slots[def.Name] = &def
		s.patterns[def.Name] = re
	}

	for i := range nodes {
		node := nodes[i]
		if node.ID == "" {
			return nil, &domain.LoadError{Reason: "node with empty id"}
		}
		if _, dup := s.nodes[node.ID]; dup {
			return nil, &domain.LoadError{Reason: fmt.Sprintf("duplicate node id %q", node.ID)}
		}
		s.nodes[node.ID] = &node
		s.order = append(s.order, node.ID)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.entry = s.findRoots()
	return s, nil
}

// validate checks referential integrity: every child exists and every slot
// a node requires has a definition.
func (s *Store) validate() error {
	for _, id := range s.order {
		node := s.nodes[id]
		for _, child := range node.Children {
			if _, ok := s.nodes[child]; !ok {
				return &domain.LoadError{
					Source: id,
					Reason: fmt.Sprintf("child %q does not exist", child),
				}
			}
		}
		for _, slot := range node.Slots {
			if _, ok := s.slots[slot]; !ok {
				return &domain.LoadError{
					Source: id,
					Reason: fmt.Sprintf("slot %q has no definition", slot),
				}
			}
		}
	}
	return nil
}

// findRoots returns nodes never referenced as a child, in declaration order.
func (s *Store) findRoots() []string {
	referenced := make(map[string]bool)
	for _, id := range s.order {
		for _, child := range s.nodes[id].Children {
			referenced[child] = true
		}
	}

	var roots []string
	for _, id := range s.order {
		if !referenced[id] {
			roots = append(roots, id)
		}
	}
	return roots
}

// Node retrieves a node definition by ID.
func (s *Store) Node(id string) (*domain.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Slot retrieves a slot definition by name.
func (s *Store) Slot(name string) (*domain.SlotDefinition, bool) {
	def, ok := s.slots[name]
	return def, ok
}

// Pattern returns the compiled extraction pattern for a slot.
func (s *Store) Pattern(name string) (*regexp.Regexp, bool) {
	re, ok := s.patterns[name]
	return re, ok
}

// NodeIDs returns every loaded node ID in declaration order.
func (s *Store) NodeIDs() []string {
	return append([]string(nil), s.order...)
}

// EntryNodes returns the IDs new sessions start from.
func (s *Store) EntryNodes() []string {
	return append([]string(nil), s.entry...)
}

// Nodes returns all node definitions in declaration order, for
// introspection and visualization tools.
func (s *Store) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.nodes[id])
	}
	return out
}
