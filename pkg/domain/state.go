package domain

// State is the per-conversation session memory threaded through every turn.
// It is owned exclusively by one conversation; the engine mutates it in place
// once per turn. The scenario graph itself is immutable and shared.
type State struct {
	// SessionID identifies the conversation for persistence.
	SessionID string `json:"session_id"`

	// AvailableNodes are the node IDs reachable this turn, in tie-break order:
	// when several nodes score equally, the first listed wins.
	AvailableNodes []string `json:"available_nodes"`

	// FilledSlots maps slot name to the value extracted from user input.
	// Slots are never overwritten once filled within a scenario traversal.
	FilledSlots map[string]string `json:"filled_slots"`

	// HitNode is the node selected on the most recent non-repeat turn.
	HitNode string `json:"hit_node,omitempty"`

	// RequireSlot names the slot currently being requested, if any.
	RequireSlot string `json:"require_slot,omitempty"`

	// LastResponse caches the previous system reply for the repeat interrupt.
	// Lives in session memory so concurrent conversations never replay each
	// other's replies.
	LastResponse string `json:"last_response,omitempty"`

	// LastAction is the policy outcome of the previous turn.
	LastAction Action `json:"last_action,omitempty"`

	// History tracks the node path taken, for debugging and graph overlays.
	History []string `json:"history,omitempty"`

	// Turns counts processed utterances.
	Turns int `json:"turns"`
}

// NewState creates a clean session seeded with the graph's entry nodes.
func NewState(sessionID string, entryNodes []string) *State {
	return &State{
		SessionID:      sessionID,
		AvailableNodes: append([]string(nil), entryNodes...),
		FilledSlots:    make(map[string]string),
	}
}

// Exhausted reports whether the scenario graph has no reachable nodes left.
func (s *State) Exhausted() bool {
	return len(s.AvailableNodes) == 0
}

// Clone returns a deep copy safe for independent mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.AvailableNodes = append([]string(nil), s.AvailableNodes...)
	next.History = append([]string(nil), s.History...)
	next.FilledSlots = make(map[string]string, len(s.FilledSlots))
	for k, v := range s.FilledSlots {
		next.FilledSlots[k] = v
	}
	return &next
}

// Reset returns the session to the start of the graph, clearing collected
// slots but keeping identity and turn count. Used when a scenario completes
// and the conversation starts over.
func (s *State) Reset(entryNodes []string) {
	s.AvailableNodes = append([]string(nil), entryNodes...)
	s.FilledSlots = make(map[string]string)
	s.HitNode = ""
	s.RequireSlot = ""
}
