package domain

// Node represents one scripted dialogue state in a scenario graph.
// A conversation "hits" a node when the user's utterance matches one of its
// example intents; the node is satisfied once every declared slot is filled.
type Node struct {
	ID string `json:"id" yaml:"id"`

	// Intents holds example phrases the recognizer scores utterances against.
	Intents []string `json:"intent" yaml:"intent"`

	// Slots lists the names of slots that must be filled before this node
	// can reply. Order matters: missing slots are requested first-declared-first.
	Slots []string `json:"slot,omitempty" yaml:"slot,omitempty"`

	// Response is the reply template. Slot names appearing in the template
	// are replaced with their collected values.
	Response string `json:"response" yaml:"response"`

	// Children are the node IDs reachable after this node replies.
	// An empty list marks a terminal node.
	Children []string `json:"childnode,omitempty" yaml:"childnode,omitempty"`
}

// Terminal reports whether the node ends its scenario.
func (n *Node) Terminal() bool {
	return len(n.Children) == 0
}

// SlotDefinition describes how to extract a slot value from free text and
// how to ask the user for it when it is missing.
type SlotDefinition struct {
	Name string `json:"name" yaml:"name"`

	// Pattern is a regular expression matched against the utterance.
	// An enumerated value set is written as an alternation (e.g. "S|M|L|XL").
	Pattern string `json:"values" yaml:"values"`

	// Prompt is the question used to request the slot from the user.
	Prompt string `json:"query" yaml:"query"`
}
