package domain

// Action is the policy outcome for a single turn.
type Action string

const (
	// ActionReply renders the hit node's response template and advances to
	// its children.
	ActionReply Action = "reply"

	// ActionRequest asks the user for the next missing slot and stays pinned
	// to the current node.
	ActionRequest Action = "request"

	// ActionRepeat replays the previous system response without touching
	// dialogue progression.
	ActionRepeat Action = "repeat"

	// ActionComplete signals that the scenario graph is exhausted. The turn
	// still produces a response; drivers may use it to end the conversation.
	ActionComplete Action = "complete"
)

// Turn is what the engine hands the driver for one processed utterance,
// alongside the mutated session state.
type Turn struct {
	// Response is the user-facing text. Always non-empty.
	Response string `json:"response"`

	// Action is the policy decision that produced Response.
	Action Action `json:"action"`

	// HitNode is the node selected by the recognizer, empty on a complete turn.
	HitNode string `json:"hit_node,omitempty"`

	// RequireSlot names the slot being requested, if Action == ActionRequest.
	RequireSlot string `json:"require_slot,omitempty"`
}
