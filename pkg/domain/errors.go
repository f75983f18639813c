package domain

import (
	"errors"
	"fmt"
)

// ErrNoCandidateNodes is returned by the recognizer when there is nothing
// left to match against (scenario graph exhausted). It is recoverable: the
// engine maps it to a scenario-complete reply instead of failing the turn.
var ErrNoCandidateNodes = errors.New("no candidate nodes available")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// LoadError reports a malformed or inconsistent scenario definition.
// It is fatal at startup.
type LoadError struct {
	Source string // file or scenario name, if known
	Reason string
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("scenario load failed: %s", e.Reason)
	}
	return fmt.Sprintf("scenario load failed (%s): %s", e.Source, e.Reason)
}

// TemplateError reports a response template referencing a slot with no
// collected value. The tracker guarantees this cannot happen on a well-formed
// graph, but the generator checks anyway and the engine recovers from it.
type TemplateError struct {
	NodeID string
	Slot   string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("node %q template references unfilled slot %q", e.NodeID, e.Slot)
}
