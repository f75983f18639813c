package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ports"
)

// generator renders policy decisions into user-facing text.
type generator struct {
	source ports.ScenarioSource

	// repeatFallback is used when a repeat interrupt arrives before any
	// response exists to replay.
	repeatFallback string
}

// Repeat replays the cached last response. It never updates the cache, so
// consecutive repeat turns return the identical string.
func (g *generator) Repeat(lastResponse string) string {
	if lastResponse != "" {
		return lastResponse
	}
	return g.repeatFallback
}

// Request renders the prompt asking for a missing slot. A slot definition
// without a prompt gets a synthesized default.
func (g *generator) Request(slot string) string {
	if def, ok := g.source.Slot(slot); ok && def.Prompt != "" {
		return def.Prompt
	}
	return fmt.Sprintf("What is your %s?", displaySlotName(slot))
}

// Reply fills the node's response template with collected slot values.
// A declared slot that is still missing yet referenced by the template is
// a TemplateError; the tracker normally requests it before we get here.
func (g *generator) Reply(node *domain.Node, filled map[string]string) (string, error) {
	response := node.Response
	for _, slot := range node.Slots {
		value, ok := filled[slot]
		if !ok {
			if strings.Contains(response, slot) {
				return "", &domain.TemplateError{NodeID: node.ID, Slot: slot}
			}
			continue
		}
		response = strings.ReplaceAll(response, slot, value)
	}
	return response, nil
}

// displaySlotName strips placeholder delimiters for human-readable prompts:
// "#size#" asks as "size".
func displaySlotName(slot string) string {
	return strings.Trim(slot, "#{}<>")
}
