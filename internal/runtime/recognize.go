package runtime

import (
	"github.com/samber/lo"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ports"
)

// DefaultRepeatSignals are the phrases that trigger the repeat interrupt
// when no custom set is configured.
var DefaultRepeatSignals = []string{
	"repeat",
	"pardon",
	"say that again",
	"come again",
	"didn't catch that",
	"didn't hear you",
	"what did you say",
}

// Recognition is the understanding result for one utterance.
type Recognition struct {
	// IsRepeat is set when the utterance matched a repeat signal. No scoring
	// or slot extraction happens on a repeat turn.
	IsRepeat bool

	// HitNode is the best-matching reachable node.
	HitNode string

	// Score is the winning Jaccard similarity, kept for debug logging.
	Score float64

	// ExtractedSlots holds values pulled out of the utterance for the hit
	// node's still-unfilled slots.
	ExtractedSlots map[string]string
}

// recognizer scores utterances against reachable nodes and extracts slots.
type recognizer struct {
	source    ports.ScenarioSource
	tokenizer ports.Tokenizer

	// repeatSignals holds each configured phrase pre-tokenized. A phrase
	// matches when all of its tokens appear in the utterance's token set.
	repeatSignals [][]string
}

func newRecognizer(source ports.ScenarioSource, tokenizer ports.Tokenizer, signals []string) *recognizer {
	r := &recognizer{
		source:    source,
		tokenizer: tokenizer,
	}
	for _, phrase := range signals {
		if tokens := tokenizer.Tokenize(phrase); len(tokens) > 0 {
			r.repeatSignals = append(r.repeatSignals, tokens)
		}
	}
	return r
}

// Recognize runs repeat detection, intent scoring, and slot extraction.
// Returns domain.ErrNoCandidateNodes when there is nothing left to match
// against (the scenario graph is exhausted).
func (r *recognizer) Recognize(utterance string, state *domain.State) (*Recognition, error) {
	tokens := r.tokenizer.Tokenize(utterance)

	if r.isRepeat(tokens) {
		return &Recognition{IsRepeat: true}, nil
	}

	if state.Exhausted() {
		return nil, domain.ErrNoCandidateNodes
	}

	hit, score := r.judgeIntent(tokens, state.AvailableNodes)
	if hit == "" {
		return nil, domain.ErrNoCandidateNodes
	}

	rec := &Recognition{
		HitNode: hit,
		Score:   score,
	}
	if node, ok := r.source.Node(hit); ok {
		rec.ExtractedSlots = r.fillSlots(utterance, node, state.FilledSlots)
	}
	return rec, nil
}

// isRepeat checks the utterance token set against the configured signals.
func (r *recognizer) isRepeat(tokens []string) bool {
	for _, phrase := range r.repeatSignals {
		if len(lo.Intersect(phrase, tokens)) == len(phrase) {
			return true
		}
	}
	return false
}

// judgeIntent selects the reachable node whose example intents best match
// the utterance. Ties break deterministically: the first maximum in
// availableNodes order wins.
func (r *recognizer) judgeIntent(tokens []string, availableNodes []string) (string, float64) {
	best := ""
	bestScore := -1.0

	for _, id := range availableNodes {
		node, ok := r.source.Node(id)
		if !ok {
			continue
		}
		if score := r.scoreNode(tokens, node); score > bestScore {
			best = id
			bestScore = score
		}
	}
	return best, bestScore
}

// scoreNode is the maximum similarity across the node's example intents.
func (r *recognizer) scoreNode(tokens []string, node *domain.Node) float64 {
	max := 0.0
	for _, intent := range node.Intents {
		if score := jaccard(tokens, r.tokenizer.Tokenize(intent)); score > max {
			max = score
		}
	}
	return max
}

// fillSlots matches extraction patterns against the utterance for every
// still-unfilled slot of the node. Misses are omitted, not errors; the
// tracker will request them on a later turn.
func (r *recognizer) fillSlots(utterance string, node *domain.Node, filled map[string]string) map[string]string {
	var extracted map[string]string
	for _, slot := range node.Slots {
		if _, done := filled[slot]; done {
			continue
		}
		re, ok := r.source.Pattern(slot)
		if !ok {
			continue
		}
		if loc := re.FindStringIndex(utterance); loc != nil && loc[1] > loc[0] {
			if extracted == nil {
				extracted = make(map[string]string)
			}
			extracted[slot] = utterance[loc[0]:loc[1]]
		}
	}
	return extracted
}

// jaccard computes set similarity over two token sequences: intersection
// size over union size of their unique tokens. Symmetric; 1.0 for identical
// non-empty sets, 0.0 for disjoint or empty ones.
func jaccard(a, b []string) float64 {
	ua := lo.Uniq(a)
	ub := lo.Uniq(b)

	union := lo.Union(ua, ub)
	if len(union) == 0 {
		return 0
	}
	return float64(len(lo.Intersect(ua, ub))) / float64(len(union))
}
