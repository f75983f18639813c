// Package tokenize provides the default tokenizer behind the engine's
// Tokenizer port. Segmentation libraries for specific languages can replace
// it without touching the pipeline.
package tokenize

import (
	"strings"
	"unicode"
)

// Simple is a Unicode-aware tokenizer: it lowercases the input and splits
// on anything that is not a letter or digit. Han characters are emitted as
// single-rune tokens, which makes set-based scoring behave for scripts
// without word boundaries.
type Simple struct{}

// New returns the default tokenizer.
func New() *Simple {
	return &Simple{}
}

// Tokenize splits text into lowercase lexical units.
func (Simple) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}
