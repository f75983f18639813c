package ports

// Tokenizer splits raw text into lexical units.
// The recognizer depends only on this contract; segmentation libraries or
// language-specific analyzers plug in behind it.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

func (f TokenizerFunc) Tokenize(text string) []string {
	return f(text)
}
