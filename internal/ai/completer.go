package ai

import "context"

// Completer sends a system instruction and a user prompt to a language model and returns
// the raw text of its answer. An empty answer is not an error.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Provider() string
	Model() string
}

// Temperature is the sampling temperature used for candidate extraction.
const Temperature = 0.3
