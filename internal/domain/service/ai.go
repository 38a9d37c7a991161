package service

import "context"

// TextGenerator produces free text from a prompt. Implementations must
// degrade to a static fallback message instead of surfacing provider errors.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Available() bool
}
