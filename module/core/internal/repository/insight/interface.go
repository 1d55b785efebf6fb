package insight

import "context"

// Client produces a natural-language safety summary from a prompt. The
// core treats this as best-effort decoration; callers absorb errors
// with a fallback string and never let a failure touch alert state.
type Client interface {
	GenerateSummary(ctx context.Context, prompt string) (string, error)
}
