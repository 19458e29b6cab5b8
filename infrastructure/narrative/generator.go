package narrative

import "context"

// Generator turns a deterministic numeric summary into formatted report
// prose. The wording of the returned HTML is the model's business; the
// numbers it receives are computed locally and attached to the email
// regardless of what the generator does with them.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
