// Package llm provides the natural-language classification backends
// used by the classifier's probabilistic fallback path.
package llm

import "context"

// Provider is the interface for all classification-service backends.
// Implementations must honor ctx cancellation and deadlines.
type Provider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
