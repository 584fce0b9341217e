package embedding

import (
	"context"
	"fmt"

	pkgerrors "chatbotht/pkg/errors"
)

// EmbeddingProvider is an interface for embedding providers
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Unavailable stands in for a provider that could not be configured, usually
// because its API key is missing. Every call fails with the stored reason.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("%w: %s", pkgerrors.ErrProviderUnavailable, u.Reason)
}

func (u Unavailable) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, fmt.Errorf("%w: %s", pkgerrors.ErrProviderUnavailable, u.Reason)
}
