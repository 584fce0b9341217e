// Package llm wraps the chat-completion providers behind one small interface.
package llm

import (
	"context"
	"fmt"

	pkgerrors "chatbotht/pkg/errors"
)

// Client sends a single system + user exchange and returns the reply text.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Unavailable stands in for a provider that could not be configured.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Complete(ctx context.Context, system, prompt string) (string, error) {
	return "", fmt.Errorf("%w: %s", pkgerrors.ErrProviderUnavailable, u.Reason)
}
