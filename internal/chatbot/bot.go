// Package chatbot answers chat messages, trying document retrieval, then a
// plain LLM call, then the cluster fallback.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "chatbotht/pkg/errors"
	"chatbotht/pkg/logger"
)

// Tier identifies which strategy produced a reply.
type Tier int

const (
	TierNone Tier = iota
	TierRAG
	TierLLM
	TierCluster
)

func (t Tier) String() string {
	switch t {
	case TierRAG:
		return "rag"
	case TierLLM:
		return "llm"
	case TierCluster:
		return "cluster"
	default:
		return "none"
	}
}

// DefaultTopK is the number of chunks retrieved for a question.
const DefaultTopK = 3

// Retriever finds document chunks relevant to a query.
type Retriever interface {
	Available() bool
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Completer sends one system + user exchange to a language model.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Classifier maps text to a fallback cluster.
type Classifier interface {
	Classify(text string) int
}

// Attempt is the outcome of one tier. Err is set when the tier could not
// answer; Skipped marks a tier that did not apply.
type Attempt struct {
	Tier    Tier
	Text    string
	Err     error
	Skipped bool
}

func (a Attempt) OK() bool {
	return !a.Skipped && a.Err == nil && a.Text != ""
}

// Reply is the answer to one message and the tier that produced it.
type Reply struct {
	Text     string
	Tier     Tier
	Attempts []Attempt
}

// Options configures a Bot.
type Options struct {
	TopK    int
	Timeout time.Duration
	Picker  Picker
}

// Bot holds everything needed to answer a message. It is safe for
// concurrent use when its collaborators are.
type Bot struct {
	retriever  Retriever
	llm        Completer
	classifier Classifier
	opts       Options
}

func New(retriever Retriever, llm Completer, classifier Classifier, opts Options) *Bot {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.Picker == nil {
		opts.Picker = RandomPicker
	}
	return &Bot{retriever: retriever, llm: llm, classifier: classifier, opts: opts}
}

// Reply answers text. It always returns exactly one non-empty reply.
func (b *Bot) Reply(ctx context.Context, text string) Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{Text: EmptyMessageReply, Tier: TierNone}
	}

	var attempts []Attempt
	for _, try := range []func(context.Context, string) Attempt{b.tryRAG, b.tryLLM} {
		a := try(ctx, text)
		attempts = append(attempts, a)
		if a.OK() {
			logger.Debug("reply", "tier", a.Tier.String())
			return Reply{Text: a.Text, Tier: a.Tier, Attempts: attempts}
		}
		if !a.Skipped {
			logger.Warn("tier failed, falling through", "tier", a.Tier.String(), "error", a.Err)
		}
	}

	a := b.fallback(text)
	attempts = append(attempts, a)
	logger.Debug("reply", "tier", a.Tier.String())
	return Reply{Text: a.Text, Tier: a.Tier, Attempts: attempts}
}

func (b *Bot) tryRAG(ctx context.Context, text string) Attempt {
	if b.retriever == nil || !b.retriever.Available() {
		return Attempt{Tier: TierRAG, Skipped: true}
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	chunks, err := b.retriever.Retrieve(ctx, text, b.opts.TopK)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNoDocument) {
			return Attempt{Tier: TierRAG, Skipped: true}
		}
		return Attempt{Tier: TierRAG, Err: fmt.Errorf("retrieve: %w", err)}
	}
	return b.complete(ctx, TierRAG, RAGSystemPrompt, BuildRAGPrompt(chunks, text))
}

func (b *Bot) tryLLM(ctx context.Context, text string) Attempt {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	return b.complete(ctx, TierLLM, DirectSystemPrompt, text)
}

func (b *Bot) complete(ctx context.Context, tier Tier, system, prompt string) Attempt {
	if b.llm == nil {
		return Attempt{Tier: tier, Err: pkgerrors.ErrProviderUnavailable}
	}
	out, err := b.llm.Complete(ctx, system, prompt)
	if err != nil {
		return Attempt{Tier: tier, Err: err}
	}
	if out == "" {
		return Attempt{Tier: tier, Err: pkgerrors.ErrEmptyCompletion}
	}
	return Attempt{Tier: tier, Text: out}
}

// fallback never fails.
func (b *Bot) fallback(text string) Attempt {
	id := ClusterID(-1)
	if b.classifier != nil {
		id = ClusterID(b.classifier.Classify(text))
	}
	return Attempt{Tier: TierCluster, Text: PickReply(id, b.opts.Picker)}
}

func (b *Bot) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.opts.Timeout)
}
