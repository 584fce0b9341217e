package provider

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"chatbotht/internal/embedding"
	pkgerrors "chatbotht/pkg/errors"
)

const (
	DefaultGeminiModel = "text-embedding-004"
	geminiMaxBatch     = 100
)

// GeminiConfig configures the Gemini embeddings provider.
type GeminiConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	BatchSize int
}

// GeminiEmbeddingProvider embeds text through the Gemini API.
type GeminiEmbeddingProvider struct {
	client    *genai.Client
	model     string
	batchSize int
}

func NewGeminiEmbeddingProvider(ctx context.Context, cfg GeminiConfig) (embedding.EmbeddingProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key not set")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > geminiMaxBatch {
		cfg.BatchSize = geminiMaxBatch
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiEmbeddingProvider{client: client, model: cfg.Model, batchSize: cfg.BatchSize}, nil
}

func (g *GeminiEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.request(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (g *GeminiEmbeddingProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += g.batchSize {
		end := start + g.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := g.request(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, vectors...)
	}
	return embeddings, nil
}

func (g *GeminiEmbeddingProvider) request(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}
	resp, err := g.client.Models.EmbedContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, pkgerrors.ErrNoEmbeddings
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}
	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		out[i] = e.Values
	}
	return out, nil
}
