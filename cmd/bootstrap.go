package main

import (
	"context"
	"fmt"

	"chatbotht/internal/chatbot"
	"chatbotht/internal/cluster"
	"chatbotht/internal/config"
	"chatbotht/internal/docstore"
	"chatbotht/internal/embedding"
	"chatbotht/internal/embedding/provider"
	"chatbotht/internal/index"
	"chatbotht/internal/ingest"
	"chatbotht/internal/llm"
	"chatbotht/pkg/logger"
)

// application is everything the commands share, built once at startup.
type application struct {
	cfg        *config.Config
	classifier *cluster.Classifier
	store      *docstore.Store
	embedder   embedding.EmbeddingProvider
	llm        llm.Client
	bot        *chatbot.Bot
	pipeline   *ingest.Pipeline
}

func clusterPaths(cfg *config.Config) cluster.Paths {
	return cluster.Paths{
		Model:      cfg.Cluster.ModelPath(),
		Vectorizer: cfg.Cluster.VectorizerPath(),
	}
}

func clusterOptions(cfg *config.Config) cluster.Options {
	opts := cluster.DefaultOptions()
	opts.Seed = cfg.Cluster.Seed
	return opts
}

func loadClassifier(cfg *config.Config) (*cluster.Classifier, error) {
	return cluster.LoadOrTrain(clusterPaths(cfg), cluster.TrainingData, cfg.Cluster.K, clusterOptions(cfg))
}

func newStore(cfg *config.Config) (*docstore.Store, error) {
	space, err := index.ParseSpace(cfg.Store.Space)
	if err != nil {
		return nil, err
	}
	return docstore.New(cfg.Store.Dir, space), nil
}

// newLLMClient never fails: a provider that cannot be set up is replaced by
// one that rejects every call, which sends chats to the cluster fallback.
func newLLMClient(ctx context.Context, cfg config.LLMConfig) llm.Client {
	var (
		client llm.Client
		err    error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err = llm.NewGemini(ctx, llm.GeminiConfig{
			APIKey:      cfg.APIKey(),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		})
	default:
		client, err = llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:      cfg.APIKey(),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Timeout:     cfg.Timeout(),
			Temperature: cfg.Temperature,
		})
	}
	if err != nil {
		logger.Warn("llm unavailable", "provider", cfg.Provider, "key_env", cfg.APIKeyEnv, "error", err)
		return llm.Unavailable{Reason: err.Error()}
	}
	logger.Info("llm ready", "provider", cfg.Provider, "model", cfg.Model)
	return client
}

// newEmbedder follows the same rule as newLLMClient.
func newEmbedder(ctx context.Context, cfg config.EmbeddingConfig) embedding.EmbeddingProvider {
	var (
		p   embedding.EmbeddingProvider
		err error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err = provider.NewGeminiEmbeddingProvider(ctx, provider.GeminiConfig{
			APIKey:    cfg.APIKey(),
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			BatchSize: cfg.BatchSize,
		})
	default:
		p, err = provider.NewOpenAIEmbeddingProvider(provider.OpenAIConfig{
			APIKey:    cfg.APIKey(),
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			Timeout:   cfg.Timeout(),
			BatchSize: cfg.BatchSize,
		})
	}
	if err != nil {
		logger.Warn("embeddings unavailable", "provider", cfg.Provider, "key_env", cfg.APIKeyEnv, "error", err)
		return embedding.Unavailable{Reason: err.Error()}
	}
	logger.Info("embeddings ready", "provider", cfg.Provider, "model", cfg.Model)
	return embedding.NewCachedProvider(p, cfg.CacheSize)
}

func newPipeline(cfg *config.Config, store *docstore.Store, embedder embedding.EmbeddingProvider) *ingest.Pipeline {
	return ingest.NewPipeline(store, embedder, ingest.Options{
		ChunkSize:    cfg.Store.ChunkSize,
		ChunkOverlap: cfg.Store.ChunkOverlap,
	})
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	classifier, err := loadClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("load cluster model: %w", err)
	}
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	embedder := newEmbedder(ctx, cfg.Embedding)
	client := newLLMClient(ctx, cfg.LLM)

	bot := chatbot.New(docstore.NewRetriever(store, embedder), client, classifier, chatbot.Options{
		TopK:    cfg.Store.TopK,
		Timeout: cfg.LLM.Timeout(),
	})
	return &application{
		cfg:        cfg,
		classifier: classifier,
		store:      store,
		embedder:   embedder,
		llm:        client,
		bot:        bot,
		pipeline:   newPipeline(cfg, store, embedder),
	}, nil
}
