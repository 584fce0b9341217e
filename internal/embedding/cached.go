package embedding

import (
	"context"

	"chatbotht/internal/cache"
)

// CachedProvider memoizes single-text embeddings, so repeated chat queries
// skip the remote call. Batch calls pass straight through.
type CachedProvider struct {
	next  EmbeddingProvider
	cache *cache.LRUCache
}

func NewCachedProvider(next EmbeddingProvider, size int) *CachedProvider {
	return &CachedProvider{next: next, cache: cache.NewLRUCache(size)}
}

func (c *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		return v.([]float32), nil
	}
	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, vec)
	return vec, nil
}

func (c *CachedProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.next.EmbedBatch(ctx, texts)
}
