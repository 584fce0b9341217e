package docstore

import (
	"context"
	"fmt"

	"chatbotht/internal/embedding"
)

// Retriever embeds a query and returns the text of the closest chunks.
type Retriever struct {
	store    *Store
	embedder embedding.EmbeddingProvider
}

func NewRetriever(store *Store, embedder embedding.EmbeddingProvider) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Available reports whether a document is stored.
func (r *Retriever) Available() bool {
	return r.store.Exists()
}

// Retrieve returns the texts of the k chunks nearest to query, closest first.
// The store is reopened on every call so a fresh upload is picked up.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	snapshot, err := r.store.Open()
	if err != nil {
		return nil, err
	}
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := snapshot.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}
	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Chunk.Text
	}
	return texts, nil
}
