// Package ingest turns an uploaded document into the chunks and embeddings
// held by the document store.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmc/langchaingo/textsplitter"
	"github.com/twmb/murmur3"

	"chatbotht/internal/docstore"
	"chatbotht/internal/embedding"
	pkgerrors "chatbotht/pkg/errors"
	"chatbotht/pkg/logger"
)

const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
)

// Options controls how documents are split.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}

// Result summarizes one ingested document.
type Result struct {
	Source     string
	Characters int
	Chunks     int
	Duplicates int
	Elapsed    time.Duration
}

// Pipeline extracts, splits, embeds and stores documents.
type Pipeline struct {
	store    *docstore.Store
	embedder embedding.EmbeddingProvider
	splitter textsplitter.TextSplitter
}

func NewPipeline(store *docstore.Store, embedder embedding.EmbeddingProvider, opts Options) *Pipeline {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = 0
	}
	return &Pipeline{
		store:    store,
		embedder: embedder,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(opts.ChunkSize),
			textsplitter.WithChunkOverlap(opts.ChunkOverlap),
		),
	}
}

// Ingest replaces the stored document with the one at path. On any error the
// store is left as it was.
func (p *Pipeline) Ingest(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	source := filepath.Base(path)

	text, err := Extract(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.ErrEmptyDocument
	}

	chunks, duplicates, err := p.split(source, text)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, pkgerrors.ErrEmptyDocument
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed chunks: %w", pkgerrors.ErrMismatchedInput)
	}

	if err := p.store.Replace(chunks, vectors); err != nil {
		return nil, fmt.Errorf("write store: %w", err)
	}

	res := &Result{
		Source:     source,
		Characters: len([]rune(text)),
		Chunks:     len(chunks),
		Duplicates: duplicates,
		Elapsed:    time.Since(start),
	}
	logger.Info("document ingested",
		"source", res.Source,
		"chunks", res.Chunks,
		"duplicates", res.Duplicates,
		"elapsed", res.Elapsed)
	return res, nil
}

// split cuts text into chunks, dropping blank and repeated ones. Chunk ids
// are the murmur3 hash of the chunk text.
func (p *Pipeline) split(source, text string) ([]docstore.Chunk, int, error) {
	parts, err := p.splitter.SplitText(text)
	if err != nil {
		return nil, 0, fmt.Errorf("split text: %w", err)
	}
	seen := make(map[uint64]bool, len(parts))
	chunks := make([]docstore.Chunk, 0, len(parts))
	duplicates := 0
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h := murmur3.Sum64([]byte(part))
		if seen[h] {
			duplicates++
			continue
		}
		seen[h] = true
		chunks = append(chunks, docstore.Chunk{
			ID:     fmt.Sprintf("%016x", h),
			Index:  len(chunks),
			Source: source,
			Text:   part,
		})
	}
	return chunks, duplicates, nil
}
