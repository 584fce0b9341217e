package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chatbotht/internal/index"
	pkgerrors "chatbotht/pkg/errors"
)

const (
	indexFile  = "index.gob"
	chunksFile = "chunks.json"
)

// Chunk is one piece of the uploaded document.
type Chunk struct {
	ID     string `json:"id"`
	Index  int    `json:"index"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Result is a retrieved chunk with its distance to the query.
type Result struct {
	Chunk    Chunk
	Distance float32
}

// Store is the single document slot on disk. Each Replace overwrites the
// previous document; readers are not locked out while it happens.
type Store struct {
	dir   string
	space index.SpaceType
}

func New(dir string, space index.SpaceType) *Store {
	return &Store{dir: dir, space: space}
}

func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether a document has been stored.
func (s *Store) Exists() bool {
	info, err := os.Stat(filepath.Join(s.dir, indexFile))
	return err == nil && !info.IsDir()
}

// Replace writes chunks and their vectors as the new document. The files are
// written to a staging directory first and renamed into place.
func (s *Store) Replace(chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return pkgerrors.ErrMismatchedInput
	}
	if len(chunks) == 0 {
		return pkgerrors.ErrEmptyDocument
	}

	idx, err := index.NewFlatIndex(&index.Config{SpaceType: s.space, Dimension: len(vectors[0])})
	if err != nil {
		return err
	}
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID
	}
	if err := idx.Build(ids, vectors); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	parent := filepath.Dir(filepath.Clean(s.dir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	staging := filepath.Join(parent, "."+filepath.Base(s.dir)+"-"+uuid.NewString())
	if err := os.Mkdir(staging, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	if err := idx.Save(filepath.Join(staging, indexFile)); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	data, err := json.Marshal(chunks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(staging, chunksFile), data, 0o644); err != nil {
		return err
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.Rename(staging, s.dir)
}

// Clear removes the stored document.
func (s *Store) Clear() error {
	return os.RemoveAll(s.dir)
}

// Open loads the stored document for searching.
func (s *Store) Open() (*Snapshot, error) {
	if !s.Exists() {
		return nil, pkgerrors.ErrNoDocument
	}
	idx := &index.FlatIndex{}
	if err := idx.Load(filepath.Join(s.dir, indexFile)); err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, chunksFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.ErrNoDocument
		}
		return nil, err
	}
	var chunks []Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("decode chunks: %w", err)
	}
	if len(chunks) != idx.Len() {
		return nil, fmt.Errorf("corrupt store: %d chunks for %d vectors", len(chunks), idx.Len())
	}
	byID := make(map[string]Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}
	return &Snapshot{index: idx, chunks: byID}, nil
}

// Snapshot is a loaded, read-only copy of the store.
type Snapshot struct {
	index  *index.FlatIndex
	chunks map[string]Chunk
}

func (s *Snapshot) Len() int {
	return s.index.Len()
}

// Search returns up to k chunks nearest to vector.
func (s *Snapshot) Search(vector []float32, k int) ([]Result, error) {
	res, err := s.index.Search(vector, k)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(res.IDs))
	for i, id := range res.IDs {
		chunk, ok := s.chunks[id]
		if !ok {
			return nil, fmt.Errorf("corrupt store: chunk %s missing", id)
		}
		out = append(out, Result{Chunk: chunk, Distance: res.Distances[i]})
	}
	return out, nil
}
