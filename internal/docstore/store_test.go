package docstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbotht/internal/index"
	pkgerrors "chatbotht/pkg/errors"
)

func testChunks(texts ...string) []Chunk {
	out := make([]Chunk, len(texts))
	for i, text := range texts {
		out[i] = Chunk{ID: text, Index: i, Source: "doc.txt", Text: text}
	}
	return out
}

func TestStore_EmptyUntilReplaced(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)
	assert.False(t, s.Exists())

	_, err := s.Open()
	assert.ErrorIs(t, err, pkgerrors.ErrNoDocument)
}

func TestStore_ReplaceAndSearch(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)
	err := s.Replace(testChunks("a", "b", "c"), [][]float32{{0, 0}, {1, 0}, {5, 5}})
	require.NoError(t, err)
	assert.True(t, s.Exists())

	snap, err := s.Open()
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())

	results, err := snap.Search([]float32{0.9, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Chunk.Text)
	assert.Equal(t, "a", results[1].Chunk.Text)
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)

	// k past the end is clamped
	results, err = snap.Search([]float32{0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestStore_ReplaceOverwritesPreviousDocument(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)
	require.NoError(t, s.Replace(testChunks("old one", "old two"), [][]float32{{0}, {1}}))
	require.NoError(t, s.Replace(testChunks("new"), [][]float32{{3}}))

	snap, err := s.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())

	results, err := snap.Search([]float32{0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Chunk.Text)

	// no staging directories left behind
	entries, err := os.ReadDir(filepath.Dir(s.Dir()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_ReplaceRejectsBadInput(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)

	err := s.Replace(testChunks("a", "b"), [][]float32{{0}})
	assert.ErrorIs(t, err, pkgerrors.ErrMismatchedInput)

	err = s.Replace(nil, nil)
	assert.ErrorIs(t, err, pkgerrors.ErrEmptyDocument)

	err = s.Replace(testChunks("a", "b"), [][]float32{{0}, {1, 2}})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidDimension)

	assert.False(t, s.Exists())
}

func TestStore_FailedReplaceKeepsPreviousDocument(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)
	require.NoError(t, s.Replace(testChunks("kept"), [][]float32{{1}}))

	err := s.Replace(testChunks("a", "a"), [][]float32{{0}, {1}})
	assert.ErrorIs(t, err, pkgerrors.ErrDocumentExists)

	snap, err := s.Open()
	require.NoError(t, err)
	results, err := snap.Search([]float32{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "kept", results[0].Chunk.Text)
}

func TestStore_Clear(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.CosSpace)
	require.NoError(t, s.Replace(testChunks("a"), [][]float32{{1, 1}}))
	require.NoError(t, s.Clear())
	assert.False(t, s.Exists())
}

func TestStore_OpenCorruptChunks(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)
	require.NoError(t, s.Replace(testChunks("a"), [][]float32{{1}}))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), chunksFile), []byte("{"), 0o644))

	_, err := s.Open()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, pkgerrors.ErrNoDocument)
}
