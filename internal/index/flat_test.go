package index

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "chatbotht/pkg/errors"
)

// generateFlatVectors makes n vectors whose first component is the row number.
func generateFlatVectors(n, dim int) (ids []string, vecs [][]float32) {
	ids = make([]string, n)
	vecs = make([][]float32, n)
	for i := 0; i < n; i++ {
		ids[i] = "chunk-" + strconv.Itoa(i)
		v := make([]float32, dim)
		v[0] = float32(i)
		vecs[i] = v
	}
	return
}

func TestNewFlatIndex(t *testing.T) {
	_, err := NewFlatIndex(&Config{Dimension: 0})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidDimension)

	idx, err := NewFlatIndex(&Config{Dimension: 3})
	require.NoError(t, err)
	assert.Equal(t, L2Space, idx.Space)
	assert.Equal(t, 0, idx.Len())
}

func TestFlatIndex_BuildAndSearch(t *testing.T) {
	dim := 4
	ids, vectors := generateFlatVectors(20, dim)
	idx, err := NewFlatIndex(&Config{SpaceType: L2Space, Dimension: dim})
	require.NoError(t, err)
	require.NoError(t, idx.Build(ids, vectors))
	assert.Equal(t, 20, idx.Len())

	res, err := idx.Search(vectors[6], 3)
	require.NoError(t, err)
	require.Len(t, res.IDs, 3)
	assert.Equal(t, ids[6], res.IDs[0])
	assert.Equal(t, float32(0), res.Distances[0])
	// neighbors 5 and 7 are both at distance 1; 5 was inserted first
	assert.Equal(t, []string{ids[6], ids[5], ids[7]}, res.IDs)
	assert.Equal(t, []float32{0, 1, 1}, res.Distances)
}

func TestFlatIndex_BuildReplacesContents(t *testing.T) {
	idx, err := NewFlatIndex(&Config{Dimension: 2})
	require.NoError(t, err)
	require.NoError(t, idx.Build([]string{"a", "b"}, [][]float32{{0, 0}, {1, 1}}))
	require.NoError(t, idx.Build([]string{"c"}, [][]float32{{5, 5}}))

	res, err := idx.Search([]float32{0, 0}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, res.IDs)
}

func TestFlatIndex_Errors(t *testing.T) {
	idx, err := NewFlatIndex(&Config{Dimension: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, idx.Build([]string{"a"}, nil), pkgerrors.ErrMismatchedInput)
	assert.ErrorIs(t, idx.Add("a", []float32{1}), pkgerrors.ErrInvalidDimension)
	require.NoError(t, idx.Add("a", []float32{1, 2}))
	assert.ErrorIs(t, idx.Add("a", []float32{3, 4}), pkgerrors.ErrDocumentExists)

	_, err = idx.Search([]float32{1, 2, 3}, 1)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidDimension)
}

func TestFlatIndex_SearchClampsK(t *testing.T) {
	ids, vectors := generateFlatVectors(2, 2)
	idx, err := NewFlatIndex(&Config{Dimension: 2})
	require.NoError(t, err)
	require.NoError(t, idx.Build(ids, vectors))

	res, err := idx.Search(vectors[0], 3)
	require.NoError(t, err)
	assert.Len(t, res.IDs, 2)

	res, err = idx.Search(vectors[0], -1)
	require.NoError(t, err)
	assert.Empty(t, res.IDs)
}

func TestFlatIndex_SaveAndLoad(t *testing.T) {
	dim := 4
	ids, vectors := generateFlatVectors(15, dim)
	cfg := &Config{SpaceType: CosSpace, Dimension: dim}
	idx, err := NewFlatIndex(cfg)
	require.NoError(t, err)
	require.NoError(t, idx.Build(ids, vectors))

	tmpPath := filepath.Join(t.TempDir(), "flat.idx")
	require.NoError(t, idx.Save(tmpPath))

	loaded := &FlatIndex{}
	require.NoError(t, loaded.Load(tmpPath))
	assert.Equal(t, CosSpace, loaded.Space)
	assert.Equal(t, dim, loaded.Dim)
	assert.Equal(t, 15, loaded.Len())

	want, err := idx.Search(vectors[10], 2)
	require.NoError(t, err)
	got, err := loaded.Search(vectors[10], 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
