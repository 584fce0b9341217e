package index

import (
	"encoding/gob"
	"os"
	"sort"

	pkgerrors "chatbotht/pkg/errors"
)

// FlatIndex is a brute-force index. Vectors are stored back to back in Data.
type FlatIndex struct {
	Dim     int
	Space   SpaceType
	Data    []float32
	Ids     []string
	IdToIdx map[string]int
}

// NewFlatIndex creates an empty index for config.
func NewFlatIndex(config *Config) (*FlatIndex, error) {
	if config.Dimension <= 0 {
		return nil, pkgerrors.ErrInvalidDimension
	}
	space := config.SpaceType
	if space == "" {
		space = L2Space
	}
	return &FlatIndex{
		Dim:     config.Dimension,
		Space:   space,
		Ids:     make([]string, 0),
		Data:    make([]float32, 0),
		IdToIdx: make(map[string]int),
	}, nil
}

// Len is the number of stored vectors.
func (f *FlatIndex) Len() int {
	return len(f.Ids)
}

// Add appends a single vector.
func (f *FlatIndex) Add(id string, vector []float32) error {
	if len(vector) != f.Dim {
		return pkgerrors.ErrInvalidDimension
	}
	if _, exists := f.IdToIdx[id]; exists {
		return pkgerrors.ErrDocumentExists
	}
	f.Ids = append(f.Ids, id)
	f.Data = append(f.Data, vector...)
	f.IdToIdx[id] = len(f.Ids) - 1
	return nil
}

// Build replaces the index contents with ids and vectors.
func (f *FlatIndex) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return pkgerrors.ErrMismatchedInput
	}
	f.Ids = make([]string, 0, len(ids))
	f.Data = make([]float32, 0, len(ids)*f.Dim)
	f.IdToIdx = make(map[string]int, len(ids))
	for i := range ids {
		if err := f.Add(ids[i], vectors[i]); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the k nearest vectors. k larger than the index is clamped.
func (f *FlatIndex) Search(vector []float32, k int) (*SearchResult, error) {
	if len(vector) != f.Dim {
		return nil, pkgerrors.ErrInvalidDimension
	}
	type pair struct {
		id   string
		dist float32
	}
	results := make([]pair, 0, len(f.Ids))
	for i := 0; i < len(f.Ids); i++ {
		start := i * f.Dim
		dist := distance(vector, f.Data[start:start+f.Dim], f.Space)
		results = append(results, pair{f.Ids[i], dist})
	}
	// stable so equal distances keep insertion order
	sort.SliceStable(results, func(i, j int) bool { return results[i].dist < results[j].dist })
	if k > len(results) {
		k = len(results)
	}
	if k < 0 {
		k = 0
	}
	ids := make([]string, k)
	dists := make([]float32, k)
	for i := 0; i < k; i++ {
		ids[i] = results[i].id
		dists[i] = results[i].dist
	}
	return &SearchResult{IDs: ids, Distances: dists}, nil
}

// Load replaces the index with the one stored at filePath.
func (f *FlatIndex) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	return gob.NewDecoder(file).Decode(f)
}

// Save writes the index to filePath.
func (f *FlatIndex) Save(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(file).Encode(f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
