package index

// Config describes a vector index.
type Config struct {
	SpaceType SpaceType
	Dimension int
}

// SearchResult holds the k nearest ids ordered from closest to farthest.
type SearchResult struct {
	IDs       []string
	Distances []float32
}
