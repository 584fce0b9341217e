package errors

import "errors"

var (
	// Clustering model errors
	ErrModelNotFound     = errors.New("clustering model not found")
	ErrEmptyCorpus       = errors.New("training corpus is empty")
	ErrInvalidClusterNum = errors.New("invalid number of clusters")
	ErrEmptyVocabulary   = errors.New("no tokens found in training corpus")
	ErrModelMismatch     = errors.New("clustering model does not match vectorizer")

	// Upload and ingestion errors
	ErrNoFile              = errors.New("no file field in request")
	ErrEmptyFilename       = errors.New("empty filename")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document contains no text")
	ErrFileTooLarge        = errors.New("file exceeds size limit")

	// Document store errors
	ErrNoDocument       = errors.New("no document store")
	ErrInvalidDimension = errors.New("invalid vector dimension")
	ErrMismatchedInput  = errors.New("ids and vectors length mismatch")
	ErrDocumentExists   = errors.New("document already exists")

	// Provider errors
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrEmptyCompletion     = errors.New("empty completion")
	ErrNoEmbeddings        = errors.New("no embeddings returned")
)
