package cluster

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "chatbotht/pkg/errors"
	"chatbotht/pkg/logger"
)

// Paths locates the persisted model pair.
type Paths struct {
	Model      string
	Vectorizer string
}

// Train fits a vectorizer and a k-means model over corpus and persists both
// to paths, creating directories as needed.
func Train(corpus []string, k int, opts Options, paths Paths) (*Vectorizer, *KMeans, error) {
	vectorizer, err := FitVectorizer(corpus)
	if err != nil {
		return nil, nil, err
	}
	model, err := FitKMeans(vectorizer.TransformAll(corpus), k, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := Save(paths, vectorizer, model); err != nil {
		return nil, nil, err
	}
	logger.Info("clustering model trained and saved",
		"k", k, "samples", len(corpus), "features", vectorizer.Dimension(),
		"inertia", model.Inertia, "model", paths.Model, "vectorizer", paths.Vectorizer)
	return vectorizer, model, nil
}

// Save writes the vectorizer and model to their paths. Each file is written
// to a temporary sibling and renamed into place.
func Save(paths Paths, vectorizer *Vectorizer, model *KMeans) error {
	for _, p := range []string{paths.Model, paths.Vectorizer} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	if err := writeGob(paths.Model, model); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := writeGob(paths.Vectorizer, vectorizer); err != nil {
		return fmt.Errorf("save vectorizer: %w", err)
	}
	return nil
}

// Load reads the persisted pair. It returns ErrModelNotFound unless both
// files exist and ErrModelMismatch when they do not belong together; it
// never returns one half of the pair.
func Load(paths Paths) (*Vectorizer, *KMeans, error) {
	for _, p := range []string{paths.Model, paths.Vectorizer} {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn("no saved clustering model, training required", "missing", p)
				return nil, nil, pkgerrors.ErrModelNotFound
			}
			return nil, nil, err
		}
	}

	var model KMeans
	if err := readGob(paths.Model, &model); err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	var vectorizer Vectorizer
	if err := readGob(paths.Vectorizer, &vectorizer); err != nil {
		return nil, nil, fmt.Errorf("load vectorizer: %w", err)
	}
	if err := checkPair(&vectorizer, &model); err != nil {
		logger.Warn("saved clustering model is inconsistent", "error", err)
		return nil, nil, err
	}
	logger.Info("clustering model loaded from disk", "k", model.K, "features", vectorizer.Dimension())
	return &vectorizer, &model, nil
}

// Classify returns the cluster id of text in [0, model.K).
func Classify(vectorizer *Vectorizer, model *KMeans, text string) int {
	return model.Predict(vectorizer.Transform(text))
}

// checkPair reports ErrModelMismatch unless every centroid lives in the
// vectorizer's feature space.
func checkPair(vectorizer *Vectorizer, model *KMeans) error {
	dim := vectorizer.Dimension()
	if dim == 0 || len(vectorizer.Vocabulary) != dim {
		return fmt.Errorf("%w: vocabulary has %d terms for %d features",
			pkgerrors.ErrModelMismatch, len(vectorizer.Vocabulary), dim)
	}
	for tok, idx := range vectorizer.Vocabulary {
		if idx < 0 || idx >= dim {
			return fmt.Errorf("%w: term %q maps to column %d of %d", pkgerrors.ErrModelMismatch, tok, idx, dim)
		}
	}
	if model.K <= 0 || len(model.Centroids) != model.K {
		return fmt.Errorf("%w: k=%d with %d centroids", pkgerrors.ErrModelMismatch, model.K, len(model.Centroids))
	}
	for i, c := range model.Centroids {
		if len(c) != dim {
			return fmt.Errorf("%w: centroid %d has %d features, vectorizer has %d",
				pkgerrors.ErrModelMismatch, i, len(c), dim)
		}
	}
	return nil
}

func writeGob(path string, v any) error {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmp := file.Name()
	if err := gob.NewEncoder(file).Encode(v); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func readGob(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gob.NewDecoder(file).Decode(v)
}
