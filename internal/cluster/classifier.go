package cluster

import (
	"errors"

	pkgerrors "chatbotht/pkg/errors"
	"chatbotht/pkg/logger"
)

// Classifier holds a loaded vectorizer/model pair. It is read-only after
// construction and safe for concurrent use.
type Classifier struct {
	vectorizer *Vectorizer
	model      *KMeans
}

// Assignment is one corpus row and the cluster it falls in.
type Assignment struct {
	Text    string
	Cluster int
}

func NewClassifier(vectorizer *Vectorizer, model *KMeans) *Classifier {
	return &Classifier{vectorizer: vectorizer, model: model}
}

// LoadOrTrain loads the persisted pair, training and saving a new one over
// corpus when none exists or the saved files do not match.
func LoadOrTrain(paths Paths, corpus []string, k int, opts Options) (*Classifier, error) {
	vectorizer, model, err := Load(paths)
	if errors.Is(err, pkgerrors.ErrModelNotFound) || errors.Is(err, pkgerrors.ErrModelMismatch) {
		vectorizer, model, err = Train(corpus, k, opts, paths)
	}
	if err != nil {
		return nil, err
	}
	if model.K != k {
		logger.Warn("saved clustering model uses a different k, run train to apply the configured value",
			"saved_k", model.K, "configured_k", k, "model", paths.Model)
	}
	return NewClassifier(vectorizer, model), nil
}

// Classify returns the cluster id for text.
func (c *Classifier) Classify(text string) int {
	return Classify(c.vectorizer, c.model, text)
}

// K is the number of clusters.
func (c *Classifier) K() int {
	return c.model.K
}

// Assignments classifies every row of corpus.
func (c *Classifier) Assignments(corpus []string) []Assignment {
	out := make([]Assignment, len(corpus))
	for i, text := range corpus {
		out[i] = Assignment{Text: text, Cluster: c.Classify(text)}
	}
	return out
}
