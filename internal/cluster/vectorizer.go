package cluster

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	pkgerrors "chatbotht/pkg/errors"
)

// tokenPattern keeps runs of two or more word characters, the usual
// count-vectorizer default. Single letters such as "y" or "a" are dropped.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// Vectorizer is a fitted bag-of-words transform. Columns follow the sorted
// order of the vocabulary.
type Vectorizer struct {
	Vocabulary map[string]int
	Features   []string
}

// Tokenize normalizes text to NFC, lowercases it and splits it into tokens.
func Tokenize(text string) []string {
	lower := strings.ToLower(norm.NFC.String(text))
	return tokenPattern.FindAllString(lower, -1)
}

// FitVectorizer builds the vocabulary from every token observed in corpus.
func FitVectorizer(corpus []string) (*Vectorizer, error) {
	if len(corpus) == 0 {
		return nil, pkgerrors.ErrEmptyCorpus
	}
	seen := make(map[string]struct{})
	for _, text := range corpus {
		for _, tok := range Tokenize(text) {
			seen[tok] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, pkgerrors.ErrEmptyVocabulary
	}

	features := make([]string, 0, len(seen))
	for tok := range seen {
		features = append(features, tok)
	}
	sort.Strings(features)

	vocab := make(map[string]int, len(features))
	for i, tok := range features {
		vocab[tok] = i
	}
	return &Vectorizer{Vocabulary: vocab, Features: features}, nil
}

// Dimension is the number of feature columns.
func (v *Vectorizer) Dimension() int {
	return len(v.Features)
}

// Transform returns the token counts of text. Tokens outside the vocabulary
// contribute nothing.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.Features))
	for _, tok := range Tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}
	return vec
}

// TransformAll transforms every text in corpus.
func (v *Vectorizer) TransformAll(corpus []string) [][]float64 {
	rows := make([][]float64, len(corpus))
	for i, text := range corpus {
		rows[i] = v.Transform(text)
	}
	return rows
}
