package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "chatbotht/pkg/errors"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercase and punctuation", "¡Hola, Mundo!", []string{"hola", "mundo"}},
		{"single letters dropped", "y a la casa", []string{"la", "casa"}},
		{"accents kept", "¿Cómo estás?", []string{"cómo", "estás"}},
		{"decomposed accents normalized", "cafe\u0301", []string{"caf\u00e9"}},
		{"digits are word characters", "error 404", []string{"error", "404"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestFitVectorizer(t *testing.T) {
	v, err := FitVectorizer([]string{"hola amigo", "adiós amigo", "hola hola"})
	require.NoError(t, err)

	assert.Equal(t, []string{"adiós", "amigo", "hola"}, v.Features)
	assert.Equal(t, map[string]int{"adiós": 0, "amigo": 1, "hola": 2}, v.Vocabulary)
	assert.Equal(t, 3, v.Dimension())
}

func TestFitVectorizerErrors(t *testing.T) {
	_, err := FitVectorizer(nil)
	assert.ErrorIs(t, err, pkgerrors.ErrEmptyCorpus)

	_, err = FitVectorizer([]string{"?", "a"})
	assert.ErrorIs(t, err, pkgerrors.ErrEmptyVocabulary)
}

func TestTransformCountsAndDropsUnknownTokens(t *testing.T) {
	v, err := FitVectorizer([]string{"hola amigo", "adiós amigo"})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2}, v.Transform("Hola hola AMIGO"))
	assert.Equal(t, []float64{0, 0, 0}, v.Transform("palabras desconocidas"))
	assert.Equal(t, []float64{1, 0, 1}, v.Transform("hola desconocido adiós"))

	rows := v.TransformAll([]string{"hola", "adiós"})
	assert.Equal(t, [][]float64{{0, 0, 1}, {1, 0, 0}}, rows)
}
