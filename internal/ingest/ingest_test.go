package ingest

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbotht/internal/docstore"
	"chatbotht/internal/index"
	pkgerrors "chatbotht/pkg/errors"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    string
		wantErr error
	}{
		{"pdf", "manual.pdf", TypePDF, nil},
		{"txt", "notas.txt", TypeTXT, nil},
		{"docx", "informe.docx", TypeDOCX, nil},
		{"uppercase extension", "INFORME.DOCX", TypeDOCX, nil},
		{"empty", "", "", pkgerrors.ErrEmptyFilename},
		{"blank", "   ", "", pkgerrors.ErrEmptyFilename},
		{"unsupported", "foto.png", "", pkgerrors.ErrUnsupportedFileType},
		{"no extension", "README", "", pkgerrors.ErrUnsupportedFileType},
		{"legacy word", "viejo.doc", "", pkgerrors.ErrUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFilename(tt.file)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notas.txt")
	require.NoError(t, os.WriteFile(path, []byte("línea uno\nlínea dos"), 0o644))

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "línea uno\nlínea dos", text)
}

func writeDOCX(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestExtractDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "informe.docx")
	writeDOCX(t, path, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Hola</w:t></w:r><w:r><w:tab/><w:t>mundo</w:t></w:r></w:p>
<w:p><w:r><w:t>Segundo párrafo</w:t></w:r></w:p>
</w:body>
</w:document>`)

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Hola\tmundo\nSegundo párrafo\n", text)
}

func TestExtractDOCXMissingBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roto.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Extract(path)
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestExtractCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"roto.pdf", "roto.docx"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("not a real document"), 0o644))
		_, err := Extract(path)
		assert.Error(t, err, name)
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract("foto.png")
	assert.ErrorIs(t, err, pkgerrors.ErrUnsupportedFileType)
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func newTestPipeline(t *testing.T, embedder *fakeEmbedder) (*Pipeline, *docstore.Store) {
	t.Helper()
	store := docstore.New(filepath.Join(t.TempDir(), "vector_db"), index.L2Space)
	return NewPipeline(store, embedder, Options{ChunkSize: 12, ChunkOverlap: 0}), store
}

func writeText(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipeline_IngestReplacesStore(t *testing.T) {
	embedder := &fakeEmbedder{}
	p, store := newTestPipeline(t, embedder)

	res, err := p.Ingest(context.Background(), writeText(t, "doc.txt", "alpha beta\n\ngamma delta\n\nalpha beta"))
	require.NoError(t, err)
	assert.Equal(t, "doc.txt", res.Source)
	assert.Equal(t, 2, res.Chunks)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 1, embedder.calls)

	require.True(t, store.Exists())
	snap, err := store.Open()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	results, err := snap.Search([]float32{11, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "gamma delta", results[0].Chunk.Text)
	assert.Equal(t, "doc.txt", results[0].Chunk.Source)
}

func TestPipeline_EmptyDocumentKeepsStore(t *testing.T) {
	p, store := newTestPipeline(t, &fakeEmbedder{})
	_, err := p.Ingest(context.Background(), writeText(t, "first.txt", "contenido"))
	require.NoError(t, err)

	_, err = p.Ingest(context.Background(), writeText(t, "blank.txt", " \n\n\t "))
	assert.ErrorIs(t, err, pkgerrors.ErrEmptyDocument)

	snap, err := store.Open()
	require.NoError(t, err)
	results, err := snap.Search([]float32{9, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "contenido", results[0].Chunk.Text)
}

func TestPipeline_EmbeddingFailureKeepsStore(t *testing.T) {
	boom := errors.New("boom")
	p, store := newTestPipeline(t, &fakeEmbedder{err: boom})

	_, err := p.Ingest(context.Background(), writeText(t, "doc.txt", "contenido"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Exists())
}

func TestPipeline_UnsupportedFileNotIngested(t *testing.T) {
	embedder := &fakeEmbedder{}
	p, store := newTestPipeline(t, embedder)

	_, err := p.Ingest(context.Background(), writeText(t, "foto.png", "pixels"))
	assert.ErrorIs(t, err, pkgerrors.ErrUnsupportedFileType)
	assert.False(t, store.Exists())
	assert.Equal(t, 0, embedder.calls)
}

func TestNewPipelineDefaults(t *testing.T) {
	store := docstore.New(t.TempDir(), index.L2Space)
	p := NewPipeline(store, &fakeEmbedder{}, Options{})

	// a short document fits in one default-sized chunk
	chunks, duplicates, err := p.split("doc.txt", "una sola frase")
	require.NoError(t, err)
	assert.Equal(t, 0, duplicates)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Len(t, chunks[0].ID, 16)
}
