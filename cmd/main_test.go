package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbotht/internal/cluster"
)

// writeConfig points every on-disk artifact into a temp dir.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"server:",
		"  log_level: error",
		"cluster:",
		"  model_dir: " + filepath.Join(dir, "models"),
		"store:",
		"  dir: " + filepath.Join(dir, "vector_db"),
		"llm:",
		"  api_key_env: CHATBOTHT_TEST_MISSING_KEY",
		"embedding:",
		"  api_key_env: CHATBOTHT_TEST_MISSING_KEY",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path, dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandListsSubcommands(t *testing.T) {
	cmd := newRootCommand()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "train", "clusters", "ingest", "ask"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, cmd.Flags().Lookup("probe"))
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
}

func TestTrainCommandWritesModel(t *testing.T) {
	cfgPath, dir := writeConfig(t)

	out, err := run(t, "train", "--config", cfgPath, "--env", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Trained 6 clusters")
	assert.FileExists(t, filepath.Join(dir, "models", "unsupervised_model.gob"))
	assert.FileExists(t, filepath.Join(dir, "models", "unsupervised_vectorizer.gob"))
}

func TestClustersCommandRendersEveryPhrase(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, err := run(t, "clusters", "--config", cfgPath, "--env", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample reply")
	for _, phrase := range cluster.TrainingData {
		assert.Contains(t, out, phrase)
	}
}

func TestIngestCommandWithoutKeyFails(t *testing.T) {
	cfgPath, dir := writeConfig(t)
	doc := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(doc, []byte("contenido"), 0o644))

	_, err := run(t, "ingest", doc, "--config", cfgPath, "--env", "")
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "vector_db"))
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster:\n  k: -1\n"), 0o644))

	_, err := run(t, "train", "--config", path, "--env", "")
	assert.Error(t, err)
}

func TestRenderAssignmentsSortsByCluster(t *testing.T) {
	out := renderAssignments([]cluster.Assignment{
		{Text: "gracias", Cluster: 4},
		{Text: "hola", Cluster: 0},
	})
	assert.Less(t, strings.Index(out, "hola"), strings.Index(out, "gracias"))
	assert.Contains(t, out, "¡Hola! 😊 ¿Cómo estás?")
}

func TestAskCommand(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"recibido: ` + r.PostForm.Get("message") + `"}`))
	}))
	defer ts.Close()
	cfgPath, _ := writeConfig(t)

	out, err := run(t, "ask", "--server", ts.URL, "--config", cfgPath, "--env", "", "hola", "bot")
	require.NoError(t, err)
	assert.Equal(t, "recibido: hola bot\n", out)
}
