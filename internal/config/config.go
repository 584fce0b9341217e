package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ServerConfig configures the HTTP listener and process logging.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	Debug     bool   `yaml:"debug"`
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	UploadDir string `yaml:"upload_dir"`
	// MaxUploadMB bounds the multipart body kept in memory by gin.
	MaxUploadMB int `yaml:"max_upload_mb"`
}

// ClusterConfig configures the fallback k-means classifier.
type ClusterConfig struct {
	ModelDir       string `yaml:"model_dir"`
	ModelFile      string `yaml:"model_file"`
	VectorizerFile string `yaml:"vectorizer_file"`
	K              int    `yaml:"k"`
	Seed           int64  `yaml:"seed"`
}

// LLMConfig configures the chat-completion provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	TimeoutSecs int     `yaml:"timeout_secs"`
	Temperature float64 `yaml:"temperature"`
}

// EmbeddingConfig configures the embedding provider and its query cache.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size"`
	CacheSize   int    `yaml:"cache_size"`
}

// StoreConfig configures the single-slot document vector store.
type StoreConfig struct {
	Dir          string `yaml:"dir"`
	TopK         int    `yaml:"top_k"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	Space        string `yaml:"space"`
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Cluster   ClusterConfig   `yaml:"cluster"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Store     StoreConfig     `yaml:"store"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Server.Debug = true
	return cfg
}

// FromFile reads a YAML config. Missing fields take their defaults.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// debug defaults to on, so an absent key has to be told apart from false
	var explicit struct {
		Server struct {
			Debug *bool `yaml:"debug"`
		} `yaml:"server"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(cfg)
	cfg.Server.Debug = explicit.Server.Debug == nil || *explicit.Server.Debug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load behaves like FromFile but returns defaults when path is empty or
// the file does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := FromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadEnv loads a .env file into the process environment, overriding
// variables already set. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Overload(path)
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	if c.Cluster.K <= 0 {
		return fmt.Errorf("cluster.k must be positive, got %d", c.Cluster.K)
	}
	if c.Store.TopK <= 0 {
		return fmt.Errorf("store.top_k must be positive, got %d", c.Store.TopK)
	}
	if c.Store.ChunkOverlap >= c.Store.ChunkSize {
		return fmt.Errorf("store.chunk_overlap (%d) must be smaller than store.chunk_size (%d)",
			c.Store.ChunkOverlap, c.Store.ChunkSize)
	}
	for name, p := range map[string]string{"llm.provider": c.LLM.Provider, "embedding.provider": c.Embedding.Provider} {
		if p != ProviderOpenAI && p != ProviderGemini {
			return fmt.Errorf("%s: unknown provider %q", name, p)
		}
	}
	return nil
}

// ModelPath returns the on-disk path of the persisted k-means model.
func (c *ClusterConfig) ModelPath() string {
	return filepath.Join(c.ModelDir, c.ModelFile)
}

// VectorizerPath returns the on-disk path of the persisted vectorizer.
func (c *ClusterConfig) VectorizerPath() string {
	return filepath.Join(c.ModelDir, c.VectorizerFile)
}

// APIKey reads the provider credential from the environment.
func (c *LLMConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// APIKey reads the provider credential from the environment.
func (c *EmbeddingConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

func (c *EmbeddingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func applyDefaults(cfg *Config) {
	s := &cfg.Server
	if s.Addr == "" {
		s.Addr = "0.0.0.0:5000"
	}
	if s.LogLevel == "" {
		s.LogLevel = "debug"
	}
	if s.UploadDir == "" {
		s.UploadDir = "uploads"
	}
	if s.MaxUploadMB == 0 {
		s.MaxUploadMB = 50
	}

	cl := &cfg.Cluster
	if cl.ModelDir == "" {
		cl.ModelDir = "models"
	}
	if cl.ModelFile == "" {
		cl.ModelFile = "unsupervised_model.gob"
	}
	if cl.VectorizerFile == "" {
		cl.VectorizerFile = "unsupervised_vectorizer.gob"
	}
	if cl.K == 0 {
		cl.K = 6
	}
	if cl.Seed == 0 {
		cl.Seed = 42
	}

	l := &cfg.LLM
	if l.Provider == "" {
		l.Provider = ProviderOpenAI
	}
	if l.Model == "" {
		l.Model = defaultLLMModel(l.Provider)
	}
	if l.APIKeyEnv == "" {
		l.APIKeyEnv = defaultKeyEnv(l.Provider)
	}
	if l.TimeoutSecs == 0 {
		l.TimeoutSecs = 60
	}

	e := &cfg.Embedding
	if e.Provider == "" {
		e.Provider = l.Provider
	}
	if e.Model == "" {
		e.Model = defaultEmbeddingModel(e.Provider)
	}
	if e.APIKeyEnv == "" {
		e.APIKeyEnv = defaultKeyEnv(e.Provider)
	}
	if e.BaseURL == "" && e.Provider == ProviderOpenAI {
		e.BaseURL = "https://api.openai.com/v1"
	}
	if e.TimeoutSecs == 0 {
		e.TimeoutSecs = 30
	}
	if e.BatchSize == 0 {
		e.BatchSize = 64
	}
	if e.CacheSize == 0 {
		e.CacheSize = 256
	}

	st := &cfg.Store
	if st.Dir == "" {
		st.Dir = "vector_db"
	}
	if st.TopK == 0 {
		st.TopK = 3
	}
	if st.ChunkSize == 0 {
		st.ChunkSize = 800
	}
	if st.ChunkOverlap == 0 {
		st.ChunkOverlap = 100
	}
	if st.Space == "" {
		st.Space = "l2"
	}
}

func defaultLLMModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "gpt-4o-mini"
}

func defaultEmbeddingModel(provider string) string {
	if provider == ProviderGemini {
		return "text-embedding-004"
	}
	return "text-embedding-ada-002"
}

func defaultKeyEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}
