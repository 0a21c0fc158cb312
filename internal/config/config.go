package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// LLMConfig configures one language-model endpoint (embedding or inference).
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "ollama"
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	Key       string `yaml:"key"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// ResolvedKey returns the literal key, or the value of the configured
// environment variable when no literal key is set.
func (c *LLMConfig) ResolvedKey() string {
	if c.Key != "" {
		return c.Key
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type CrawlerConfig struct {
	MaxPages    int    `yaml:"max_pages"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	UserAgent   string `yaml:"user_agent"`
}

type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

type RetrievalConfig struct {
	TopK       int `yaml:"top_k"`
	RerankTopN int `yaml:"rerank_top_n"`
}

type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// BlobConfig configures the optional remote mirror of the index cache.
type BlobConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	SecretKeyEnv string `yaml:"secret_key_env"`
	UseSSL       bool   `yaml:"use_ssl"`
}

func (c *BlobConfig) ResolvedSecretKey() string {
	if c.SecretKey != "" {
		return c.SecretKey
	}
	if c.SecretKeyEnv != "" {
		return os.Getenv(c.SecretKeyEnv)
	}
	return ""
}

// HistoryConfig selects where conversation turns are persisted.
type HistoryConfig struct {
	Driver   string `yaml:"driver"` // "memory" or "postgres"
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Crawler   CrawlerConfig   `yaml:"crawler"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	EmbedLLM  LLMConfig       `yaml:"embed_llm"`
	InferLLM  LLMConfig       `yaml:"infer_llm"`
	Cache     CacheConfig     `yaml:"cache"`
	Blob      BlobConfig      `yaml:"blob"`
	History   HistoryConfig   `yaml:"history"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Crawler.MaxPages <= 0 {
		c.Crawler.MaxPages = models.DefaultMaxPages
	}
	if c.Crawler.TimeoutSecs <= 0 {
		c.Crawler.TimeoutSecs = 10
	}
	if c.Crawler.UserAgent == "" {
		c.Crawler.UserAgent = "Mozilla/5.0"
	}
	if c.Chunker.ChunkSize <= 0 {
		c.Chunker.ChunkSize = models.DefaultChunkSize
	}
	if c.Chunker.ChunkOverlap <= 0 {
		c.Chunker.ChunkOverlap = models.DefaultChunkOverlap
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = models.DefaultTopK
	}
	if c.Retrieval.RerankTopN <= 0 {
		c.Retrieval.RerankTopN = models.DefaultRerankTopN
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = "./vector_store_cache"
	}
	if c.History.Driver == "" {
		c.History.Driver = "memory"
	}
	if c.EmbedLLM.Provider == "" {
		c.EmbedLLM.Provider = "openai"
	}
	if c.InferLLM.Provider == "" {
		c.InferLLM.Provider = "openai"
	}
}
