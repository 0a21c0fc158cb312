package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/akhilesh1566/Website-Chatbot/internal/config"
	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// Provider turns free text into a fixed-dimension vector. Satisfied by
// langchaingo's EmbedderImpl and by test doubles.
type Provider interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewProvider builds an embedder from config. OpenAI-compatible endpoints
// require a credential; its absence is reported before any embedding call
// is attempted.
func NewProvider(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return newOllamaEmbedder(cfg)
	default:
		return newOpenAIEmbedder(cfg)
	}
}

func newOpenAIEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	key := cfg.ResolvedKey()
	if key == "" {
		return nil, models.ErrMissingCredential
	}
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(key, "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

func newOllamaEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedPassages produces one vector per passage, in passage order.
func EmbedPassages(ctx context.Context, provider Provider, passages []models.Passage) ([][]float32, error) {
	vectors := make([][]float32, 0, len(passages))
	for _, p := range passages {
		vec, err := provider.EmbedQuery(ctx, p.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed passage %s: %w", p.ID, err)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}
