package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/akhilesh1566/Website-Chatbot/internal/config"
)

// Completer produces a text completion for an assembled chat prompt.
type Completer interface {
	Complete(ctx context.Context, messages []llms.MessageContent) (string, error)
}

// Client is the production Completer, backed by an OpenAI-compatible
// chat completion endpoint.
type Client struct {
	cfg *config.LLMConfig
}

func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Complete(ctx context.Context, messages []llms.MessageContent) (string, error) {
	log.Debug().Str("model", c.cfg.Model).Int("messages", len(messages)).Msg("Generating content")

	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(c.cfg.ResolvedKey(), "Bearer ")),
		openai.WithModel(c.cfg.Model),
	}
	if c.cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(c.cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to initialize inference LLM: %w", err)
	}

	res, err := llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return res.Choices[0].Content, nil
}
