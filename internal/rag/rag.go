package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/akhilesh1566/Website-Chatbot/internal/embedding"
	"github.com/akhilesh1566/Website-Chatbot/internal/llmservice"
	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// VectorIndex is the read-only retrieval surface the engine queries.
type VectorIndex interface {
	Nearest(ctx context.Context, queryEmbedding []float32, k int) ([]models.Passage, error)
}

// Engine answers questions grounded in an active vector index using a
// retrieve-then-rerank strategy.
type Engine struct {
	embedder  embedding.Provider
	completer llmservice.Completer
	topK      int
	topN      int
}

func NewEngine(embedder embedding.Provider, completer llmservice.Completer, topK, topN int) *Engine {
	if topK <= 0 {
		topK = models.DefaultTopK
	}
	if topN <= 0 {
		topN = models.DefaultRerankTopN
	}
	if topN > topK {
		topN = topK
	}
	return &Engine{embedder: embedder, completer: completer, topK: topK, topN: topN}
}

// Retrieve embeds the query with the same provider used at ingestion time
// and returns the top-K nearest passages, nearest first. The index is not
// mutated.
func (e *Engine) Retrieve(ctx context.Context, idx VectorIndex, query string) ([]models.Passage, error) {
	queryEmbedding, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return idx.Nearest(ctx, queryEmbedding, e.topK)
}

// Answer runs the full query-time pipeline for one turn: retrieve,
// rerank, assemble the grounding prompt with prior turns, and invoke the
// completion model. The caller owns history persistence.
func (e *Engine) Answer(ctx context.Context, idx VectorIndex, turns []models.ConversationTurn, question string) (string, error) {
	candidates, err := e.Retrieve(ctx, idx, question)
	if err != nil {
		return "", err
	}
	log.Debug().Int("candidates", len(candidates)).Msg("Retrieved passages for reranking")

	grounding := e.Rerank(ctx, question, candidates)

	var contextText strings.Builder
	for _, p := range grounding {
		contextText.WriteString(p.Text)
		contextText.WriteString("\n\n")
	}

	messages := make([]llms.MessageContent, 0, len(turns)*2+2)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem,
		fmt.Sprintf(models.SystemPromptTemplate, contextText.String())))
	for _, t := range turns {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, t.Question))
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeAI, t.Answer))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, question))

	return e.completer.Complete(ctx, messages)
}
