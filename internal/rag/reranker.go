package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// Rerank asks the completion model to score every candidate 0-10 for
// relevance and returns the top-N by score. Any failure, from the model
// call to parsing its response, falls back to the first N candidates in
// retrieval order; reranking never aborts a conversation turn.
func (e *Engine) Rerank(ctx context.Context, query string, candidates []models.Passage) []models.Passage {
	if len(candidates) <= e.topN {
		return candidates
	}

	var docs strings.Builder
	for i, p := range candidates {
		if i > 0 {
			docs.WriteString("\n\n")
		}
		fmt.Fprintf(&docs, "Doc %d: %s", i, p.Text)
	}
	prompt := fmt.Sprintf(models.RerankPromptTemplate, query, docs.String())

	resp, err := e.completer.Complete(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Reranker call failed, keeping retrieval order")
		return candidates[:e.topN]
	}

	scores, err := parseScores(resp)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse reranker response, keeping retrieval order")
		return candidates[:e.topN]
	}
	log.Debug().Interface("scores", scores).Msg("Parsed rerank scores")

	type scored struct {
		passage models.Passage
		score   float64
	}
	// Unscored candidates default to 0; ties keep retrieval order.
	items := make([]scored, len(candidates))
	for i, p := range candidates {
		items[i] = scored{passage: p, score: scores[strconv.Itoa(i)]}
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].score > items[b].score })

	top := make([]models.Passage, 0, e.topN)
	for i := 0; i < e.topN; i++ {
		top = append(top, items[i].passage)
	}
	return top
}

// parseScores decodes the candidate-index to score map, tolerating a
// surrounding markdown code fence.
func parseScores(resp string) (map[string]float64, error) {
	cleaned := strings.TrimSpace(resp)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var scores map[string]float64
	if err := json.Unmarshal([]byte(cleaned), &scores); err != nil {
		return nil, fmt.Errorf("response is not a score map: %w", err)
	}
	return scores, nil
}
