// Package app orchestrates the prepare-site and answer workflows over
// per-session state: each session owns its readiness, active index and
// conversation history.
package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/akhilesh1566/Website-Chatbot/internal/cache"
	"github.com/akhilesh1566/Website-Chatbot/internal/chunker"
	"github.com/akhilesh1566/Website-Chatbot/internal/config"
	"github.com/akhilesh1566/Website-Chatbot/internal/embedding"
	"github.com/akhilesh1566/Website-Chatbot/internal/history"
	"github.com/akhilesh1566/Website-Chatbot/internal/models"
	"github.com/akhilesh1566/Website-Chatbot/internal/rag"
)

// CorpusFetcher turns a seed URL into a raw text corpus.
type CorpusFetcher interface {
	Crawl(ctx context.Context, seedURL string, maxPages int) (string, error)
}

// Session is one caller's readiness state, active index and site URL.
// The mutex serializes the prepare workflow; the index swap under it is
// atomic from a concurrent reader's perspective.
type Session struct {
	mu      sync.RWMutex
	prepMu  sync.Mutex
	state   models.Readiness
	siteURL string
	index   rag.VectorIndex
}

func (s *Session) snapshot() (models.Readiness, string, rag.VectorIndex) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.siteURL, s.index
}

func (s *Session) set(state models.Readiness, siteURL string, index rag.VectorIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.siteURL = siteURL
	s.index = index
}

// App wires the crawl, ingestion, cache and conversation subsystems.
type App struct {
	cfg      *config.Config
	crawler  CorpusFetcher
	splitter *chunker.Splitter
	embedder embedding.Provider
	engine   *rag.Engine
	store    *cache.Store
	history  history.Store

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(cfg *config.Config, crawler CorpusFetcher, splitter *chunker.Splitter, embedder embedding.Provider, engine *rag.Engine, store *cache.Store, hist history.Store) *App {
	return &App{
		cfg:      cfg,
		crawler:  crawler,
		splitter: splitter,
		embedder: embedder,
		engine:   engine,
		store:    store,
		history:  hist,
		sessions: make(map[string]*Session),
	}
}

func (a *App) session(sessionID string) *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[sessionID]
	if !ok {
		s = &Session{state: models.NotReady}
		a.sessions[sessionID] = s
	}
	return s
}

// Status returns the session's readiness and, when ready, its site URL.
func (a *App) Status(sessionID string) (models.Readiness, string) {
	state, siteURL, _ := a.session(sessionID).snapshot()
	return state, siteURL
}

// PrepareSite loads or builds the vector index for rawURL, installs it as
// the session's active index and resets the session's history. The
// cache-hit decision is re-checked on every call. On any failure the
// session is left not-ready with no site URL recorded.
func (a *App) PrepareSite(ctx context.Context, sessionID, rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: a valid http(s) URL is required", models.ErrInvalidInput)
	}

	sess := a.session(sessionID)
	sess.prepMu.Lock()
	defer sess.prepMu.Unlock()

	sess.set(models.Preparing, "", nil)

	idx, err := a.loadOrBuild(ctx, rawURL)
	if err != nil {
		sess.set(models.Failed, "", nil)
		return err
	}

	if err := a.history.Reset(ctx, sessionID); err != nil {
		sess.set(models.Failed, "", nil)
		return fmt.Errorf("failed to reset history: %w", err)
	}

	sess.set(models.Ready, rawURL, idx)
	log.Info().Str("site", rawURL).Str("session", sessionID).Msg("Site is ready for chat")
	return nil
}

func (a *App) loadOrBuild(ctx context.Context, rawURL string) (rag.VectorIndex, error) {
	key := cache.Key(rawURL)

	hit, err := a.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if hit {
		log.Info().Str("key", key).Msg("Cache hit, loading stored index")
		idx, err := a.store.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		return idx, nil
	}

	log.Info().Str("key", key).Msg("Cache miss, crawling site")
	text, err := a.crawler.Crawl(ctx, rawURL, a.cfg.Crawler.MaxPages)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", models.ErrEmptyContent, rawURL)
	}

	// Credential check up front so no partial embedding work is wasted.
	if a.cfg.EmbedLLM.Provider == "openai" && a.cfg.EmbedLLM.ResolvedKey() == "" {
		return nil, models.ErrMissingCredential
	}

	passages := a.splitter.Split(text)
	if len(passages) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrEmptyContent, rawURL)
	}
	log.Info().Int("passages", len(passages)).Msg("Split corpus into passages")

	vectors, err := embedding.EmbedPassages(ctx, a.embedder, passages)
	if err != nil {
		return nil, err
	}

	idx, err := a.store.Save(ctx, key, passages, vectors)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Answer runs one conversation turn for the session. History is loaded
// before the model call and the new turn is appended only after the call
// succeeds, so a failed invocation leaves history unmodified.
func (a *App) Answer(ctx context.Context, sessionID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question must be non-empty text", models.ErrInvalidInput)
	}

	state, _, idx := a.session(sessionID).snapshot()
	if state != models.Ready || idx == nil {
		return "", models.ErrNotReady
	}

	turns, err := a.history.Turns(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	answer, err := a.engine.Answer(ctx, idx, turns, question)
	if err != nil {
		return "", err
	}

	if err := a.history.Append(ctx, sessionID, models.ConversationTurn{Question: question, Answer: answer}); err != nil {
		return "", fmt.Errorf("failed to persist turn: %w", err)
	}
	return answer, nil
}
