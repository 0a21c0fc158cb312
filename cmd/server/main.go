package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akhilesh1566/Website-Chatbot/internal/app"
	"github.com/akhilesh1566/Website-Chatbot/internal/cache"
	"github.com/akhilesh1566/Website-Chatbot/internal/chunker"
	"github.com/akhilesh1566/Website-Chatbot/internal/config"
	"github.com/akhilesh1566/Website-Chatbot/internal/crawler"
	"github.com/akhilesh1566/Website-Chatbot/internal/embedding"
	"github.com/akhilesh1566/Website-Chatbot/internal/history"
	"github.com/akhilesh1566/Website-Chatbot/internal/llmservice"
	"github.com/akhilesh1566/Website-Chatbot/internal/rag"
	"github.com/akhilesh1566/Website-Chatbot/internal/web"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	flag.Parse()

	// Optional .env for local development; keys are resolved from env.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded .env file")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	embedder, err := embedding.NewProvider(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	completer := llmservice.NewClient(&cfg.InferLLM)

	var blob cache.BlobStore
	if cfg.Blob.Enabled {
		minioStore, err := cache.NewMinioStore(ctx, &cfg.Blob)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing blob store")
		}
		blob = minioStore
		log.Info().Str("bucket", cfg.Blob.Bucket).Msg("Remote cache mirror enabled")
	}

	store, err := cache.NewStore(cfg.Cache.Dir, blob)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing cache store")
	}

	var hist history.Store
	switch cfg.History.Driver {
	case "postgres":
		pgStore, err := history.NewPostgresStore(ctx, &cfg.History)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing history store")
		}
		defer pgStore.Close()
		hist = pgStore
	default:
		hist = history.NewMemoryStore()
	}

	engine := rag.NewEngine(embedder, completer, cfg.Retrieval.TopK, cfg.Retrieval.RerankTopN)
	fetcher := crawler.New(time.Duration(cfg.Crawler.TimeoutSecs)*time.Second, cfg.Crawler.UserAgent)
	splitter := chunker.NewSplitter(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)

	application := app.New(cfg, fetcher, splitter, embedder, engine, store, hist)
	server := web.NewServer(application)

	log.Info().Int("port", cfg.Server.Port).Msg("Starting server")
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
