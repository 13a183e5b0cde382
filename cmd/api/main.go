package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ragstore/internal/config"
	"ragstore/internal/handlers"
	"ragstore/internal/http"
	"ragstore/internal/llm"
	"ragstore/internal/retrieval"
	"ragstore/internal/service"
	"ragstore/internal/storage"
	"ragstore/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API stores text in a folder tree and retrieves it with vector, text, QA and tag search.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: ragstore API
//   description: |
//     Folder-scoped document store with labels, QA pairs and hybrid retrieval.
//     Questions are answered from retrieved passages when an LLM is configured.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := storage.CreateIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	repos := service.Repos{
		Folders:   storage.NewFolderRepo(db),
		Documents: storage.NewDocumentRepo(db),
		Labels:    storage.NewLabelRepo(db),
		QA:        storage.NewQARepo(db),
	}

	ctx := context.Background()
	healthChecks := []handlers.HealthCheck{{Name: "database", Check: db.PingContext}}

	// Vector search runs in-process unless Qdrant is configured, in which case
	// Qdrant mirrors document vectors and serves vector queries.
	var (
		mirror   vectorstore.VectorStore
		searcher vectorstore.Searcher = vectorstore.NewExactSearcher(repos.Documents)
	)
	if cfg.QdrantURL != "" {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		defer func() {
			_ = qdrantStore.Close()
		}()
		if err := qdrantStore.EnsureCollection(ctx, cfg.EmbeddingVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)

		mirror = qdrantStore
		searcher = qdrantStore
		healthChecks = append(healthChecks, handlers.HealthCheck{Name: "vector_store", Check: qdrantStore.Ping, Optional: true})
	}

	defaults := service.NewDefaultFolderResolver(repos.Folders)
	content := service.NewContentService(repos, defaults, mirror)

	var (
		embedder      service.Embedder
		queryEmbedder retrieval.Embedder
		labeler       service.Labeler
		qaGenerator   service.QAGenerator
		answerer      handlers.Answerer
		chat          *llm.Client
	)
	if cfg.EmbeddingBaseURL != "" {
		client := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
		embedder = client
		queryEmbedder = client
		slog.Info("Embedding client configured", "base_url", cfg.EmbeddingBaseURL, "model", cfg.EmbeddingModelName)
	}
	if cfg.LLMBaseURL != "" {
		chat = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
		labeler = llm.NewLabeler(chat)
		qaGenerator = llm.NewQAGenerator(chat)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	}

	ingester := service.NewIngester(content, embedder, labeler, qaGenerator)
	coordinator := retrieval.NewCoordinator(retrieval.Stores{
		Documents: repos.Documents,
		QA:        repos.QA,
		Labels:    repos.Labels,
	}, searcher, queryEmbedder)
	if chat != nil {
		answerer = retrieval.NewAnswerer(coordinator, chat)
	}

	router := http.NewRouter(&http.Deps{
		Content:      content,
		Ingester:     ingester,
		Searcher:     coordinator,
		Answerer:     answerer,
		HealthChecks: healthChecks,
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		slog.Info("Shutting down API server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}
