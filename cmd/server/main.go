package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
	"inkwell/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and ensure the schema exists
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	formatRepo := postgres.NewFormatRepository(repoConfig)
	feedbackRepo := postgres.NewFeedbackRepository(repoConfig)
	variantRepo := postgres.NewVariantRepository(repoConfig)
	calendarRepo := postgres.NewCalendarRepository(repoConfig)
	contextRepo := postgres.NewContextRepository(repoConfig)
	ikigaiRepo := postgres.NewIkigaiRepository(repoConfig)
	playbookRepo := postgres.NewPlaybookRepository(repoConfig)
	topicRepo := postgres.NewTopicRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Setup LLM provider. A nil provider disables generation endpoints
	// without taking down the rest of the application.
	provider, err := llm.SetupProvider(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup LLM provider: %v", err)
	}

	// Setup object storage when configured; uploads degrade to
	// metadata-only records without it.
	var store *storage.ObjectStore
	if cfg.StorageConfigured() {
		store, err = storage.NewObjectStore(storage.Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to setup object storage: %v", err)
		}
		logger.Info("object storage ready", "bucket", cfg.S3Bucket)
	} else {
		logger.Warn("object storage not configured, uploads keep extracted text only")
	}

	// Create services
	aggregator := prompt.NewAggregator(ikigaiRepo, contextRepo, feedbackRepo, logger)
	docService := service.NewDocumentService(docRepo, folderRepo, txManager, logger)
	formatService := service.NewFormatService(formatRepo, logger)
	generationService := service.NewGenerationService(docRepo, formatRepo, variantRepo, feedbackRepo, txManager, aggregator, provider, cfg.DefaultModel, logger)
	variantService := service.NewVariantService(variantRepo, formatRepo, docRepo, calendarRepo, txManager, logger)
	calendarService := service.NewCalendarService(calendarRepo, logger)
	contextService := service.NewContextService(contextRepo, store, logger)
	ikigaiService := service.NewIkigaiService(ikigaiRepo, logger)
	playbookService := service.NewPlaybookService(playbookRepo, docRepo, aggregator, provider, cfg.DefaultModel, logger)
	suggestionService := service.NewSuggestionService(docRepo, ikigaiRepo, aggregator, provider, cfg.DefaultModel, logger)
	researchService := service.NewResearchService(provider, cfg.DefaultModel, logger)
	topicService := service.NewTopicService(topicRepo, docRepo, contextRepo, ikigaiRepo, provider, cfg.DefaultModel, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	variantHandler := handler.NewVariantHandler(generationService, variantService, logger)
	formatHandler := handler.NewFormatHandler(formatService, logger)
	calendarHandler := handler.NewCalendarHandler(calendarService, logger)
	contextHandler := handler.NewContextHandler(contextService, logger)
	ikigaiHandler := handler.NewIkigaiHandler(ikigaiService, logger)
	playbookHandler := handler.NewPlaybookHandler(playbookService, logger)
	assistHandler := handler.NewAssistHandler(suggestionService, researchService, logger)
	topicHandler := handler.NewTopicHandler(topicService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Document and folder routes
	mux.HandleFunc("GET /api/documents", docHandler.List)
	mux.HandleFunc("POST /api/documents", docHandler.Create)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.Get)
	mux.HandleFunc("PUT /api/documents/{id}", docHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.Delete)
	mux.HandleFunc("POST /api/folders", docHandler.CreateFolder)

	// Variant generation and review routes
	mux.HandleFunc("POST /api/documents/{id}/generate-formats", variantHandler.GenerateAll)
	mux.HandleFunc("GET /api/documents/{id}/formats", variantHandler.List)
	mux.HandleFunc("PUT /api/documents/{id}/formats/{formatId}", variantHandler.Update)
	mux.HandleFunc("POST /api/documents/{id}/formats/{formatId}/regenerate", variantHandler.Regenerate)

	// Format routes
	mux.HandleFunc("GET /api/formats", formatHandler.List)
	mux.HandleFunc("POST /api/formats", formatHandler.Create)
	mux.HandleFunc("PUT /api/formats/{id}", formatHandler.Update)
	mux.HandleFunc("DELETE /api/formats/{id}", formatHandler.Delete)

	// Calendar routes
	mux.HandleFunc("GET /api/calendar", calendarHandler.List)
	mux.HandleFunc("PUT /api/calendar", calendarHandler.Update)

	// Context library routes
	mux.HandleFunc("GET /api/context", contextHandler.List)
	mux.HandleFunc("DELETE /api/context", contextHandler.Delete)
	mux.HandleFunc("POST /api/context/upload", contextHandler.Upload)

	// Mission record routes
	mux.HandleFunc("GET /api/ikigai", ikigaiHandler.Get)
	mux.HandleFunc("POST /api/ikigai", ikigaiHandler.Save)

	// Playbook routes
	mux.HandleFunc("GET /api/playbooks", playbookHandler.List)
	mux.HandleFunc("POST /api/playbooks", playbookHandler.Create)
	mux.HandleFunc("GET /api/playbooks/{id}", playbookHandler.Get)
	mux.HandleFunc("PUT /api/playbooks/{id}", playbookHandler.Update)
	mux.HandleFunc("DELETE /api/playbooks/{id}", playbookHandler.Delete)
	mux.HandleFunc("PUT /api/playbooks/{id}/slides", playbookHandler.SaveSlides)

	// Writing assistance routes
	mux.HandleFunc("POST /api/suggestions", assistHandler.Suggest)
	mux.HandleFunc("POST /api/research", assistHandler.Research)

	// Topic routes
	mux.HandleFunc("GET /api/topics", topicHandler.List)
	mux.HandleFunc("POST /api/topics", topicHandler.Create)
	mux.HandleFunc("PUT /api/topics/{id}", topicHandler.Update)
	mux.HandleFunc("DELETE /api/topics/{id}", topicHandler.Delete)
	mux.HandleFunc("POST /api/topics/generate", topicHandler.GenerateIdeas)

	// Build middleware chain
	var httpHandler http.Handler = mux
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - must wrap everything to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server. Write timeout stays generous because a
	// generate-all run waits on several model completions.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
