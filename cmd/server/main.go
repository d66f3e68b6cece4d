package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pitchcraft/internal/auth"
	"pitchcraft/internal/catalog"
	"pitchcraft/internal/config"
	"pitchcraft/internal/handler"
	"pitchcraft/internal/middleware"
	"pitchcraft/internal/repository/postgres"
	"pitchcraft/internal/service"

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

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	proposalRepo := postgres.NewProposalRepository(repoConfig)
	sectionRepo := postgres.NewSectionRepository(repoConfig)

	// Create services
	proposalService := service.NewProposalService(proposalRepo, sectionRepo, logger)
	sectionService := service.NewSectionService(proposalRepo, sectionRepo, logger)

	// Section type catalog (embedded, read-only)
	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load section type catalog: %v", err)
	}

	// Create handlers
	proposalHandler := handler.NewProposalHandler(proposalService, logger)
	sectionHandler := handler.NewSectionHandler(sectionService, logger)
	catalogHandler := handler.NewCatalogHandler(registry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", proposalHandler.HealthCheck)

	// Proposal routes
	mux.HandleFunc("GET /api/proposals", proposalHandler.ListProposals)
	mux.HandleFunc("POST /api/proposals", proposalHandler.CreateProposal)
	mux.HandleFunc("GET /api/proposals/{id}", proposalHandler.GetProposal)
	mux.HandleFunc("PATCH /api/proposals/{id}", proposalHandler.UpdateProposal)
	mux.HandleFunc("DELETE /api/proposals/{id}", proposalHandler.DeleteProposal)

	// Section routes (reads go through GET /api/proposals/{id})
	mux.HandleFunc("POST /api/sections", sectionHandler.SaveSection)
	mux.HandleFunc("DELETE /api/sections/{id}", sectionHandler.DeleteSection)

	// Section type catalog
	mux.HandleFunc("GET /api/section-types", catalogHandler.ListSectionTypes)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server, shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
