// Package main implements the HTTP API server for CookPro.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/cookpro/cookpro/internal/catalog"
	"github.com/cookpro/cookpro/internal/comments"
	apihttp "github.com/cookpro/cookpro/internal/http"
	"github.com/cookpro/cookpro/internal/kv"
	"github.com/cookpro/cookpro/internal/libs/config"
	"github.com/cookpro/cookpro/internal/libs/obs"
	"github.com/cookpro/cookpro/internal/search"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	// Load the recipe catalog and build every search index before the
	// first query is served
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("failed to load catalog")
	}
	logger.Info().Int("recipes", cat.Len()).Msg("catalog loaded")

	engine := search.New(cat, obs.Logger("search"))
	defer func() { _ = engine.Close() }()

	// Pick the persistence backend: Postgres when configured, local files
	// otherwise
	store, err := initKV(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer func() { _ = store.Close() }()

	commentStore := comments.NewStore(store, obs.Logger("comments"))

	// Create HTTP handler
	handler := apihttp.NewHandler(cat, engine, commentStore, logger)

	// Setup router
	r := setupRouter(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	logger.Info().Str("addr", addr).Msg("starting API server")

	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func setupRouter(h *apihttp.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	r.Get("/health", h.HandleHealth)
	r.Post("/search", h.HandleSearch)
	r.Get("/recipes/{slug}", h.HandleGetRecipe)
	r.Get("/recipes/{slug}/comments", h.HandleListComments)
	r.Get("/recipes/{slug}/comments/top", h.HandleTopToday)
	r.Post("/comments", h.HandleCreateComment)
	r.Post("/comments/{id}/like", h.HandleLikeComment)
	r.Get("/comments/top", h.HandleGlobalTopToday)
	r.Get("/prefs/top-comments", h.HandleGetTopCommentsPref)
	r.Put("/prefs/top-comments", h.HandleSetTopCommentsPref)

	return r
}

// initKV creates the key-value backend for the comment store
func initKV(cfg *config.Config, logger zerolog.Logger) (kv.Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Info().Str("data_dir", cfg.DataDir).Msg("using file-backed store")
		return kv.NewFile(cfg.DataDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("using Postgres-backed store")
	return kv.NewPostgres(ctx, pool)
}
