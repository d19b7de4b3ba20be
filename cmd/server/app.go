package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wortwise/wortwise-api/internal/config"
	"github.com/wortwise/wortwise-api/internal/enrichment"
	"github.com/wortwise/wortwise-api/internal/platform/dictionaryapi"
	"github.com/wortwise/wortwise-api/internal/platform/gemini"
	"github.com/wortwise/wortwise-api/internal/platform/libretranslate"
	"github.com/wortwise/wortwise-api/internal/platform/postgres"
	"github.com/wortwise/wortwise-api/internal/service"
	"github.com/wortwise/wortwise-api/internal/service/auth"
	"github.com/wortwise/wortwise-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore store.UserStore
	deckStore store.DeckStore
	cardStore store.CardStore

	// Auth
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	// Services
	userService *service.UserService
	deckService *service.DeckService
	cardService *service.CardService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before application wiring: configuration, logger and database.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordVerifier = &auth.BcryptVerifier{}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewUserStore(db, logger)
	app.deckStore = postgres.NewDeckStore(db, logger)
	app.cardStore = postgres.NewCardStore(db, logger)

	translator, err := setupTranslator(ctx, cfg.Translation, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translator: %w", err)
	}
	lookup := dictionaryapi.NewClient(cfg.Dictionary.BaseURL, logger)
	fetcher := enrichment.NewFetcher(translator, lookup, logger)

	txRunner := store.NewTxRunner(db)

	app.userService = service.NewUserService(
		txRunner, app.userStore, app.deckStore, app.cardStore, hasher, logger)
	app.deckService = service.NewDeckService(
		txRunner, app.deckStore, app.cardStore, logger)
	app.cardService = service.NewCardService(
		txRunner, app.cardStore, app.deckStore, fetcher, logger)

	logger.Info("application initialized")
	return app, nil
}

// setupTranslator selects the translation backend from configuration.
func setupTranslator(
	ctx context.Context,
	cfg config.TranslationConfig,
	logger *slog.Logger,
) (enrichment.Translator, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewTranslator(ctx, logger, cfg.GeminiAPIKey, cfg.GeminiModelName)
	case "libretranslate":
		return libretranslate.NewClient(cfg.LibreTranslateURL, cfg.LibreTranslateKey, logger), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
