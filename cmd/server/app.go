package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/haru235/flashcard-saas/internal/config"
	"github.com/haru235/flashcard-saas/internal/generation"
	"github.com/haru235/flashcard-saas/internal/payment"
	"github.com/haru235/flashcard-saas/internal/platform/gemini"
	"github.com/haru235/flashcard-saas/internal/platform/postgres"
	"github.com/haru235/flashcard-saas/internal/platform/stripecheckout"
	"github.com/haru235/flashcard-saas/internal/service"
	"github.com/haru235/flashcard-saas/internal/service/auth"
	"github.com/haru235/flashcard-saas/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore      store.UserStore
	flashcardStore store.FlashcardStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	generator        generation.Generator
	flashcardService service.FlashcardService
	checkoutService  payment.CheckoutService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
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

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hasher
	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)

	// Create the LLM generator service
	app.generator, err = gemini.NewGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully")

	// Initialize flashcard service
	app.flashcardService, err = service.NewFlashcardService(app.flashcardStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	// Initialize checkout service
	app.checkoutService, err = stripecheckout.New(cfg.Stripe, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout service: %w", err)
	}
	logger.Info("Checkout service initialized")

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
