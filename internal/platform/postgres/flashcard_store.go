package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/haru235/flashcard-saas/internal/domain"
	"github.com/haru235/flashcard-saas/internal/platform/logger"
	"github.com/haru235/flashcard-saas/internal/store"
)

// PostgreSQL error codes
const pgForeignKeyViolationCode = "23503"

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
//
// Set summaries live in an append-only table ordered by a bigserial
// position column, mirroring the ordered flashcardSets sequence the web
// client keeps under each user record. Card collections are one row per
// (user_id, set_name) with the card list as a JSONB document.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// ListSummaries implements store.FlashcardStore.ListSummaries
// It returns the user's set summaries in insertion order. A user with no
// saved sets gets an empty slice.
func (s *PostgresFlashcardStore) ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.SetSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT name, description, size
		FROM flashcard_set_summaries
		WHERE user_id = $1
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list set summaries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	summaries := []domain.SetSummary{}
	for rows.Next() {
		var summary domain.SetSummary
		if err := rows.Scan(&summary.Name, &summary.Description, &summary.Size); err != nil {
			log.Error("failed to scan set summary",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		log.Error("row iteration failed while listing set summaries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("set summaries listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(summaries)))
	return summaries, nil
}

// GetCollection implements store.FlashcardStore.GetCollection
// It retrieves the card collection stored at (userID, setName).
// Returns store.ErrSetNotFound if no collection exists at that key.
func (s *PostgresFlashcardStore) GetCollection(
	ctx context.Context,
	userID uuid.UUID,
	setName string,
) (*domain.CardCollection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT cards
		FROM flashcard_collections
		WHERE user_id = $1 AND set_name = $2
	`

	var cardsJSON []byte
	err := s.db.QueryRowContext(ctx, query, userID, setName).Scan(&cardsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard set not found",
				slog.String("user_id", userID.String()),
				slog.String("set_name", setName))
			return nil, store.ErrSetNotFound
		}
		log.Error("failed to get card collection",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("set_name", setName))
		return nil, err
	}

	var cards []domain.Flashcard
	if err := json.Unmarshal(cardsJSON, &cards); err != nil {
		log.Error("failed to decode stored card list",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("set_name", setName))
		return nil, fmt.Errorf("%w: stored card list is not valid JSON: %v",
			store.ErrInvalidEntity, err)
	}

	return &domain.CardCollection{
		UserID:     userID,
		SetName:    setName,
		Flashcards: cards,
	}, nil
}

// AppendSummary implements store.FlashcardStore.AppendSummary
// It appends a summary to the user's set list. The table is append-only and
// carries no uniqueness constraint on (user_id, name): saving the same name
// twice yields two entries, matching the behavior of the web client.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresFlashcardStore) AppendSummary(
	ctx context.Context,
	userID uuid.UUID,
	summary domain.SetSummary,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := summary.Validate(); err != nil {
		log.Warn("set summary validation failed during append",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	query := `
		INSERT INTO flashcard_set_summaries (user_id, name, description, size)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, userID, summary.Name, summary.Description, summary.Size)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("foreign key violation during summary append",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, userID)
		}

		log.Error("failed to append set summary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("set_name", summary.Name))
		return err
	}

	log.Info("set summary appended",
		slog.String("user_id", userID.String()),
		slog.String("set_name", summary.Name),
		slog.Int("size", summary.Size))
	return nil
}

// UpsertCollection implements store.FlashcardStore.UpsertCollection
// It writes the card collection at its key, silently replacing any
// collection already stored there.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresFlashcardStore) UpsertCollection(ctx context.Context, collection *domain.CardCollection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		log.Warn("card collection validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", collection.UserID.String()))
		return err
	}

	cards := collection.Flashcards
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	cardsJSON, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("%w: failed to encode card list: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcard_collections (user_id, set_name, cards, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, set_name)
		DO UPDATE SET cards = EXCLUDED.cards, updated_at = now()
	`
	_, err = s.db.ExecContext(ctx, query, collection.UserID, collection.SetName, cardsJSON)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("foreign key violation during collection upsert",
				slog.String("error", err.Error()),
				slog.String("user_id", collection.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, collection.UserID)
		}

		log.Error("failed to upsert card collection",
			slog.String("error", err.Error()),
			slog.String("user_id", collection.UserID.String()),
			slog.String("set_name", collection.SetName))
		return err
	}

	log.Info("card collection written",
		slog.String("user_id", collection.UserID.String()),
		slog.String("set_name", collection.SetName),
		slog.Int("card_count", len(collection.Flashcards)))
	return nil
}

// WithTx implements store.FlashcardStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}
