package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/haru235/flashcard-saas/internal/domain"
	"github.com/haru235/flashcard-saas/internal/platform/logger"
	"github.com/haru235/flashcard-saas/internal/store"
)

// FlashcardServiceError is a custom error type for flashcard service errors.
type FlashcardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for FlashcardServiceError.
func (e *FlashcardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flashcard service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("flashcard service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FlashcardServiceError) Unwrap() error {
	return e.Err
}

// NewFlashcardServiceError creates a new FlashcardServiceError.
func NewFlashcardServiceError(operation, message string, err error) *FlashcardServiceError {
	return &FlashcardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// FlashcardService provides operations over a user's flashcard-set library.
type FlashcardService interface {
	// ListSets returns the summaries of the user's saved sets in the order
	// they were saved. A user with no sets gets an empty slice.
	ListSets(ctx context.Context, userID uuid.UUID) ([]domain.SetSummary, error)

	// GetSet retrieves the card collection saved under the given set name.
	GetSet(ctx context.Context, userID uuid.UUID, setName string) (*domain.CardCollection, error)

	// SaveSet persists a named set of flashcards: it appends a summary entry
	// to the user's set list and writes the card collection, atomically.
	// The summary size is always recomputed from the saved cards. Saving a
	// name that already exists appends a second summary entry while the
	// collection at that name is replaced.
	SaveSet(
		ctx context.Context,
		userID uuid.UUID,
		setName, description string,
		cards []domain.Flashcard,
	) error
}

// flashcardServiceImpl implements the FlashcardService interface
type flashcardServiceImpl struct {
	flashcardStore store.FlashcardStore
	db             *sql.DB
	logger         *slog.Logger
}

// NewFlashcardService creates a new FlashcardService.
// The db handle is used to open transactions for SaveSet.
// It returns an error if any of the required dependencies are nil.
func NewFlashcardService(
	flashcardStore store.FlashcardStore,
	db *sql.DB,
	logger *slog.Logger,
) (FlashcardService, error) {
	if flashcardStore == nil {
		return nil, domain.NewValidationError("flashcardStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardServiceImpl{
		flashcardStore: flashcardStore,
		db:             db,
		logger:         logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

// ListSets implements FlashcardService.ListSets
func (s *flashcardServiceImpl) ListSets(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.SetSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	summaries, err := s.flashcardStore.ListSummaries(ctx, userID)
	if err != nil {
		log.Error("failed to list flashcard sets",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewFlashcardServiceError("list_sets", "failed to list sets", err)
	}

	log.Debug("listed flashcard sets",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(summaries)))
	return summaries, nil
}

// GetSet implements FlashcardService.GetSet
func (s *flashcardServiceImpl) GetSet(
	ctx context.Context,
	userID uuid.UUID,
	setName string,
) (*domain.CardCollection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	collection, err := s.flashcardStore.GetCollection(ctx, userID, setName)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("flashcard set not found",
				slog.String("user_id", userID.String()),
				slog.String("set_name", setName))
			return nil, NewFlashcardServiceError("get_set", "set not found", store.ErrSetNotFound)
		}

		log.Error("failed to retrieve flashcard set",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("set_name", setName))
		return nil, NewFlashcardServiceError("get_set", "failed to retrieve set", err)
	}

	return collection, nil
}

// SaveSet implements FlashcardService.SaveSet
// The summary append and the collection write happen in one transaction, so a
// reader never observes a summary without its cards or vice versa.
func (s *flashcardServiceImpl) SaveSet(
	ctx context.Context,
	userID uuid.UUID,
	setName, description string,
	cards []domain.Flashcard,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	collection, err := domain.NewCardCollection(userID, setName, cards)
	if err != nil {
		log.Warn("invalid flashcard set rejected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("set_name", setName))
		return NewFlashcardServiceError("save_set", "invalid set", err)
	}

	summary := domain.SetSummary{
		Name:        setName,
		Description: description,
		Size:        len(collection.Flashcards),
	}

	log.Debug("saving flashcard set in transaction",
		slog.String("user_id", userID.String()),
		slog.String("set_name", setName),
		slog.Int("card_count", summary.Size))

	err = store.RunInTransaction(
		ctx,
		s.db,
		func(ctx context.Context, tx *sql.Tx) error {
			txStore := s.flashcardStore.WithTx(tx)

			if err := txStore.AppendSummary(ctx, userID, summary); err != nil {
				log.Error("failed to append set summary in transaction",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()),
					slog.String("set_name", setName))
				return NewFlashcardServiceError("save_set", "failed to save summary", err)
			}

			if err := txStore.UpsertCollection(ctx, collection); err != nil {
				log.Error("failed to write card collection in transaction",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()),
					slog.String("set_name", setName))
				return NewFlashcardServiceError("save_set", "failed to save cards", err)
			}

			return nil
		},
	)
	if err != nil {
		return err
	}

	log.Info("flashcard set saved",
		slog.String("user_id", userID.String()),
		slog.String("set_name", setName),
		slog.Int("card_count", summary.Size))
	return nil
}
