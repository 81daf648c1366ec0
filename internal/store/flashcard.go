package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/haru235/flashcard-saas/internal/domain"
)

// FlashcardStore defines the interface for flashcard set persistence.
//
// A user's library is an ordered sequence of set summaries plus one card
// collection per set name. The summary list is append-only: AppendSummary
// never dedups, so a name saved twice yields two summary entries while
// UpsertCollection keeps a single collection at that key. SaveSet in the
// service layer wires both into one transaction.
type FlashcardStore interface {
	// ListSummaries returns the user's set summaries in insertion order.
	// A user with no saved sets gets an empty slice, never an error.
	ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.SetSummary, error)

	// GetCollection retrieves the card collection stored at (userID, setName).
	// Returns ErrSetNotFound if no collection exists at that key.
	GetCollection(ctx context.Context, userID uuid.UUID, setName string) (*domain.CardCollection, error)

	// AppendSummary appends a summary to the user's set list.
	// Returns validation errors from the domain SetSummary if data is invalid.
	AppendSummary(ctx context.Context, userID uuid.UUID, summary domain.SetSummary) error

	// UpsertCollection writes the card collection at (collection.UserID,
	// collection.SetName), replacing any collection already stored there.
	UpsertCollection(ctx context.Context, collection *domain.CardCollection) error

	// WithTx returns a new FlashcardStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) FlashcardStore
}
