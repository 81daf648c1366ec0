package generation

import (
	"context"

	"github.com/haru235/flashcard-saas/internal/domain"
)

// GeneratedSet is the structured result of turning raw text into flashcards:
// a suggested set name and description plus the generated front/back pairs.
type GeneratedSet struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Flashcards  []domain.Flashcard `json:"flashcards"`
}

// Generator defines the interface for generating flashcards from raw text.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Generator interface {
	// GenerateSet creates a flashcard set based on the provided text.
	// It returns the generated set or an error if generation fails
	// (see errors.go for the specific error types).
	GenerateSet(ctx context.Context, text string) (*GeneratedSet, error)
}
