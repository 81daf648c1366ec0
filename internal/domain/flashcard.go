package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for flashcard sets.
var (
	ErrEmptySetName   = errors.New("set name cannot be empty")
	ErrEmptySetUserID = errors.New("set user ID cannot be empty")
	ErrEmptyCardFront = errors.New("card front cannot be empty")
	ErrEmptyCardBack  = errors.New("card back cannot be empty")
)

// Flashcard is a single front/back pair. Cards carry no identity of their
// own; a card is addressed by its position within its collection.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Validate checks that both sides of the card are present.
func (f Flashcard) Validate() error {
	if f.Front == "" {
		return ErrEmptyCardFront
	}
	if f.Back == "" {
		return ErrEmptyCardBack
	}
	return nil
}

// SetSummary is the lightweight per-set metadata listed under a user:
// the set's name, its description, and the number of cards it held when
// it was saved.
//
// Name doubles as the lookup key for the corresponding card collection.
// Nothing enforces uniqueness: saving a second set under an existing name
// appends another summary while overwriting the one collection stored at
// that key. That behavior is deliberate until a product decision settles
// on update-in-place or reject-duplicate.
type SetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Size        int    `json:"size"`
}

// Validate checks the summary's fields. Only fully-empty names are
// rejected; whitespace-only names are accepted and used verbatim as keys.
func (s SetSummary) Validate() error {
	if s.Name == "" {
		return ErrEmptySetName
	}
	return nil
}

// CardCollection is the full ordered card list for one named set,
// keyed by (user, set name).
type CardCollection struct {
	UserID     uuid.UUID   `json:"user_id"`
	SetName    string      `json:"set_name"`
	Flashcards []Flashcard `json:"flashcards"`
}

// NewCardCollection builds a collection after validating its key fields.
// An empty card list is allowed; a save stores whatever the generator
// produced, including nothing.
func NewCardCollection(userID uuid.UUID, setName string, cards []Flashcard) (*CardCollection, error) {
	collection := &CardCollection{
		UserID:     userID,
		SetName:    setName,
		Flashcards: cards,
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks the collection's key fields.
func (c *CardCollection) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrEmptySetUserID
	}
	if c.SetName == "" {
		return ErrEmptySetName
	}
	return nil
}
