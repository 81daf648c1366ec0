// Package gemini implements the generation interface using Google's Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	Text string
}

// responseSchema represents the expected structure of the Gemini API response
type responseSchema struct {
	// Name is the suggested name for the flashcard set
	Name string `json:"name"`

	// Description is the suggested description for the flashcard set
	Description string `json:"description"`

	// Flashcards is the array of cards generated from the text
	Flashcards []cardSchema `json:"flashcards"`
}

// cardSchema represents a single flashcard in the API response
type cardSchema struct {
	// Front is the question or prompt side of the flashcard
	Front string `json:"front"`

	// Back is the answer side of the flashcard
	Back string `json:"back"`
}
