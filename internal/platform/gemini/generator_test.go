package gemini

import (
	"context"
	"log/slog"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haru235/flashcard-saas/internal/config"
	"github.com/haru235/flashcard-saas/internal/generation"
)

// newTestGenerator builds a Generator without a live API client, enough to
// exercise prompt rendering and response parsing.
func newTestGenerator(t *testing.T) *Generator {
	t.Helper()

	tmpl, err := template.New("flashcards").Parse(promptTemplateText)
	require.NoError(t, err)

	return &Generator{
		logger:         slog.Default(),
		config:         config.LLMConfig{ModelName: "gemini-2.0-flash", MaxRetries: 0},
		promptTemplate: tmpl,
		model:          "gemini-2.0-flash",
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewGenerator(ctx, nil, config.LLMConfig{GeminiAPIKey: "key", ModelName: "m"})
		require.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewGenerator(ctx, logger, config.LLMConfig{ModelName: "m"})
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing model name", func(t *testing.T) {
		_, err := NewGenerator(ctx, logger, config.LLMConfig{GeminiAPIKey: "key"})
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestCreatePrompt(t *testing.T) {
	g := newTestGenerator(t)

	t.Run("renders text into template", func(t *testing.T) {
		prompt, err := g.createPrompt("Paris is the capital of France.")
		require.NoError(t, err)
		assert.Contains(t, prompt, "Paris is the capital of France.")
		assert.Contains(t, prompt, "flashcards")
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := g.createPrompt("")
		assert.ErrorIs(t, err, generation.ErrEmptyText)
	})
}

func TestParseResponse(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	t.Run("valid response", func(t *testing.T) {
		resp := &responseSchema{
			Name:        "French Geography",
			Description: "Capitals and rivers of France",
			Flashcards: []cardSchema{
				{Front: "Capital of France?", Back: "Paris"},
				{Front: "Longest river in France?", Back: "The Loire"},
			},
		}

		set, err := g.parseResponse(ctx, resp)
		require.NoError(t, err)
		assert.Equal(t, "French Geography", set.Name)
		assert.Equal(t, "Capitals and rivers of France", set.Description)
		require.Len(t, set.Flashcards, 2)
		assert.Equal(t, "Paris", set.Flashcards[0].Back)
	})

	tests := []struct {
		name string
		resp *responseSchema
	}{
		{name: "nil response", resp: nil},
		{
			name: "no cards",
			resp: &responseSchema{Name: "Empty"},
		},
		{
			name: "missing set name",
			resp: &responseSchema{
				Flashcards: []cardSchema{{Front: "f", Back: "b"}},
			},
		},
		{
			name: "card missing front",
			resp: &responseSchema{
				Name:       "Set",
				Flashcards: []cardSchema{{Back: "b"}},
			},
		},
		{
			name: "card missing back",
			resp: &responseSchema{
				Name:       "Set",
				Flashcards: []cardSchema{{Front: "f"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.parseResponse(ctx, tc.resp)
			assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		})
	}
}
