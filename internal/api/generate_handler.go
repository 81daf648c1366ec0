package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/haru235/flashcard-saas/internal/api/middleware"
	"github.com/haru235/flashcard-saas/internal/api/shared"
	"github.com/haru235/flashcard-saas/internal/generation"
)

// maxGenerateBodyBytes caps the raw text accepted for generation.
const maxGenerateBodyBytes = 1 << 20 // 1 MiB

// GenerateHandler handles flashcard generation requests.
type GenerateHandler struct {
	generator generation.Generator
}

// NewGenerateHandler creates a new GenerateHandler with the given dependencies.
func NewGenerateHandler(generator generation.Generator) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
	}
}

// Generate handles POST /api/generate.
// The request body is the raw text to turn into flashcards, unframed. The
// generated set is returned verbatim and nothing is persisted; saving is a
// separate, explicit POST /api/sets.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxGenerateBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read request body")
		return
	}

	text := string(body)
	if strings.TrimSpace(text) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Text is required")
		return
	}

	set, err := h.generator.GenerateSet(r.Context(), text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, set)
}
