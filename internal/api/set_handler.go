package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/haru235/flashcard-saas/internal/api/middleware"
	"github.com/haru235/flashcard-saas/internal/api/shared"
	"github.com/haru235/flashcard-saas/internal/domain"
	"github.com/haru235/flashcard-saas/internal/service"
	"github.com/haru235/flashcard-saas/internal/store"
)

// SetHandler handles flashcard-set API requests: listing a user's sets,
// fetching one set's cards, and saving a new set.
type SetHandler struct {
	flashcardService service.FlashcardService
}

// NewSetHandler creates a new SetHandler with the given dependencies.
func NewSetHandler(flashcardService service.FlashcardService) *SetHandler {
	return &SetHandler{
		flashcardService: flashcardService,
	}
}

// ListSets handles GET /api/sets.
// Responds with the user's set summaries in the order they were saved.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	summaries, err := h.flashcardService.ListSets(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SetListResponse{Sets: summaries})
}

// GetSet handles GET /api/sets/{name}.
// Responds with the card collection saved under the given name.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	setName := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(setName); err == nil {
		setName = unescaped
	}
	if setName == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Set name is required")
		return
	}

	collection, err := h.flashcardService.GetSet(r.Context(), userID, setName)
	if err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Flashcard set not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SetResponse{
		Name:       collection.SetName,
		Flashcards: collection.Flashcards,
	})
}

// SaveSet handles POST /api/sets.
// Saves the named set for the user and responds 201 on success. Saving a
// name that already exists appends a new summary entry and replaces the
// stored cards.
func (h *SetHandler) SaveSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.flashcardService.SaveSet(r.Context(), userID, req.Name, req.Description, req.Flashcards)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, domain.SetSummary{
		Name:        req.Name,
		Description: req.Description,
		Size:        len(req.Flashcards),
	})
}
