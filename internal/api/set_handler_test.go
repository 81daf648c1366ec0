package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haru235/flashcard-saas/internal/api"
	"github.com/haru235/flashcard-saas/internal/api/shared"
	"github.com/haru235/flashcard-saas/internal/domain"
	"github.com/haru235/flashcard-saas/internal/store"
)

// mockFlashcardService is a function-field mock of service.FlashcardService.
type mockFlashcardService struct {
	listSetsFn func(ctx context.Context, userID uuid.UUID) ([]domain.SetSummary, error)
	getSetFn   func(ctx context.Context, userID uuid.UUID, setName string) (*domain.CardCollection, error)
	saveSetFn  func(ctx context.Context, userID uuid.UUID, setName, description string, cards []domain.Flashcard) error
}

func (m *mockFlashcardService) ListSets(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.SetSummary, error) {
	return m.listSetsFn(ctx, userID)
}

func (m *mockFlashcardService) GetSet(
	ctx context.Context,
	userID uuid.UUID,
	setName string,
) (*domain.CardCollection, error) {
	return m.getSetFn(ctx, userID, setName)
}

func (m *mockFlashcardService) SaveSet(
	ctx context.Context,
	userID uuid.UUID,
	setName, description string,
	cards []domain.Flashcard,
) error {
	return m.saveSetFn(ctx, userID, setName, description, cards)
}

// withUserID attaches an authenticated user ID to the request context the
// way the auth middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// setRouter mounts the handler on the routes it serves in production so
// URL parameters resolve.
func setRouter(handler *api.SetHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/sets", handler.ListSets)
	r.Get("/api/sets/{name}", handler.GetSet)
	r.Post("/api/sets", handler.SaveSet)
	return r
}

func TestListSets_Handler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	summaries := []domain.SetSummary{
		{Name: "biology", Description: "Cell structure", Size: 10},
		{Name: "spanish", Description: "Greetings", Size: 4},
	}

	mockService := &mockFlashcardService{
		listSetsFn: func(_ context.Context, gotID uuid.UUID) ([]domain.SetSummary, error) {
			assert.Equal(t, userID, gotID)
			return summaries, nil
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	r := withUserID(httptest.NewRequest(http.MethodGet, "/api/sets", nil), userID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.SetListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, summaries, resp.Sets)
}

func TestListSets_Empty(t *testing.T) {
	t.Parallel()

	mockService := &mockFlashcardService{
		listSetsFn: func(_ context.Context, _ uuid.UUID) ([]domain.SetSummary, error) {
			return []domain.SetSummary{}, nil
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	r := withUserID(httptest.NewRequest(http.MethodGet, "/api/sets", nil), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sets":[]}`, w.Body.String())
}

func TestListSets_Unauthenticated(t *testing.T) {
	t.Parallel()

	router := setRouter(api.NewSetHandler(&mockFlashcardService{}))

	r := httptest.NewRequest(http.MethodGet, "/api/sets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSet_Handler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	collection := &domain.CardCollection{
		UserID:  userID,
		SetName: "biology",
		Flashcards: []domain.Flashcard{
			{Front: "mitochondria", Back: "powerhouse of the cell"},
		},
	}

	mockService := &mockFlashcardService{
		getSetFn: func(_ context.Context, gotID uuid.UUID, setName string) (*domain.CardCollection, error) {
			assert.Equal(t, userID, gotID)
			assert.Equal(t, "biology", setName)
			return collection, nil
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	r := withUserID(httptest.NewRequest(http.MethodGet, "/api/sets/biology", nil), userID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.SetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "biology", resp.Name)
	assert.Equal(t, collection.Flashcards, resp.Flashcards)
}

func TestGetSet_EscapedName(t *testing.T) {
	t.Parallel()

	mockService := &mockFlashcardService{
		getSetFn: func(_ context.Context, _ uuid.UUID, setName string) (*domain.CardCollection, error) {
			assert.Equal(t, "world history", setName)
			return &domain.CardCollection{SetName: setName, Flashcards: []domain.Flashcard{}}, nil
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	r := withUserID(httptest.NewRequest(http.MethodGet, "/api/sets/world%20history", nil), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSet_NotFound_Handler(t *testing.T) {
	t.Parallel()

	mockService := &mockFlashcardService{
		getSetFn: func(_ context.Context, _ uuid.UUID, _ string) (*domain.CardCollection, error) {
			return nil, store.ErrSetNotFound
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	r := withUserID(httptest.NewRequest(http.MethodGet, "/api/sets/missing", nil), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Flashcard set not found")
}

func TestSaveSet_Handler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var savedName, savedDescription string
	var savedCards []domain.Flashcard

	mockService := &mockFlashcardService{
		saveSetFn: func(_ context.Context, gotID uuid.UUID, setName, description string, cards []domain.Flashcard) error {
			assert.Equal(t, userID, gotID)
			savedName = setName
			savedDescription = description
			savedCards = cards
			return nil
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	body := `{
		"name": "biology",
		"description": "Cell structure",
		"flashcards": [{"front": "mitochondria", "back": "powerhouse of the cell"}]
	}`
	r := withUserID(
		httptest.NewRequest(http.MethodPost, "/api/sets", strings.NewReader(body)),
		userID,
	)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "biology", savedName)
	assert.Equal(t, "Cell structure", savedDescription)
	require.Len(t, savedCards, 1)

	var resp domain.SetSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "biology", resp.Name)
	assert.Equal(t, 1, resp.Size)
}

func TestSaveSet_MissingName(t *testing.T) {
	t.Parallel()

	mockService := &mockFlashcardService{
		saveSetFn: func(_ context.Context, _ uuid.UUID, _, _ string, _ []domain.Flashcard) error {
			t.Fatal("service should not be called")
			return nil
		},
	}

	router := setRouter(api.NewSetHandler(mockService))

	body := `{"description": "no name", "flashcards": []}`
	r := withUserID(
		httptest.NewRequest(http.MethodPost, "/api/sets", strings.NewReader(body)),
		uuid.New(),
	)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveSet_InvalidJSON(t *testing.T) {
	t.Parallel()

	router := setRouter(api.NewSetHandler(&mockFlashcardService{}))

	r := withUserID(
		httptest.NewRequest(http.MethodPost, "/api/sets", strings.NewReader("{not json")),
		uuid.New(),
	)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request format")
}
