package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haru235/flashcard-saas/internal/api"
	"github.com/haru235/flashcard-saas/internal/payment"
)

// mockCheckoutService is a function-field mock of payment.CheckoutService.
type mockCheckoutService struct {
	createSessionFn   func(ctx context.Context, planToken, origin string) (json.RawMessage, error)
	retrieveSessionFn func(ctx context.Context, sessionID string) (json.RawMessage, error)
}

func (m *mockCheckoutService) CreateSession(
	ctx context.Context,
	planToken, origin string,
) (json.RawMessage, error) {
	return m.createSessionFn(ctx, planToken, origin)
}

func (m *mockCheckoutService) RetrieveSession(
	ctx context.Context,
	sessionID string,
) (json.RawMessage, error) {
	return m.retrieveSessionFn(ctx, sessionID)
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	sessionJSON := `{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123"}`

	mockService := &mockCheckoutService{
		createSessionFn: func(_ context.Context, planToken, origin string) (json.RawMessage, error) {
			assert.Equal(t, "pro", planToken)
			assert.Equal(t, "https://app.example.com", origin)
			return json.RawMessage(sessionJSON), nil
		},
	}

	handler := api.NewCheckoutHandler(mockService)

	r := httptest.NewRequest(http.MethodPost, "/api/checkout_sessions", nil)
	r.Header.Set("type", "pro")
	r.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()

	handler.CreateSession(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, sessionJSON, w.Body.String())
}

func TestCreateSession_NoTypeHeader(t *testing.T) {
	t.Parallel()

	mockService := &mockCheckoutService{
		createSessionFn: func(_ context.Context, planToken, _ string) (json.RawMessage, error) {
			// Absent header arrives as the empty string and selects basic.
			assert.Equal(t, "", planToken)
			return json.RawMessage(`{"id":"cs_test_basic"}`), nil
		},
	}

	handler := api.NewCheckoutHandler(mockService)

	r := httptest.NewRequest(http.MethodPost, "/api/checkout_sessions", nil)
	w := httptest.NewRecorder()

	handler.CreateSession(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateSession_ProcessorError(t *testing.T) {
	t.Parallel()

	mockService := &mockCheckoutService{
		createSessionFn: func(_ context.Context, _, _ string) (json.RawMessage, error) {
			return nil, payment.NewProcessorError("No such plan: price_123", nil)
		},
	}

	handler := api.NewCheckoutHandler(mockService)

	r := httptest.NewRequest(http.MethodPost, "/api/checkout_sessions", nil)
	w := httptest.NewRecorder()

	handler.CreateSession(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No such plan: price_123", resp.Error.Message)
}

func TestRetrieveSession(t *testing.T) {
	t.Parallel()

	sessionJSON := `{"id":"cs_test_123","payment_status":"paid"}`

	mockService := &mockCheckoutService{
		retrieveSessionFn: func(_ context.Context, sessionID string) (json.RawMessage, error) {
			assert.Equal(t, "cs_test_123", sessionID)
			return json.RawMessage(sessionJSON), nil
		},
	}

	handler := api.NewCheckoutHandler(mockService)

	r := httptest.NewRequest(http.MethodGet, "/api/checkout_sessions?session_id=cs_test_123", nil)
	w := httptest.NewRecorder()

	handler.RetrieveSession(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, sessionJSON, w.Body.String())
}

func TestRetrieveSession_MissingSessionID(t *testing.T) {
	t.Parallel()

	handler := api.NewCheckoutHandler(&mockCheckoutService{})

	r := httptest.NewRequest(http.MethodGet, "/api/checkout_sessions", nil)
	w := httptest.NewRecorder()

	handler.RetrieveSession(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session_id is required", resp.Error.Message)
}

func TestRetrieveSession_ProcessorError(t *testing.T) {
	t.Parallel()

	mockService := &mockCheckoutService{
		retrieveSessionFn: func(_ context.Context, _ string) (json.RawMessage, error) {
			return nil, payment.NewProcessorError("No such checkout session: cs_missing", nil)
		},
	}

	handler := api.NewCheckoutHandler(mockService)

	r := httptest.NewRequest(http.MethodGet, "/api/checkout_sessions?session_id=cs_missing", nil)
	w := httptest.NewRecorder()

	handler.RetrieveSession(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "No such checkout session: cs_missing")
}
