package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haru235/flashcard-saas/internal/api"
	"github.com/haru235/flashcard-saas/internal/config"
	"github.com/haru235/flashcard-saas/internal/domain"
	"github.com/haru235/flashcard-saas/internal/service/auth"
	"github.com/haru235/flashcard-saas/internal/store"
)

// mockUserStore is a function-field mock of store.UserStore.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}

// stubJWTService issues fixed tokens.
type stubJWTService struct {
	validateRefreshFn func(ctx context.Context, token string) (*auth.Claims, error)
}

func (s *stubJWTService) GenerateToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "access-token", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

func (s *stubJWTService) GenerateRefreshToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "refresh-token", nil
}

func (s *stubJWTService) ValidateRefreshToken(
	ctx context.Context,
	token string,
) (*auth.Claims, error) {
	if s.validateRefreshFn != nil {
		return s.validateRefreshFn(ctx, token)
	}
	return nil, auth.ErrInvalidRefreshToken
}

// stubHasher avoids real bcrypt work in handler tests.
type stubHasher struct{}

func (stubHasher) Hash(_ context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Compare(_ context.Context, hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

func newAuthHandler(userStore store.UserStore, jwt auth.JWTService) *api.AuthHandler {
	return api.NewAuthHandler(userStore, jwt, stubHasher{}, config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-at-least-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	var created *domain.User
	userStore := &mockUserStore{
		createFn: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}

	handler := newAuthHandler(userStore, &stubJWTService{})

	body := `{"email": "alice@example.com", "password": "long-enough-password"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "hashed:long-enough-password", created.HashedPassword)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.UserID)
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.NotEmpty(t, resp.ExpiresAt)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid email", body: `{"email": "not-an-email", "password": "long-enough-password"}`},
		{name: "short password", body: `{"email": "a@example.com", "password": "short"}`},
		{name: "missing fields", body: `{}`},
		{name: "malformed json", body: `{"email":`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userStore := &mockUserStore{
				createFn: func(_ context.Context, _ *domain.User) error {
					t.Fatal("store should not be called")
					return nil
				},
			}
			handler := newAuthHandler(userStore, &stubJWTService{})

			r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegister_EmailExists(t *testing.T) {
	t.Parallel()

	userStore := &mockUserStore{
		createFn: func(_ context.Context, _ *domain.User) error {
			return store.ErrEmailExists
		},
	}
	handler := newAuthHandler(userStore, &stubJWTService{})

	body := `{"email": "taken@example.com", "password": "long-enough-password"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	userStore := &mockUserStore{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return &domain.User{
				ID:             userID,
				Email:          email,
				HashedPassword: "hashed:correct-password",
			}, nil
		},
	}
	handler := newAuthHandler(userStore, &stubJWTService{})

	body := `{"email": "alice@example.com", "password": "correct-password"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "access-token", resp.AccessToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
		password     string
	}{
		{
			name: "unknown email",
			getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
			password: "whatever-password",
		},
		{
			name: "wrong password",
			getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
				return &domain.User{
					ID:             uuid.New(),
					Email:          email,
					HashedPassword: "hashed:the-real-password",
				}, nil
			},
			password: "wrong-password",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := newAuthHandler(&mockUserStore{getByEmailFn: tt.getByEmailFn}, &stubJWTService{})

			body := `{"email": "alice@example.com", "password": "` + tt.password + `"}`
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			// Unknown email and wrong password return identical responses.
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid credentials")
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwt := &stubJWTService{
		validateRefreshFn: func(_ context.Context, token string) (*auth.Claims, error) {
			assert.Equal(t, "valid-refresh-token", token)
			return &auth.Claims{UserID: userID, TokenType: "refresh"}, nil
		},
	}
	handler := newAuthHandler(&mockUserStore{}, jwt)

	body := `{"refresh_token": "valid-refresh-token"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.RefreshToken(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.RefreshTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.NotEmpty(t, resp.ExpiresAt)
}

func TestRefreshToken_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "expired", err: auth.ErrExpiredRefreshToken},
		{name: "invalid", err: auth.ErrInvalidRefreshToken},
		{name: "wrong type", err: auth.ErrWrongTokenType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwt := &stubJWTService{
				validateRefreshFn: func(_ context.Context, _ string) (*auth.Claims, error) {
					return nil, tt.err
				},
			}
			handler := newAuthHandler(&mockUserStore{}, jwt)

			body := `{"refresh_token": "bad-token"}`
			r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.RefreshToken(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid refresh token")
		})
	}
}
