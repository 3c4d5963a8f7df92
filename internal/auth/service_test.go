// AngelaMos | 2026
// service_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/recraft/internal/core"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*UserInfo
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*UserInfo{}}
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", email, core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) Create(_ context.Context, nu NewUser) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[nu.Email]; ok {
		return nil, fmt.Errorf("insert: %w", core.ErrDuplicateKey)
	}
	u := &UserInfo{
		ID:           uuid.NewString(),
		Email:        nu.Email,
		Name:         nu.Name,
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
		Phone:        nu.Phone,
		Address:      nu.Address,
	}
	m.byEmail[nu.Email] = u
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return core.ErrNotFound
}

type stubIssuer struct{}

func (stubIssuer) CreateAccessToken(userID, role string) (*IssuedToken, error) {
	return &IssuedToken{
		Token:     "tok-" + userID + "-" + role,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func TestService_Register(t *testing.T) {
	svc := NewService(stubIssuer{}, newMemoryUsers())
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     " Maya ",
		Email:    "Maya@Example.com",
		Password: "password123",
		Role:     "Artisan",
		Contact:  &Contact{Phone: "555-0100", Address: "1 Loom St"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Maya", resp.Name)
	assert.Equal(t, "maya@example.com", resp.Email)
	assert.Equal(t, "Artisan", resp.Role)
	assert.Equal(t, "555-0100", resp.Contact.Phone)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Register(ctx, RegisterRequest{
		Name:     "Other",
		Email:    "maya@example.com",
		Password: "password123",
	})
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "User already exists", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestService_RegisterDefaultsToBuyer(t *testing.T) {
	svc := NewService(stubIssuer{}, newMemoryUsers())

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ben", Email: "ben@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleBuyer, resp.Role)
}

func TestService_RegisterDropsBuyerContact(t *testing.T) {
	users := newMemoryUsers()
	svc := NewService(stubIssuer{}, users)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ben",
		Email:    "ben@example.com",
		Password: "password123",
		Role:     RoleBuyer,
		Contact:  &Contact{Phone: "555-0199", Address: "9 Market Rd"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Contact.Phone)
	assert.Empty(t, resp.Contact.Address)

	stored, err := users.GetByEmail(context.Background(), "ben@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Phone)
	assert.Empty(t, stored.Address)
}

func TestService_Login(t *testing.T) {
	users := newMemoryUsers()
	svc := NewService(stubIssuer{}, users)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name: "Ben", Email: "ben@example.com", Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid", email: "ben@example.com", password: "password123"},
		{name: "case-insensitive email", email: "BEN@example.com", password: "password123"},
		{name: "wrong password", email: "ben@example.com", password: "nope", wantErr: true},
		{name: "unknown email", email: "who@example.com", password: "password123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Equal(t, "Invalid email or password", ErrInvalidCredentials.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ben", resp.Name)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestHandler_RegisterAndLogin(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(stubIssuer{}, newMemoryUsers())).RegisterRoutes(r)

	post := func(path string, body any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw)))
		return rec
	}

	rec := post("/users", map[string]any{
		"name": "Ivy", "email": "ivy@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ivy@example.com", created.Email)

	rec = post("/users", map[string]any{"name": "Ivy", "email": "bad", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post("/users", map[string]any{
		"name": "Ivy", "email": "ivy@example.com", "password": "password123", "role": "Admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post("/users/login", map[string]any{"email": "ivy@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post("/users/login", map[string]any{"email": "ivy@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}
