// AngelaMos | 2026
// service_test.go

package user

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/middleware"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]User{}}
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (m *memoryRepo) Update(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[u.ID]
	if !ok {
		return core.ErrNotFound
	}
	stored.Name, stored.ProfileImage = u.Name, u.ProfileImage
	stored.Phone, stored.Address = u.Phone, u.Address
	stored.UpdatedAt = time.Now()
	m.users[u.ID] = stored
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *memoryRepo) ListByRole(_ context.Context, role, _ string) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

type stubIssuer struct{}

func (stubIssuer) CreateAccessToken(userID, _ string) (*auth.IssuedToken, error) {
	return &auth.IssuedToken{Token: "tok-" + userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := NewService(newMemoryRepo(), nil)
	creds := auth.NewService(stubIssuer{}, users)

	registered, err := creds.Register(ctx, auth.RegisterRequest{
		Name: "Rosa", Email: "rosa@example.com", Password: "password123",
	})
	require.NoError(t, err)

	loggedIn, err := creds.Login(ctx, auth.LoginRequest{
		Email: "rosa@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)

	newName := "Rosa M."
	_, err = users.UpdateProfile(ctx, loggedIn.ID, UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)

	public, err := users.GetPublicProfile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rosa M.", public.Name)

	own, err := users.GetProfile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "rosa@example.com", own.Email)
}

func TestUpdateProfile_ContactOnlyForArtisans(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	buyer, err := svc.Create(ctx, auth.NewUser{Email: "b@x.co", Name: "B", Role: RoleBuyer})
	require.NoError(t, err)
	artisan, err := svc.Create(ctx, auth.NewUser{Email: "a@x.co", Name: "A", Role: RoleArtisan})
	require.NoError(t, err)

	phone := "555-0199"
	patch := UpdateProfileRequest{Contact: &ContactPatch{Phone: &phone}}

	updated, err := svc.UpdateProfile(ctx, buyer.ID, patch)
	require.NoError(t, err)
	assert.Empty(t, updated.Phone)

	updated, err = svc.UpdateProfile(ctx, artisan.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "A", updated.Name)
}

func TestUpdateProfile_RejectsBlankName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), nil)
	u, err := svc.Create(ctx, auth.NewUser{Email: "c@x.co", Name: "C"})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Name: &blank})
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestLoadIdentity(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), nil)
	u, err := svc.Create(ctx, auth.NewUser{Email: "d@x.co", Name: "D", Role: RoleArtisan})
	require.NoError(t, err)

	identity, err := svc.LoadIdentity(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, identity.IsArtisan())

	_, err = svc.LoadIdentity(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestHandler_Routes(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), nil)
	artisan, err := svc.Create(ctx, auth.NewUser{
		Email: "e@x.co", Name: "Eve", Role: RoleArtisan, Phone: "555",
	})
	require.NoError(t, err)

	fakeAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := svc.LoadIdentity(r.Context(), artisan.ID)
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, fakeAuth)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/artisans", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var artisans []PublicProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &artisans))
	require.Len(t, artisans, 1)
	require.NotNil(t, artisans[0].Contact)
	assert.Equal(t, "555", artisans[0].Contact.Phone)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+artisan.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "e@x.co")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/nobody", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")

	body, _ := json.Marshal(map[string]any{"name": "Eve K", "email": "other@x.co"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/profile", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Eve K", profile.Name)
	assert.Equal(t, "e@x.co", profile.Email)
}
