// AngelaMos | 2026
// service_test.go

package product

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

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/middleware"
)

type memoryRepo struct {
	mu       sync.Mutex
	products map[string]Product
	// afterGet runs once GetByID has copied a row out, while no lock is held.
	afterGet func(id string)
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{products: map[string]Product{}}
}

func (m *memoryRepo) ListPublished(context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Product{}
	for _, p := range m.products {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryRepo) ListByArtisan(_ context.Context, artisanID string) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Product{}
	for _, p := range m.products {
		if p.ArtisanID == artisanID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Product, error) {
	m.mu.Lock()
	p, ok := m.products[id]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if m.afterGet != nil {
		m.afterGet(id)
	}
	return &p, nil
}

func (m *memoryRepo) decrement(id string, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[id]
	p.Stock -= qty
	m.products[id] = p
}

func (m *memoryRepo) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	m.products[p.ID] = *p
	return nil
}

func (m *memoryRepo) Update(_ context.Context, p *Product, stock *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.products[p.ID]
	if !ok {
		return core.ErrNotFound
	}
	p.Stock = stored.Stock
	if stock != nil {
		p.Stock = *stock
	}
	p.UpdatedAt = time.Now()
	m.products[p.ID] = *p
	return nil
}

func (m *memoryRepo) SetStatus(_ context.Context, id, status string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	m.products[id] = p
	return &p, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

func validCreate() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Walnut bowl",
		Description: "Hand-turned",
		Price:       decimal.RequireFromString("45.00"),
		Category:    "Woodwork",
		Stock:       3,
		Photos:      []string{"https://img.example/bowl.jpg"},
	}
}

func TestService_CreateStartsAsDraft(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	req := validCreate()
	p, err := svc.Create(context.Background(), "artisan-1", req)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, "artisan-1", p.ArtisanID)
	assert.NotNil(t, p.Tags)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateProductRequest)
		wantMsg string
	}{
		{
			name:    "no photos",
			mutate:  func(r *CreateProductRequest) { r.Photos = nil },
			wantMsg: "No image URL provided",
		},
		{
			name:    "negative price",
			mutate:  func(r *CreateProductRequest) { r.Price = decimal.NewFromInt(-1) },
			wantMsg: "Price must not be negative",
		},
		{
			name:    "negative stock",
			mutate:  func(r *CreateProductRequest) { r.Stock = -2 },
			wantMsg: "Stock must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(ctx, "artisan-1", req)
			appErr, ok := core.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestService_PatchAppliesZeroValues(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	req := validCreate()
	req.Tags = []string{"oak"}
	p, err := svc.Create(ctx, "artisan-1", req)
	require.NoError(t, err)

	zero := 0
	free := decimal.Zero
	noTags := []string{}
	updated, err := svc.Update(ctx, "artisan-1", p.ID, UpdateProductRequest{
		Stock: &zero,
		Price: &free,
		Tags:  &noTags,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.True(t, updated.Price.IsZero())
	assert.Empty(t, updated.Tags)
	assert.Equal(t, "Walnut bowl", updated.Name)

	empty := []string{}
	_, err = svc.Update(ctx, "artisan-1", p.ID, UpdateProductRequest{Photos: &empty})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	bogus := "Archived"
	_, err = svc.Update(ctx, "artisan-1", p.ID, UpdateProductRequest{Status: &bogus})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestService_EditsKeepConcurrentStockDecrement(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	req := validCreate()
	req.Stock = 5
	p, err := svc.Create(ctx, "owner", req)
	require.NoError(t, err)

	repo.afterGet = func(id string) { repo.decrement(id, 2) }

	published, err := svc.Publish(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, published.Stock)

	name := "Walnut bowl, large"
	updated, err := svc.Update(ctx, "owner", p.ID, UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Stock)
	assert.Equal(t, name, updated.Name)

	repo.afterGet = nil
	stored, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock)
	assert.Equal(t, StatusPublished, stored.Status)

	restock := 10
	updated, err = svc.Update(ctx, "owner", p.ID, UpdateProductRequest{Stock: &restock})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)
}

func TestService_OwnershipEnforced(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", validCreate())
	require.NoError(t, err)

	name := "Stolen"
	_, err = svc.Update(ctx, "intruder", p.ID, UpdateProductRequest{Name: &name})
	assertUnauthorized(t, err, "User not authorized to update this product")

	_, err = svc.Publish(ctx, "intruder", p.ID)
	assertUnauthorized(t, err, "Not authorized to publish this product")

	err = svc.Delete(ctx, "intruder", p.ID)
	assertUnauthorized(t, err, "User not authorized to delete this product")

	_, err = svc.GetMine(ctx, "intruder", p.ID)
	assertUnauthorized(t, err, "Not authorized to access this product")

	still, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walnut bowl", still.Name)
	assert.Equal(t, StatusDraft, still.Status)
}

func assertUnauthorized(t *testing.T, err error, msg string) {
	t.Helper()
	appErr, ok := core.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
	assert.Equal(t, msg, appErr.Message)
}

func TestService_PublishAndDelete(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", validCreate())
	require.NoError(t, err)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for i := 0; i < 2; i++ {
		published, err := svc.Publish(ctx, "owner", p.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, published.Status)
	}

	list, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "owner", p.ID))
	_, err = svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_ListCacheInvalidatedOnPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewService(newMemoryRepo(), cache.New(rdb, time.Minute))
	ctx := context.Background()

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, mr.Exists(cache.PublishedProductsKey))

	p, err := svc.Create(ctx, "owner", validCreate())
	require.NoError(t, err)
	_, err = svc.Publish(ctx, "owner", p.ID)
	require.NoError(t, err)

	list, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func newTestRouter(svc *Service, identity *middleware.Identity) *chi.Mux {
	fakeAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity == nil {
				core.JSONError(w, core.TokenMissingError())
				return
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, fakeAuth)
	return r
}

func TestHandler_CreateRequiresArtisan(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	body, err := json.Marshal(validCreate())
	require.NoError(t, err)

	buyer := newTestRouter(svc, &middleware.Identity{ID: "b1", Role: "Buyer"})
	rec := httptest.NewRecorder()
	buyer.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized as an artisan")

	artisan := newTestRouter(svc, &middleware.Identity{ID: "a1", Role: middleware.RoleArtisan})
	rec = httptest.NewRecorder()
	artisan.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StatusDraft, created.Status)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("45")))

	rec = httptest.NewRecorder()
	artisan.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+created.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	artisan.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/myproducts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)
}

func TestHandler_CreateWithoutPhoto(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	artisan := newTestRouter(svc, &middleware.Identity{ID: "a1", Role: middleware.RoleArtisan})

	req := validCreate()
	req.Photos = nil
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	artisan.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image URL provided")
}

func TestHandler_GetMissing(t *testing.T) {
	r := newTestRouter(NewService(newMemoryRepo(), nil), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
