// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error { return nil }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		deps   []Dependency
		want   int
		status string
	}{
		{
			name:   "all healthy",
			deps:   []Dependency{{"database", pingFunc(ok)}, {"redis", pingFunc(ok)}},
			want:   http.StatusOK,
			status: "ok",
		},
		{
			name: "redis down",
			deps: []Dependency{
				{"database", pingFunc(ok)},
				{"redis", pingFunc(func(context.Context) error { return errors.New("dial tcp") })},
			},
			want:   http.StatusServiceUnavailable,
			status: "degraded",
		},
		{
			name:   "unconfigured",
			deps:   []Dependency{{"database", nil}},
			want:   http.StatusServiceUnavailable,
			status: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(tt.deps...), "/readyz")
			require.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

			var resp ReadinessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			require.Len(t, resp.Checks, len(tt.deps))
			for i, dep := range tt.deps {
				assert.Equal(t, dep.Name, resp.Checks[i].Name)
			}
		})
	}
}

func TestShutdownAndNotReady(t *testing.T) {
	h := NewHandler(Dependency{"database", pingFunc(ok)})

	h.SetReady(false)
	rec := serve(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
	assert.Equal(t, http.StatusOK, serve(h, "/livez").Code)

	h.SetReady(true)
	h.SetShutdown(true)
	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		rec := serve(h, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "shutting_down", path)
	}
}
