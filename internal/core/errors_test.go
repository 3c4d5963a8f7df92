// AngelaMos | 2026
// errors_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Unwrap(t *testing.T) {
	err := fmt.Errorf("get product: %w", NotFoundError("Product"))

	assert.True(t, errors.Is(err, ErrNotFound))
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Product not found", appErr.Message)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestJSONError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		detail     bool
		wantStatus int
		wantMsg    string
		wantStack  bool
	}{
		{
			name:       "app error",
			err:        BadRequestError("No order items"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "No order items",
		},
		{
			name:       "plain error hides message",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "detail outside production",
			err:        errors.New("boom"),
			detail:     true,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
			wantStack:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetErrorDetail(tt.detail)
			t.Cleanup(func() { SetErrorDetail(false) })

			rec := httptest.NewRecorder()
			JSONError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Equal(t, tt.wantStack, body.Stack != "")
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	err := validator.New().Struct(req{Email: "nope", Password: "short"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 8")
}
