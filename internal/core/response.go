// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
)

var exposeErrorDetail atomic.Bool

// SetErrorDetail toggles the "stack" field on error bodies. It is enabled
// outside production.
func SetErrorDetail(enabled bool) {
	exposeErrorDetail.Store(enabled)
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Message(w http.ResponseWriter, message string) {
	OK(w, MessageResponse{Message: message})
}

// JSONError writes err as an error body. AppErrors keep their status and
// message; anything else becomes a 500.
func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		InternalServerError(w, err)
		return
	}

	resp := ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
	}
	if exposeErrorDetail.Load() && appErr.Err != nil {
		resp.Stack = appErr.Error()
	}

	JSON(w, appErr.StatusCode, resp)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)

	resp := ErrorResponse{
		Message: "Internal server error",
		Code:    "INTERNAL_ERROR",
	}
	if exposeErrorDetail.Load() && err != nil {
		resp.Stack = err.Error()
	}

	JSON(w, http.StatusInternalServerError, resp)
}
