package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) Problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	var p Problem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	return p
}

func TestWriteProblem(t *testing.T) {
	w := httptest.NewRecorder()
	WriteProblem(w, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   "plant 42 not found",
		Instance: "/api/v1/plants/42",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   "plant 42 not found",
		Instance: "/api/v1/plants/42",
	}, decodeProblem(t, w))
}

func TestProblemHelpers(t *testing.T) {
	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		status   int
		wantType string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, "missing", "/test") }, http.StatusNotFound, ProblemTypeNotFound},
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "invalid input", "/test") }, http.StatusBadRequest, ProblemTypeBadRequest},
		{"internal", func(w http.ResponseWriter) { InternalError(w, "something broke", "/test") }, http.StatusInternalServerError, ProblemTypeInternal},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "plant 2 is already in the wishlist", "/api/v1/wishlist") }, http.StatusConflict, ProblemTypeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			require.Equal(t, tt.status, w.Code)
			p := decodeProblem(t, w)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, tt.status, p.Status)
		})
	}
}

func TestRateLimited(t *testing.T) {
	w := httptest.NewRecorder()
	RateLimited(w, 0, "/test")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"), "a zero wait rounds up to one second")
	assert.Equal(t, ProblemTypeRateLimited, decodeProblem(t, w).Type)
}

func TestUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	Unauthorized(w, "bearer token required", "/api/v1/garden")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, ProblemTypeUnauthorized, decodeProblem(t, w).Type)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]int{"count": 3})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestWriteProblem_OmitsEmptyOptionalFields(t *testing.T) {
	w := httptest.NewRecorder()
	WriteProblem(w, Problem{
		Type:   ProblemTypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	})

	var raw map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
	assert.NotContains(t, raw, "detail")
	assert.NotContains(t, raw, "instance")
}
