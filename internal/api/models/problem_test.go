package models

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblem_Write(t *testing.T) {
	p := NewBadRequest("req_123", "city is required", []FieldError{
		{Field: "city", Message: "must not be empty", Code: "required"},
	})

	rec := httptest.NewRecorder()
	p.Write(rec)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req_123", rec.Header().Get("X-Request-Id"))

	var decoded Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))
	assert.Equal(t, ProblemTypeValidation, decoded.Type)
	assert.Equal(t, "city is required", decoded.Detail)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "city", decoded.Errors[0].Field)
}

func TestProblem_Constructors(t *testing.T) {
	tests := []struct {
		name       string
		problem    *Problem
		wantStatus int
		wantType   string
	}{
		{"not found", NewNotFound("t", "gone"), http.StatusNotFound, ProblemTypeNotFound},
		{"too many requests", NewTooManyRequests("t", "slow down"), http.StatusTooManyRequests, ProblemTypeTooManyRequests},
		{"internal", NewInternalError("t", "boom"), http.StatusInternalServerError, ProblemTypeInternal},
		{"unavailable", NewServiceUnavailable("t", "no snapshot"), http.StatusServiceUnavailable, ProblemTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.problem.Status)
			assert.Equal(t, tt.wantType, tt.problem.Type)
			assert.Equal(t, "t", tt.problem.TraceID)
		})
	}
}

func TestProblem_OmitsEmptyErrors(t *testing.T) {
	p := NewNotFound("req_1", "no such sensor")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\"errors\"")
}
