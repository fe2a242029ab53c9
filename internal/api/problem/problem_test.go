package problem

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/applications/9", nil)

	Write(rec, req, 404, "https://islandscholars.example/problems/not-found", "Not Found",
		errors.New("application not found"), "production")

	require.Equal(t, 404, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Not Found", body.Title)
	require.Equal(t, "/applications/9", body.Instance)
	// Production hides the underlying error text.
	require.Equal(t, "Not Found", body.Detail)
}

func TestWriteExposesDetailInDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/applications", nil)

	Write(rec, req, 409, "about:blank", "Conflict", errors.New("already applied"), "development")

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "already applied", body.Detail)
}

func TestWriteValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/signup", nil)

	Write(rec, req, 422, "about:blank", "Validation Failed", nil, "production",
		WithErrors(map[string]interface{}{"email": "must be a valid email address"}))

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 422, body.Status)
	require.Equal(t, "must be a valid email address", body.Errors["email"])
}
