package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/island-scholars/server/internal/api/middleware"
	"github.com/island-scholars/server/internal/api/problem"
)

// Problem type URIs, one per error family.
const (
	typeValidation = "https://islandscholars.app/problems/validation-error"
	typeNotFound   = "https://islandscholars.app/problems/not-found"
	typeConflict   = "https://islandscholars.app/problems/conflict"
	typeForbidden  = "https://islandscholars.app/problems/forbidden"
	typeServer     = "https://islandscholars.app/problems/server-error"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON decodes the body into dst and runs struct validation.
// A false return means the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, env string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request body", err, env)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, env)
			return false
		}
		problem.Write(w, r, http.StatusUnprocessableEntity, typeValidation, "Validation failed", nil, env,
			problem.WithErrors(validationErrors(err)))
		return false
	}
	return true
}

func validationErrors(err error) map[string]interface{} {
	out := make(map[string]interface{})
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			field := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]
			out[field] = fmt.Sprintf("failed on the '%s' rule", fieldError.Tag())
		}
	}
	return out
}

// caller returns the authenticated principal. Routes using this are
// wrapped in RequireAuth or RequireRoles, so a miss is a wiring bug.
func caller(w http.ResponseWriter, r *http.Request, env string) (middleware.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, typeForbidden, "Authentication required", nil, env)
	}
	return principal, ok
}

// pathID parses the {id} path segment as an int64.
func pathID(w http.ResponseWriter, r *http.Request, env string) (int64, bool) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", nil, env,
			problem.WithDetail("id must be a positive integer"))
		return 0, false
	}
	return id, true
}
