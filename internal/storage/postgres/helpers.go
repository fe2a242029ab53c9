package postgres

import "github.com/island-scholars/server/internal/auth"

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

func authRole(raw string) auth.Role {
	if role, ok := auth.ParseRole(raw); ok {
		return role
	}
	return auth.Role(raw)
}
