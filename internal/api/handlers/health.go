package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthCheck struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

type HealthChecker struct {
	pool    *pgxpool.Pool
	version string
}

func NewHealthChecker(pool *pgxpool.Pool, version string) *HealthChecker {
	return &HealthChecker{pool: pool, version: version}
}

// Health pings the database with a short deadline. A failed ping
// degrades the response but still answers 200; load balancers use the
// body to decide.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		check := HealthCheck{
			Status:    "ok",
			Version:   h.version,
			Database:  "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		if h.pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.pool.Ping(ctx); err != nil {
				check.Status = "degraded"
				check.Database = "unreachable"
			}
		}

		writeJSON(w, http.StatusOK, check)
	}
}
