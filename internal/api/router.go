package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/island-scholars/server/internal/api/handlers"
	"github.com/island-scholars/server/internal/api/middleware"
	"github.com/island-scholars/server/internal/audit"
	"github.com/island-scholars/server/internal/auth"
	"github.com/island-scholars/server/internal/config"
	"github.com/island-scholars/server/internal/domain/applications"
	"github.com/island-scholars/server/internal/domain/events"
	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/island-scholars/server/internal/domain/universities"
	"github.com/island-scholars/server/internal/domain/users"
	"github.com/island-scholars/server/internal/metrics"
	"github.com/island-scholars/server/internal/notify"
	"github.com/island-scholars/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter assembles services, handlers, and the middleware chain.
// The pool is passed separately from the repository so the health
// check can ping it directly.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, repo storage.Repository, version string) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)
	auditLogger := audit.NewLogger()
	notifier := notify.NewWebhook(cfg.Notify, logger)

	universitiesService := universities.NewService(repo.Universities())
	usersService := users.NewService(repo.Users(), repo.Universities(), jwtManager, auditLogger, logger)
	internshipsService := internships.NewService(repo.Internships(), logger)
	applicationsService := applications.NewService(repo.Applications(), repo.Internships(), notifier, logger)
	eventsService := events.NewService(repo.Events(), logger)

	env := cfg.Environment
	authHandler := handlers.NewAuthHandler(usersService, env)
	applicationsHandler := handlers.NewApplicationsHandler(applicationsService, env)
	internshipsHandler := handlers.NewInternshipsHandler(internshipsService, env)
	eventsHandler := handlers.NewEventsHandler(eventsService, env)
	universitiesHandler := handlers.NewUniversitiesHandler(universitiesService, env)
	organizationsHandler := handlers.NewOrganizationsHandler(usersService, env)
	usersHandler := handlers.NewUsersHandler(usersService, env)
	health := handlers.NewHealthChecker(pool, version)

	student := middleware.RequireRoles(env, auth.RoleStudent)
	organization := middleware.RequireRoles(env, auth.RoleOrganization)
	admin := middleware.RequireRoles(env, auth.RoleAdmin)
	authed := middleware.RequireAuth(env)

	mux := http.NewServeMux()
	mux.Handle("/healthz", health.Health())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/auth/signin", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Signin),
	}))
	mux.Handle("/auth/signup", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Signup),
	}))

	mux.Handle("/applications", methodMux(map[string]http.Handler{
		http.MethodPost: student(http.HandlerFunc(applicationsHandler.Create)),
	}))
	mux.Handle("/applications/my-applications", methodMux(map[string]http.Handler{
		http.MethodGet: student(http.HandlerFunc(applicationsHandler.MyApplications)),
	}))
	mux.Handle("/applications/received", methodMux(map[string]http.Handler{
		http.MethodGet: organization(http.HandlerFunc(applicationsHandler.Received)),
	}))
	mux.Handle("/applications/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    authed(http.HandlerFunc(applicationsHandler.Get)),
		http.MethodDelete: authed(http.HandlerFunc(applicationsHandler.Delete)),
	}))
	mux.Handle("/applications/{id}/status", methodMux(map[string]http.Handler{
		http.MethodPut: organization(http.HandlerFunc(applicationsHandler.UpdateStatus)),
	}))
	mux.Handle("/applications/{id}/withdraw", methodMux(map[string]http.Handler{
		http.MethodPut: student(http.HandlerFunc(applicationsHandler.Withdraw)),
	}))

	mux.Handle("/internships", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(internshipsHandler.List),
		http.MethodPost: organization(http.HandlerFunc(internshipsHandler.Create)),
	}))
	mux.Handle("/internships/my-internships", methodMux(map[string]http.Handler{
		http.MethodGet: organization(http.HandlerFunc(internshipsHandler.MyInternships)),
	}))
	mux.Handle("/internships/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(internshipsHandler.Get),
		http.MethodPut:    organization(http.HandlerFunc(internshipsHandler.Update)),
		http.MethodDelete: organization(http.HandlerFunc(internshipsHandler.Delete)),
	}))

	mux.Handle("/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: organization(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/events/upcoming", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.Upcoming),
	}))
	mux.Handle("/events/my-events", methodMux(map[string]http.Handler{
		http.MethodGet: organization(http.HandlerFunc(eventsHandler.MyEvents)),
	}))
	mux.Handle("/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodPut:    organization(http.HandlerFunc(eventsHandler.Update)),
		http.MethodDelete: organization(http.HandlerFunc(eventsHandler.Delete)),
	}))

	mux.Handle("/universities", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(universitiesHandler.List),
	}))
	mux.Handle("/universities/by-name/{name}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(universitiesHandler.GetByName),
	}))
	mux.Handle("/universities/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(universitiesHandler.Get),
	}))

	mux.Handle("/organizations", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(organizationsHandler.List),
	}))
	mux.Handle("/organizations/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(organizationsHandler.Get),
	}))

	mux.Handle("/admin/users", methodMux(map[string]http.Handler{
		http.MethodGet: admin(http.HandlerFunc(usersHandler.List)),
	}))
	mux.Handle("/admin/users/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: admin(http.HandlerFunc(usersHandler.Get)),
	}))
	mux.Handle("/admin/users/{id}/activate", methodMux(map[string]http.Handler{
		http.MethodPut: admin(http.HandlerFunc(usersHandler.Activate)),
	}))
	mux.Handle("/admin/users/{id}/deactivate", methodMux(map[string]http.Handler{
		http.MethodPut: admin(http.HandlerFunc(usersHandler.Deactivate)),
	}))

	// Authenticate runs before RateLimit so token holders land on the
	// authed tier; credential endpoints are pinned to the login tier by
	// path inside RateLimit.
	var handler http.Handler = mux
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = middleware.Authenticate(jwtManager, env)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
