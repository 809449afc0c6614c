package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hrsuite/hr-management/internal/auth"
	"github.com/hrsuite/hr-management/internal/employee"
	"github.com/hrsuite/hr-management/internal/transport/middleware"
	"github.com/hrsuite/hr-management/internal/transport/swagger"
	"github.com/hrsuite/hr-management/internal/user"
)

// accessLevel says which token, if any, a route demands.
type accessLevel int

const (
	// accessPublic needs no token.
	accessPublic accessLevel = iota
	// accessToken needs a valid access token.
	accessToken
	// accessRefresh needs a valid refresh token; only the rotation endpoint
	// uses it.
	accessRefresh
)

// routePolicy declares one route: where it lives, who may call it. The
// whole surface is visible in one table instead of being scattered across
// per-handler annotations.
type routePolicy struct {
	method  string
	pattern string
	handler http.HandlerFunc
	access  accessLevel
	roles   []user.Role // empty means any authenticated caller
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, employeeHandler *employee.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	policies := []routePolicy{
		{http.MethodGet, "/health", healthHandler.healthCheckHandler, accessPublic, nil},
		{http.MethodGet, "/ping", healthHandler.pingHandler, accessPublic, nil},

		{http.MethodPost, "/auth/signin", authHandler.SignIn, accessPublic, nil},
		{http.MethodPost, "/auth/verify", authHandler.VerifyAccount, accessPublic, nil},
		{http.MethodPost, "/auth/resend-verification-code", authHandler.ResendVerificationCode, accessPublic, nil},
		{http.MethodPost, "/auth/request-reset-password", authHandler.ResendVerificationCode, accessPublic, nil},
		{http.MethodPost, "/auth/reset-password", authHandler.ResetPassword, accessPublic, nil},
		{http.MethodPost, "/auth/logout", authHandler.Logout, accessToken, nil},
		{http.MethodPost, "/auth/refresh", authHandler.RefreshToken, accessRefresh, nil},

		{http.MethodGet, "/users", userHandler.ListUsers, accessToken, []user.Role{user.RoleSuperAdmin}},
		{http.MethodPost, "/users", userHandler.CreateUser, accessToken, []user.Role{user.RoleSuperAdmin}},
		{http.MethodDelete, "/users/{id}", userHandler.DeleteUser, accessToken, []user.Role{user.RoleSuperAdmin}},

		{http.MethodGet, "/employees", employeeHandler.ListEmployees, accessToken, nil},
		{http.MethodGet, "/employees/stats", employeeHandler.EmployeeStats, accessToken, nil},
		{http.MethodPost, "/employees", employeeHandler.CreateEmployee, accessToken, []user.Role{user.RoleSuperAdmin}},
		{http.MethodPut, "/employees", employeeHandler.UpdateEmployee, accessToken, []user.Role{user.RoleSuperAdmin}},
		{http.MethodDelete, "/employees/{id}", employeeHandler.DeleteEmployee, accessToken, []user.Role{user.RoleSuperAdmin}},
	}

	router.Route("/api/v1", func(r chi.Router) {
		for _, p := range policies {
			r.Method(p.method, p.pattern, buildRoute(authHandler, p))
		}
	})
}

// buildRoute wraps a handler with the middleware its policy demands.
func buildRoute(authHandler *auth.Handler, p routePolicy) http.Handler {
	var h http.Handler = p.handler

	if len(p.roles) > 0 {
		h = authHandler.RequireRoles(p.roles...)(h)
	}

	switch p.access {
	case accessToken:
		h = authHandler.AccessTokenMiddleware(h)
	case accessRefresh:
		h = authHandler.RefreshTokenMiddleware(h)
	}

	return h
}
