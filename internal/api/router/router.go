package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"staffdesk/internal/api/handler"
	"staffdesk/internal/api/middleware"
)

func NewRouter(
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.RosterHandler,
	vendorHandler *handler.RosterHandler,
	authMiddleware *middleware.AuthMiddleware,
	log *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Shared middleware chain; management routes additionally require
	// a bearer token.
	public := func(h http.Handler) http.Handler {
		return middleware.CORS(
			middleware.Logging(log)(
				middleware.Metrics(h),
			),
		)
	}
	protected := func(h http.Handler) http.Handler {
		return public(authMiddleware.Authenticate(h))
	}

	mux.Handle("POST /api/users/register", public(http.HandlerFunc(userHandler.Register)))
	mux.Handle("POST /api/auth/login", public(http.HandlerFunc(authHandler.Login)))

	mux.Handle("GET /api/employees", protected(http.HandlerFunc(employeeHandler.List)))
	mux.Handle("PUT /api/employees/{id}", protected(http.HandlerFunc(employeeHandler.Update)))
	mux.Handle("DELETE /api/employees/{id}", protected(http.HandlerFunc(employeeHandler.Delete)))

	mux.Handle("GET /api/vendors", protected(http.HandlerFunc(vendorHandler.List)))
	mux.Handle("PUT /api/vendors/{id}", protected(http.HandlerFunc(vendorHandler.Update)))
	mux.Handle("DELETE /api/vendors/{id}", protected(http.HandlerFunc(vendorHandler.Delete)))

	// CORS preflight for every API path.
	mux.Handle("OPTIONS /api/", middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	mux.Handle("GET /health", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})))

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
