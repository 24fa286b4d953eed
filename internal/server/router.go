package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const healthProbeTimeout = 2 * time.Second

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	Metrics          http.Handler
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the HTTP routes exposed by the degrees API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthHandler(logger, deps.Health))

	if api := deps.API; api != nil {
		mux.HandleFunc("GET /people", api.handlePeople)
		mux.HandleFunc("GET /people/{id}", api.handlePerson)
		mux.HandleFunc("GET /movies/{id}", api.handleMovie)
		mux.HandleFunc("GET /degrees", api.handleDegrees)
	}
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	middlewares := []middleware{requestIDMiddleware, loggingMiddleware(logger)}
	if len(deps.AllowedOrigins) > 0 {
		middlewares = append([]middleware{corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials)}, middlewares...)
	}
	return chain(mux, middlewares...)
}

func healthHandler(logger *slog.Logger, health HealthService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if health == nil {
			respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()
		if err := health.Probe(ctx); err != nil {
			logger.Error("health probe failed", "error", err, "request_id", RequestID(r.Context()))
			respondJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Error: err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
