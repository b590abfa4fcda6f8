package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mindscreen/internal/cache"
	"mindscreen/internal/service"
	"mindscreen/internal/transport/rest/handler"
	"mindscreen/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	RateLimiter       cache.RateLimiter
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.ReportService)
	rateLimitMW := middleware.NewRateLimitMiddleware(c.RateLimiter)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Capability metadata (not rate limited)
	v1.HandleFunc("/assessments/full", assessmentHandler.DescribeFull).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{instrument}", assessmentHandler.DescribeInstrument).Methods("GET", "OPTIONS")

	// Submission routes (rate limited per client IP)
	submit := v1.NewRoute().Subrouter()
	submit.Use(rateLimitMW.Limit)
	submit.HandleFunc("/assessments/full", assessmentHandler.SubmitFull).Methods("POST", "OPTIONS")
	submit.HandleFunc("/assessments/{instrument}", assessmentHandler.SubmitInstrument).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
