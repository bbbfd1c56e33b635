package routes

import (
	"net/http"

	"github.com/vision360/backend/internal/api/handlers"
	"github.com/vision360/backend/internal/api/middleware"
	"github.com/vision360/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	guidanceHandler *handlers.GuidanceHandler

	describeHandler *handlers.DescribeHandler

	reservationHandler *handlers.ReservationHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	guidanceHandler *handlers.GuidanceHandler,
	describeHandler *handlers.DescribeHandler,
	reservationHandler *handlers.ReservationHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		guidanceHandler: guidanceHandler,

		describeHandler: describeHandler,

		reservationHandler: reservationHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			return
		}
	})

	// Guidance endpoints: detection enrichment and scene advisories

	r.mux.HandleFunc("POST /api/guidance/enrich", r.guidanceHandler.EnrichDetection)

	r.mux.HandleFunc("POST /api/guidance/enrich/batch", r.guidanceHandler.EnrichBatch)

	r.mux.HandleFunc("POST /api/guidance/advise", r.guidanceHandler.Advise)

	// Describe endpoints: opaque AI upstreams

	r.mux.HandleFunc("POST /api/describe/gemini", r.describeHandler.DescribeScene)

	r.mux.HandleFunc("POST /api/describe/groq", r.describeHandler.GenerateAdvice)

	// Reservation endpoints (in-memory stub)

	r.mux.HandleFunc("POST /api/reservations", r.reservationHandler.CreateReservation)

	r.mux.HandleFunc("GET /api/reservations", r.reservationHandler.ListReservations)

	r.mux.HandleFunc("GET /api/reservations/{id}", r.reservationHandler.GetReservation)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so every response carries the headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
