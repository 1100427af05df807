package routes

import (
	"net/http"

	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/middleware"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler *handlers.AppointmentHandler
	doctorHandler      *handlers.DoctorHandler
	authHandler        *handlers.AuthHandler
	pictureHandler     *handlers.PictureHandler
	sseHandler         *handlers.SSEHandler

	sessionValidator middleware.SessionValidator
	metrics          *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	doctorHandler *handlers.DoctorHandler,
	authHandler *handlers.AuthHandler,
	pictureHandler *handlers.PictureHandler,
	sseHandler *handlers.SSEHandler,
	sessionValidator middleware.SessionValidator,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		authHandler:        authHandler,
		pictureHandler:     pictureHandler,
		sseHandler:         sseHandler,

		sessionValidator: sessionValidator,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)

	// Picture-of-the-day endpoint
	r.mux.HandleFunc("GET /api/picture-of-day", r.pictureHandler.GetDaily)

	// Appointment endpoints (session required)
	auth := middleware.AuthMiddleware(r.sessionValidator)
	r.mux.Handle("GET /api/appointments", auth(http.HandlerFunc(r.appointmentHandler.List)))
	r.mux.Handle("POST /api/appointments", auth(http.HandlerFunc(r.appointmentHandler.Create)))
	r.mux.Handle("GET /api/appointments/{id}", auth(http.HandlerFunc(r.appointmentHandler.Get)))
	r.mux.Handle("PUT /api/appointments/{id}", auth(http.HandlerFunc(r.appointmentHandler.Update)))
	r.mux.Handle("DELETE /api/appointments/{id}", auth(http.HandlerFunc(r.appointmentHandler.Delete)))
	r.mux.Handle("GET /api/appointments/{id}/enrichment", auth(http.HandlerFunc(r.appointmentHandler.GetEnrichment)))

	// Doctor endpoints (session required)
	r.mux.Handle("GET /api/doctors", auth(http.HandlerFunc(r.doctorHandler.List)))
	r.mux.Handle("POST /api/doctors", auth(http.HandlerFunc(r.doctorHandler.Create)))

	// Event stream
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/appointments", r.sseHandler.StreamAppointments)
	}

	// Apply global middleware
	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
