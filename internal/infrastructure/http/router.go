package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterConfig tunes the edge middlewares.
type RouterConfig struct {
	AdminKey string
	// RateRPS limits public submissions per client; zero disables it.
	RateRPS   float64
	RateBurst int
	// TrustProxy keys the limiter on the X-Forwarded-For hop appended by
	// the proxy in front of the API instead of the peer address.
	TrustProxy bool
}

// Router is the API handler. Stop releases the limiter's background sweep.
type Router struct {
	http.Handler
	limiter *clientLimiter
}

func (rt *Router) Stop() { rt.limiter.Stop() }

func NewRouter(s *Server, cfg RouterConfig) *Router {
	r := chi.NewRouter()

	r.Use(requestID())
	r.Use(traceID())
	r.Use(requestLogger())
	r.Use(recoverer())
	r.Use(accessLog())
	r.Use(compress)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.ping != nil {
			if err := s.ping(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "db not ready")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	limiter := newClientLimiter(cfg.RateRPS, cfg.RateBurst, cfg.TrustProxy)

	r.Route("/financing", func(r chi.Router) {
		r.Get("/quote", s.GetQuote)
		r.Get("/plans", s.GetPlans)
		r.With(limiter.Middleware).Post("/requests", s.CreateFinancingRequest)
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Get("/featured", s.FeaturedVehicles)
		r.Get("/categories", s.CategoryCounts)
		r.Get("/{id}", s.GetVehicle)
		r.Get("/{id}/estimate", s.VehicleEstimate)
		r.Get("/{id}/similar", s.SimilarVehicles)
	})

	r.With(limiter.Middleware).Post("/bookings", s.CreateBooking)
	r.Get("/settings", s.GetSettings)

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminAuth(cfg.AdminKey))
		r.Get("/dashboard", s.Dashboard)
		r.Get("/vehicles", s.AdminVehicles)
		r.Post("/vehicles", s.CreateVehicle)
		r.Put("/vehicles/{id}", s.UpdateVehicle)
		r.Delete("/vehicles/{id}", s.DeleteVehicle)
		r.Get("/bookings", s.ListBookings)
		r.Patch("/bookings/{id}", s.UpdateBookingStatus)
		r.Get("/financing", s.ListFinancing)
		r.Patch("/financing/{id}", s.UpdateFinancingStatus)
		r.Put("/settings", s.SaveSettings)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	return &Router{Handler: r, limiter: limiter}
}
