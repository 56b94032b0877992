package httpserver

import (
	"context"
	"net/http"

	"autoelite/internal/application"
	"autoelite/internal/domain"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	svc  *application.DealershipService
	ping func(context.Context) error
}

func NewServer(svc *application.DealershipService) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the dependency probe behind /readyz.
func (s *Server) SetReadyCheck(fn func(context.Context) error) { s.ping = fn }

func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	price, err := queryFloat(r, "price", domain.DefaultQuotePrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	down, err := queryFloat(r, "down", domain.DefaultQuoteDownPayment)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	term, err := queryInt(r, "term", domain.EstimateTermMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if term < 0 {
		writeError(w, http.StatusBadRequest, "term must not be negative")
		return
	}
	apr, err := queryFloat(r, "apr", domain.EstimateAPR)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toLoanQuote(s.svc.QuoteLoan(price, down, term, apr)))
}

func (s *Server) GetPlans(w http.ResponseWriter, r *http.Request) {
	price, err := queryFloat(r, "price", domain.DefaultQuotePrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	down, err := queryFloat(r, "down", domain.DefaultQuoteDownPayment)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	term, err := queryInt(r, "term", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cmp, err := s.svc.ComparePlans(r.Context(), price, down, term)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanComparison(cmp))
}

func (s *Server) CreateFinancingRequest(w http.ResponseWriter, r *http.Request) {
	var body financingInput
	if !decodeJSON(w, r, &body) {
		return
	}
	id, err := s.svc.SubmitFinancingRequest(r.Context(), application.FinancingSubmission{
		CustomerName: body.CustomerName,
		Email:        body.Email,
		Price:        body.Price,
		DownPayment:  body.DownPayment,
		TermMonths:   body.Term,
	}, idempotencyKey(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	room, err := s.svc.BrowseVehicles(r.Context(), domain.VehicleFilter{
		Category:     q.Get("category"),
		Brand:        q.Get("brand"),
		PriceRange:   q.Get("price"),
		Condition:    q.Get("condition"),
		Transmission: q.Get("transmission"),
		Location:     q.Get("location"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles":  toVehicles(room.Vehicles),
		"brands":    room.Brands,
		"locations": room.Locations,
	})
}

func (s *Server) FeaturedVehicles(w http.ResponseWriter, r *http.Request) {
	vs, err := s.svc.FeaturedVehicles(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicles(vs))
}

func (s *Server) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.CategoryCounts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[string(c)] = n
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicle(v))
}

func (s *Server) VehicleEstimate(w http.ResponseWriter, r *http.Request) {
	var (
		p   application.EstimateParams
		err error
	)
	if p.DownPayment, err = optFloat(r, "down"); err == nil {
		if p.TermMonths, err = optInt(r, "term"); err == nil {
			p.APR, err = optFloat(r, "apr")
		}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.TermMonths != nil && *p.TermMonths < 0 {
		writeError(w, http.StatusBadRequest, "term must not be negative")
		return
	}
	est, err := s.svc.EstimateForVehicle(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleEstimateDTO{
		VehicleID:      est.Vehicle.ID,
		Price:          est.Vehicle.Price,
		DownPayment:    est.DownPayment,
		DownPaymentPct: est.DownPaymentPct,
		Quote:          toLoanQuote(est.Quote),
	})
}

func (s *Server) SimilarVehicles(w http.ResponseWriter, r *http.Request) {
	vs, err := s.svc.SimilarVehicles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicles(vs))
}

func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var body bookingInput
	if !decodeJSON(w, r, &body) {
		return
	}
	id, err := s.svc.SubmitBooking(r.Context(), application.BookingSubmission(body), idempotencyKey(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.SiteSettings(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsDTO(st))
}
