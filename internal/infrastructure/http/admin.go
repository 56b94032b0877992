package httpserver

import (
	"net/http"

	"autoelite/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboard(st))
}

func (s *Server) AdminVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inv, err := s.svc.AdminVehicles(r.Context(), domain.AdminSearch{Query: q.Get("q"), Status: q.Get("status")})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles":     toVehicles(inv.Vehicles),
		"statusCounts": inv.StatusCounts,
	})
}

func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	s.saveVehicle(w, r, "", http.StatusCreated)
}

func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	s.saveVehicle(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) saveVehicle(w http.ResponseWriter, r *http.Request, id string, status int) {
	var body vehicleInput
	if !decodeJSON(w, r, &body) {
		return
	}
	v, err := s.svc.SaveVehicle(r.Context(), id, body.toDomain())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, status, toVehicle(v))
}

func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := s.svc.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]bookingDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBooking(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var body statusInput
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := s.svc.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListFinancing(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.svc.ListFinancingRequests(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]financingReviewDTO, 0, len(reqs))
	for _, fr := range reqs {
		out = append(out, toFinancingReview(fr))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) UpdateFinancingStatus(w http.ResponseWriter, r *http.Request) {
	var body statusInput
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := s.svc.UpdateFinancingStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var body settingsDTO
	if !decodeJSON(w, r, &body) {
		return
	}
	st, err := s.svc.SaveSiteSettings(r.Context(), domain.SiteSettings(body))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsDTO(st))
}
