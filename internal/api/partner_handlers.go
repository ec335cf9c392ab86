package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dismorfo/rsui/internal/models"
	"github.com/dismorfo/rsui/internal/upstream"
)

type PartnersResponse struct {
	Partners []models.Partner `json:"partners"`
}

type PartnerResponse struct {
	Partner *models.Partner `json:"partner"`
}

// @Summary      List partners
// @Description  Returns all partners visible to the current upstream session. Backs the dashboard view.
// @Tags         partners
// @Produce      json
// @Success      200  {object}  PartnersResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      502  {string}  string "Request failed"
// @Router       /dashboard [get]
func (s *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())

	partners, err := s.service(state).Partners(r.Context())
	if err != nil {
		s.writeUpstreamError(w, r, state, err)
		return
	}
	if partners == nil {
		partners = []models.Partner{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PartnersResponse{Partners: partners})
}

// @Summary      Get a partner with its collections
// @Description  Fetches the partner and its collections and merges them. Upstream failures degrade to a null partner instead of a partial object.
// @Tags         partners
// @Produce      json
// @Param        partner  path      string  true  "Partner ID" format(uuid)
// @Success      200      {object}  PartnerResponse
// @Failure      401      {string}  string "Unauthorized"
// @Failure      404      {string}  string "Not found"
// @Router       /partners/{partner} [get]
func (s *Server) GetPartnerHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())

	partnerID := chi.URLParam(r, "partner")
	if _, err := uuid.Parse(partnerID); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	partner, err := s.service(state).PartnerByID(r.Context(), partnerID)
	if err != nil {
		if errors.Is(err, upstream.ErrAuthExpired) {
			s.handleAuthExpired(w, r, state)
			return
		}
		// Odpowiedź częściowa jest gorsza niż brak danych; UI renderuje
		// pustą stronę partnera.
		log.Printf("ERROR: nie udało się pobrać partnera %s: %v", partnerID, err)
		partner = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PartnerResponse{Partner: partner})
}
