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

type CollectionResponse struct {
	Collection *models.Collection `json:"collection"`
}

type CollectionPathResponse struct {
	Collection *models.Collection `json:"collection"`
	// Storage to łańcuch okruszków: korzeń magazynu kolekcji jako
	// pierwszy wpis, bieżący katalog jako ostatni.
	Storage []models.FileNode `json:"storage"`
}

// @Summary      Get a collection with its partner
// @Description  Fetches the collection, requires partner_id, merges the partner and rewrites storage_url to the local browse route.
// @Tags         collections
// @Produce      json
// @Param        collection  path      string  true  "Collection ID" format(uuid)
// @Success      200         {object}  CollectionResponse
// @Failure      401         {string}  string "Unauthorized"
// @Failure      404         {string}  string "Not found"
// @Router       /collections/{collection} [get]
func (s *Server) GetCollectionHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())

	collectionID := chi.URLParam(r, "collection")
	if _, err := uuid.Parse(collectionID); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	collection, err := s.service(state).CollectionByID(r.Context(), collectionID)
	if err != nil {
		if errors.Is(err, upstream.ErrAuthExpired) {
			s.handleAuthExpired(w, r, state)
			return
		}
		if errors.Is(err, upstream.ErrMissingPartnerID) {
			log.Printf("ERROR: kolekcja %s bez partner_id w odpowiedzi upstream", collectionID)
		} else {
			log.Printf("ERROR: nie udało się pobrać kolekcji %s: %v", collectionID, err)
		}
		// Strona kolekcji renderuje "brak danych" zamiast twardego błędu.
		collection = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CollectionResponse{Collection: collection})
}

// @Summary      Get a collection page for a storage path
// @Description  Returns the collection plus the breadcrumb chain from the collection storage root down to the requested path.
// @Tags         collections
// @Produce      json
// @Param        partner     path      string  true  "Partner ID" format(uuid)
// @Param        collection  path      string  true  "Collection ID" format(uuid)
// @Param        path        path      string  true  "Relative storage path"
// @Success      200         {object}  CollectionPathResponse
// @Failure      401         {string}  string "Unauthorized"
// @Failure      404         {string}  string "Not found"
// @Router       /paths/{partner}/{collection}/{path} [get]
func (s *Server) CollectionPathHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())

	partnerID := chi.URLParam(r, "partner")
	collectionID := chi.URLParam(r, "collection")
	if _, err := uuid.Parse(partnerID); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if _, err := uuid.Parse(collectionID); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	relativePath := chi.URLParam(r, "*")

	svc := s.service(state)

	collection, err := svc.CollectionByID(r.Context(), collectionID)
	if err != nil {
		if errors.Is(err, upstream.ErrAuthExpired) {
			s.handleAuthExpired(w, r, state)
			return
		}
		log.Printf("ERROR: nie udało się pobrać kolekcji %s: %v", collectionID, err)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CollectionPathResponse{Collection: nil, Storage: nil})
		return
	}

	rootName := collection.DisplayCode
	if rootName == "" {
		rootName = collection.Name
	}
	storage := svc.BreadcrumbChain(partnerID, collectionID, rootName, relativePath)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CollectionPathResponse{
		Collection: collection,
		Storage:    storage,
	})
}
