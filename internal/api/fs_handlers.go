package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/dismorfo/rsui/internal/upstream"
)

type PreviewItem struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

type PreviewResponse struct {
	Item PreviewItem `json:"item"`
}

// @Summary      Get a storage node
// @Description  Returns the normalized file or directory node at the given path; child URLs are rewritten to local routes.
// @Tags         fs
// @Produce      json
// @Param        path  path      string  true  "Storage path"
// @Success      200   {object}  models.FileNode
// @Failure      401   {string}  string "Unauthorized"
// @Failure      404   {string}  string "Not found"
// @Failure      502   {string}  string "Request failed"
// @Router       /fs/{path} [get]
func (s *Server) GetPathHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())
	rawPath := chi.URLParam(r, "*")

	node, err := s.service(state).Path(r.Context(), rawPath)
	if err != nil {
		s.writeUpstreamError(w, r, state, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(node)
}

// @Summary      Download a file
// @Description  Streams the file at the given path from the upstream store as an attachment.
// @Tags         fs
// @Produce      octet-stream
// @Param        path  path      string  true  "Storage path"
// @Success      200   {file}    file
// @Failure      401   {string}  string "Unauthorized"
// @Failure      404   {string}  string "Not found"
// @Failure      500   {string}  string "Download failed"
// @Router       /download/{path} [get]
func (s *Server) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())
	rawPath := chi.URLParam(r, "*")

	// Błędy sprzed pierwszego bajtu dostają status diagnostyczny;
	// po rozpoczęciu strumienia downloader już tylko loguje.
	if err := s.downloader.ServeFile(w, r, state.Store, rawPath); err != nil {
		if errors.Is(err, upstream.ErrAuthExpired) {
			s.handleAuthExpired(w, r, state)
			return
		}
		if errors.Is(err, upstream.ErrInvalidPath) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: pobranie %s nie powiodło się: %v", rawPath, err)
		http.Error(w, "Download failed", http.StatusInternalServerError)
	}
}

// @Summary      Get a file preview payload
// @Description  Returns the preview view model: the file name and a local download URL to stream the content from.
// @Tags         fs
// @Produce      json
// @Param        path  path      string  true  "Storage path"
// @Success      200   {object}  PreviewResponse
// @Failure      401   {string}  string "Unauthorized"
// @Failure      404   {string}  string "Not found"
// @Router       /preview/{path} [get]
func (s *Server) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	rawPath := chi.URLParam(r, "*")

	cleanPath, err := upstream.SanitizePath(rawPath)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PreviewResponse{
		Item: PreviewItem{
			Name:        path.Base(cleanPath),
			DownloadURL: upstream.DownloadPrefix + "/" + cleanPath,
		},
	})
}

// @Summary      Health check
// @Tags         health
// @Success      200  {string}  string "OK"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeUpstreamError tłumaczy taksonomię błędów bramki na odpowiedzi
// HTTP. Strony nigdy nie widzą surowych błędów transportu.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, state *RequestSession, err error) {
	if errors.Is(err, upstream.ErrAuthExpired) {
		s.handleAuthExpired(w, r, state)
		return
	}
	if errors.Is(err, upstream.ErrInvalidPath) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	var connErr *upstream.ConnectionError
	if errors.As(err, &connErr) {
		log.Printf("ERROR: błąd połączenia z upstream: %v", err)
		http.Error(w, "Connection error", http.StatusBadGateway)
		return
	}

	log.Printf("ERROR: żądanie upstream nie powiodło się: %v", err)
	http.Error(w, "Request failed", http.StatusBadGateway)
}
