package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dismorfo/rsui/internal/models"
	"github.com/dismorfo/rsui/internal/session"
)

func TestGetPathHandler(t *testing.T) {
	t.Run("normalized node", func(t *testing.T) {
		var endpoint string
		upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/paths/p1/c1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{
				"name": "c1",
				"object_type": "directory",
				"children": [
					{"name": "plik.pdf", "object_type": "file", "url": "%spaths/p1/c1/plik.pdf", "download_url": "%spaths/p1/c1/plik.pdf"}
				]
			}`, endpoint, endpoint)
		}))
		defer upstreamSrv.Close()
		endpoint = upstreamSrv.URL + "/api/v1/"

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/fs/paths/p1/c1", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/fs/*", server.GetPathHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var node models.FileNode
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &node))
		require.Equal(t, "/fs/paths/p1/c1", node.URL)
		require.Len(t, node.Children, 1)
		require.Equal(t, "/fs/paths/p1/c1/plik.pdf", node.Children[0].URL)
		require.Equal(t, "/download/paths/p1/c1/plik.pdf", node.Children[0].DownloadURL)
	})

	t.Run("traversal path is not found", func(t *testing.T) {
		server := newTestServer("http://127.0.0.1:1")
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/fs/../..", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/fs/*", server.GetPathHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDownloadHandler(t *testing.T) {
	t.Run("streams the attachment", func(t *testing.T) {
		upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "true", r.URL.Query().Get("download"))
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("zawartość pliku"))
		}))
		defer upstreamSrv.Close()

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/download/paths/p1/c1/raport.pdf", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/download/*", server.DownloadHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "zawartość pliku", rr.Body.String())
		require.Contains(t, rr.Header().Get("Content-Disposition"), `attachment; filename="raport.pdf"`)
		require.Contains(t, rr.Header().Get("Cache-Control"), "no-store")
	})

	t.Run("expired credential before first byte", func(t *testing.T) {
		server := newTestServer("http://127.0.0.1:1")
		state := testRequestSession(session.NewMemoryStore())

		req := httptest.NewRequest("GET", "/download/paths/p1/c1/plik", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/download/*", server.DownloadHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Contains(t, rr.Body.String(), "Your external session has expired")
	})

	t.Run("absolute URL to a foreign host is rejected", func(t *testing.T) {
		// Ciasteczko sesji upstream nie może wyciec na host spoza
		// skonfigurowanego endpointu.
		var hits atomic.Int64
		attacker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write([]byte("owned"))
		}))
		defer attacker.Close()

		endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer endpoint.Close()

		server := newTestServer(endpoint.URL)
		state := testRequestSession(validCredStore("sekretny-token"))

		req := httptest.NewRequest("GET", "/download/"+attacker.URL+"/x", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/download/*", server.DownloadHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.EqualValues(t, 0, hits.Load())
		require.NotContains(t, rr.Body.String(), "owned")
	})

	t.Run("upstream failure before first byte", func(t *testing.T) {
		upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer upstreamSrv.Close()

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/download/paths/p1/c1/plik", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/download/*", server.DownloadHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Contains(t, rr.Body.String(), "Download failed")
	})
}

func TestPreviewHandler(t *testing.T) {
	server := newTestServer("http://127.0.0.1:1")
	state := testRequestSession(validCredStore("t"))

	t.Run("preview payload points at the local download route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/preview/paths/p1/c1/raport.pdf", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/preview/*", server.PreviewHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp PreviewResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Equal(t, "raport.pdf", resp.Item.Name)
		require.Equal(t, "/download/paths/p1/c1/raport.pdf", resp.Item.DownloadURL)
	})

	t.Run("invalid path is not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/preview/..", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/preview/*", server.PreviewHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHealthCheckHandler(t *testing.T) {
	server := newTestServer("http://127.0.0.1:1")

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(server.HealthCheckHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "OK", rr.Body.String())
}
