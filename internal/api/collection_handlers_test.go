package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetCollectionHandler(t *testing.T) {
	collectionID := uuid.NewString()
	partnerID := uuid.NewString()

	t.Run("merged collection with local storage url", func(t *testing.T) {
		var endpoint string
		upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/v1/colls/" + collectionID:
				fmt.Fprintf(w, `{"id":%q,"partner_id":%q,"code":"kol1","storage_url":"%spaths/%s/%s"}`,
					collectionID, partnerID, endpoint, partnerID, collectionID)
			case "/api/v1/partners/" + partnerID:
				fmt.Fprintf(w, `{"id":%q,"code":"alfa"}`, partnerID)
			default:
				http.Error(w, "not found", http.StatusNotFound)
			}
		}))
		defer upstreamSrv.Close()
		endpoint = upstreamSrv.URL + "/api/v1/"

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/collections/"+collectionID, nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/collections/{collection}", server.GetCollectionHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp CollectionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Collection)
		require.NotNil(t, resp.Collection.Partner)
		require.Equal(t, "alfa", resp.Collection.Partner.Code)
		require.Equal(t, fmt.Sprintf("/fs/paths/%s/%s", partnerID, collectionID), resp.Collection.StorageURL)
	})

	t.Run("missing partner_id degrades to null collection", func(t *testing.T) {
		upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"id":%q,"code":"kol1"}`, collectionID)
		}))
		defer upstreamSrv.Close()

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/collections/"+collectionID, nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/collections/{collection}", server.GetCollectionHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"collection":null}`, rr.Body.String())
	})

	t.Run("invalid id is not found", func(t *testing.T) {
		server := newTestServer("http://127.0.0.1:1")
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/collections/nie-uuid", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/collections/{collection}", server.GetCollectionHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCollectionPathHandler(t *testing.T) {
	collectionID := uuid.NewString()
	partnerID := uuid.NewString()

	newUpstream := func(displayCode string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/v1/colls/" + collectionID:
				fmt.Fprintf(w, `{"id":%q,"partner_id":%q,"code":"kol1","display_code":%q,"name":"Kolekcja 1","storage_url":""}`,
					collectionID, partnerID, displayCode)
			case "/api/v1/partners/" + partnerID:
				fmt.Fprintf(w, `{"id":%q,"code":"alfa"}`, partnerID)
			default:
				http.Error(w, "not found", http.StatusNotFound)
			}
		}))
	}

	t.Run("breadcrumbs from root to current directory", func(t *testing.T) {
		upstreamSrv := newUpstream("KOL-1")
		defer upstreamSrv.Close()

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		url := fmt.Sprintf("/paths/%s/%s/a/b", partnerID, collectionID)
		req := httptest.NewRequest("GET", url, nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/paths/{partner}/{collection}/*", server.CollectionPathHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp CollectionPathResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Collection)
		require.Len(t, resp.Storage, 3)
		require.Equal(t, "KOL-1", resp.Storage[0].Name)
		require.Equal(t, fmt.Sprintf("/fs/paths/%s/%s", partnerID, collectionID), resp.Storage[0].URL)
		require.Equal(t, "b", resp.Storage[2].Name)
		require.Equal(t, resp.Storage[1].URL+"/b", resp.Storage[2].URL)
	})

	t.Run("falls back to collection name without display code", func(t *testing.T) {
		upstreamSrv := newUpstream("")
		defer upstreamSrv.Close()

		server := newTestServer(upstreamSrv.URL)
		state := testRequestSession(validCredStore("t"))

		url := fmt.Sprintf("/paths/%s/%s/a", partnerID, collectionID)
		req := httptest.NewRequest("GET", url, nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/paths/{partner}/{collection}/*", server.CollectionPathHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp CollectionPathResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Equal(t, "Kolekcja 1", resp.Storage[0].Name)
	})

	t.Run("invalid partner id is not found", func(t *testing.T) {
		server := newTestServer("http://127.0.0.1:1")
		state := testRequestSession(validCredStore("t"))

		req := httptest.NewRequest("GET", "/paths/nie-uuid/"+collectionID+"/a", nil)
		rr := httptest.NewRecorder()
		routerWithState(state, "/paths/{partner}/{collection}/*", server.CollectionPathHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
