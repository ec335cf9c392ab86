package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dismorfo/rsui/internal/auth"
	"github.com/dismorfo/rsui/internal/upstream"
)

func TestAuthMiddleware(t *testing.T) {
	server := newTestServer("http://127.0.0.1:1")

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := GetSessionFromContext(r.Context())
		require.NotNil(t, state)
		require.NotNil(t, state.Session)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
		rr := httptest.NewRecorder()

		server.AuthMiddleware(okHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "nie-jwt"})
		rr := httptest.NewRecorder()

		server.AuthMiddleware(okHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token without a session row", func(t *testing.T) {
		user, sess := createDBSession(t, "t")
		require.NoError(t, testStore.DeleteSessionByID(context.Background(), sess.ID))

		token, err := auth.GenerateJWT(sess.ID, user.Email, testJWTSecret)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
		rr := httptest.NewRecorder()

		server.AuthMiddleware(okHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Contains(t, rr.Body.String(), "Session not found or expired")

		accessCookie := findCookie(t, rr, accessTokenCookie)
		require.NotNil(t, accessCookie)
		require.Equal(t, -1, accessCookie.MaxAge)
	})

	t.Run("valid session reaches the handler", func(t *testing.T) {
		user, sess := createDBSession(t, "upstream-token")

		token, err := auth.GenerateJWT(sess.ID, user.Email, testJWTSecret)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
		rr := httptest.NewRecorder()

		server.AuthMiddleware(okHandler).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})
}

// Pełna ścieżka żądania: middleware ładuje sesję z bazy, handler woła
// upstream, rotacja ciasteczka ląduje z powrotem w wierszu sesji.
func TestAuthMiddleware_RotationPersistsToSessionRow(t *testing.T) {
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(upstream.AuthCookieName)
		require.NoError(t, err)
		require.Equal(t, "token-przed", cookie.Value)

		http.SetCookie(w, &http.Cookie{
			Name:    upstream.AuthCookieName,
			Value:   "token-po",
			Expires: time.Now().Add(2 * time.Hour).UTC(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer upstreamSrv.Close()

	server := newTestServer(upstreamSrv.URL)
	user, sess := createDBSession(t, "token-przed")

	token, err := auth.GenerateJWT(sess.ID, user.Email, testJWTSecret)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.With(server.AuthMiddleware).Get("/api/v1/dashboard", server.DashboardHandler)

	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	rotated, err := testStore.GetSessionByID(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Equal(t, "token-po", rotated.UpstreamToken)
	require.True(t, rotated.UpstreamExpiresAt.After(time.Now()))
}

// Wygaśnięcie poświadczenia upstream wykryte w trakcie żądania kończy
// sesję lokalną: wiersz znika, ciasteczka wygasają, UI dostaje 401.
func TestAuthMiddleware_ExpiredUpstreamCredentialEndsSession(t *testing.T) {
	server := newTestServer("http://127.0.0.1:1")

	user, sess := createDBSession(t, "token")
	require.NoError(t, testStore.UpdateSessionCredential(
		context.Background(), sess.ID, "token", time.Now().Add(-1*time.Minute)))

	token, err := auth.GenerateJWT(sess.ID, user.Email, testJWTSecret)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.With(server.AuthMiddleware).Get("/api/v1/dashboard", server.DashboardHandler)

	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "Your external session has expired")

	deleted, err := testStore.GetSessionByID(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Nil(t, deleted)
}
