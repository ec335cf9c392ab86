package api

import (
	"context"
	"log"
	"net/http"

	"github.com/dismorfo/rsui/internal/auth"
	"github.com/dismorfo/rsui/internal/database"
	"github.com/dismorfo/rsui/internal/models"
	"github.com/dismorfo/rsui/internal/session"
	"github.com/dismorfo/rsui/internal/upstream"
)

type contextKey string

const sessionContextKey = contextKey("session")

const accessTokenCookie = "access_token"

// RequestSession to stan uwierzytelnionego żądania: claims z ciasteczka,
// wiersz sesji i magazyn poświadczenia upstream zbudowany na tym wierszu.
type RequestSession struct {
	Claims  *auth.AppClaims
	Session *models.Session
	Store   session.Store
}

// AuthMiddleware weryfikuje lokalną sesję (JWT w ciasteczku) i ładuje
// wiersz sesji z bazy. Wygaśnięte poświadczenie upstream kończy sesję
// lokalną i wymusza ponowne logowanie przed każdą chronioną stroną.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(accessTokenCookie)
		if err != nil || cookie.Value == "" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		claims, err := auth.VerifyJWT(cookie.Value, s.config.JWT.Secret)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		sess, err := s.store.GetSessionByID(r.Context(), claims.SessionID)
		if err != nil {
			log.Printf("ERROR: nie udało się wczytać sesji %s: %v", claims.SessionID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if sess == nil {
			s.expireAuthCookies(w)
			http.Error(w, "Session not found or expired", http.StatusUnauthorized)
			return
		}

		state := &RequestSession{
			Claims:  claims,
			Session: sess,
			Store:   database.NewSessionStore(r.Context(), s.store, sess),
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, state)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetSessionFromContext(ctx context.Context) *RequestSession {
	if state, ok := ctx.Value(sessionContextKey).(*RequestSession); ok {
		return state
	}
	return nil
}

// service buduje agregator zasobów dla bieżącego żądania.
func (s *Server) service(state *RequestSession) *upstream.Service {
	return upstream.NewService(s.client, state.Store, state.Session.ID.String())
}

func (s *Server) expireAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: refreshTokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

// handleAuthExpired zamyka lokalną sesję po wygaśnięciu poświadczenia
// upstream i odpowiada komunikatem, który UI pokazuje przy przekierowaniu
// na logowanie.
func (s *Server) handleAuthExpired(w http.ResponseWriter, r *http.Request, state *RequestSession) {
	if err := s.store.DeleteSessionByID(r.Context(), state.Session.ID); err != nil {
		log.Printf("ERROR: nie udało się usunąć wygasłej sesji %s: %v", state.Session.ID, err)
	}
	s.expireAuthCookies(w)
	http.Error(w, "Your external session has expired. Please log in again.", http.StatusUnauthorized)
}
