package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"

	"github.com/dismorfo/rsui/internal/auth"
	"github.com/dismorfo/rsui/internal/database"
	"github.com/dismorfo/rsui/internal/upstream"
)

const refreshTokenCookie = "refresh_token"

// sessionLifetime to czas życia lokalnej sesji UI; klient odpytuje /ping,
// żeby ją przedłużać. Niezależny od terminu ważności poświadczenia
// upstream.
const sessionLifetime = 24 * time.Hour

type LoginRequest struct {
	Email    string `json:"email" example:"reader@example.org"`
	Password string `json:"password" example:"password123"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// @Summary      Logs a user in
// @Description  Authenticates against the external API sessions endpoint, captures the upstream auth cookie and creates a local session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  LoginResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Invalid credentials"
// @Failure      502            {string}  string "Connection error"
// @Router       /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := s.client.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var reqErr *upstream.RequestFailedError
		if errors.As(err, &reqErr) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("ERROR: logowanie w upstream nie powiodło się: %v", err)
		http.Error(w, "Connection error", http.StatusBadGateway)
		return
	}

	if result.Token == "" {
		log.Printf("ERROR: upstream nie zwrócił ciasteczka uwierzytelniającego przy logowaniu")
		http.Error(w, "Missing auth cookie from external API", http.StatusBadGateway)
		return
	}

	// Lokalne lustro użytkownika: losowe hasło, nigdy nie używane do
	// logowania.
	generatePassword, err := nanoid.Standard(32)
	if err != nil {
		log.Printf("CRITICAL: nie udało się zainicjować generatora nanoid: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	passwordHash, err := auth.HashPassword(generatePassword())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	name := result.Username
	if name == "" {
		name = "External User"
	}

	user, err := s.store.UpsertUser(r.Context(), req.Email, name, passwordHash)
	if err != nil {
		log.Printf("ERROR: nie udało się zapisać użytkownika %s: %v", req.Email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Sprzątanie przy okazji: wygasłe sesje nie mają już żadnej wartości.
	if err := s.store.DeleteExpiredSessions(r.Context()); err != nil {
		log.Printf("ERROR: nie udało się wyczyścić wygasłych sesji: %v", err)
	}

	generateID, _ := nanoid.Standard(40)
	refreshToken := generateID()

	sessionParams := database.CreateSessionParams{
		ID:                uuid.New(),
		UserID:            user.ID,
		RefreshToken:      refreshToken,
		UserAgent:         r.UserAgent(),
		ClientIP:          r.RemoteAddr,
		UpstreamToken:     result.Token,
		UpstreamExpiresAt: result.ExpiresAt,
		ExpiresAt:         time.Now().Add(sessionLifetime),
	}
	if err := s.store.CreateSession(r.Context(), sessionParams); err != nil {
		log.Printf("ERROR: nie udało się utworzyć sesji dla użytkownika %d: %v", user.ID, err)
		http.Error(w, "Failed to process login session", http.StatusInternalServerError)
		return
	}

	accessToken, err := auth.GenerateJWT(sessionParams.ID, user.Email, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	s.setAuthCookies(w, accessToken, refreshToken)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Email: user.Email, Name: user.Name})
}

// @Summary      Logs the user out
// @Description  Deletes the local session and expires the auth cookies. The upstream credential dies with the session row.
// @Tags         auth
// @Success      204  {null}    nil "No Content"
// @Failure      401  {string}  string "Unauthorized"
// @Router       /logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())

	if err := s.store.DeleteSessionByID(r.Context(), state.Session.ID); err != nil {
		log.Printf("ERROR: nie udało się usunąć sesji %s: %v", state.Session.ID, err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	s.expireAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Keep the local session alive
// @Description  Extends the local UI session without touching the upstream credential. Driven by the client-side session manager.
// @Tags         auth
// @Success      204  {null}    nil "No Content"
// @Failure      401  {string}  string "Unauthorized"
// @Router       /ping [post]
func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	state := GetSessionFromContext(r.Context())

	if err := s.store.ExtendSession(r.Context(), state.Session.ID, time.Now().Add(sessionLifetime)); err != nil {
		log.Printf("ERROR: nie udało się przedłużyć sesji %s: %v", state.Session.ID, err)
		http.Error(w, "Failed to extend session", http.StatusInternalServerError)
		return
	}

	// Świeży JWT, żeby ciasteczko dostępu nie wygasło przed sesją.
	accessToken, err := auth.GenerateJWT(state.Session.ID, state.Claims.Email, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Refresh the access token
// @Description  Exchanges a valid refresh token cookie for a new access token and a rotated refresh token.
// @Tags         auth
// @Success      204  {null}    nil "No Content"
// @Failure      401  {string}  string "Invalid or expired refresh token"
// @Router       /refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		http.Error(w, "Refresh token is required", http.StatusUnauthorized)
		return
	}

	sess, err := s.store.GetSessionByRefreshToken(r.Context(), cookie.Value)
	if err != nil {
		log.Printf("ERROR: nie udało się wczytać sesji po refresh tokenie: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if sess == nil {
		http.Error(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	user, err := s.store.GetUserByID(r.Context(), sess.UserID)
	if err != nil || user == nil {
		log.Printf("ERROR: nie udało się wczytać użytkownika %d dla sesji %s: %v", sess.UserID, sess.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	generateID, _ := nanoid.Standard(40)
	newRefreshToken := generateID()

	txErr := s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		if err := q.DeleteSessionByID(r.Context(), sess.ID); err != nil {
			return err
		}
		return q.CreateSession(r.Context(), database.CreateSessionParams{
			ID:                sess.ID,
			UserID:            sess.UserID,
			RefreshToken:      newRefreshToken,
			UserAgent:         r.UserAgent(),
			ClientIP:          r.RemoteAddr,
			UpstreamToken:     sess.UpstreamToken,
			UpstreamExpiresAt: sess.UpstreamExpiresAt,
			ExpiresAt:         time.Now().Add(sessionLifetime),
		})
	})
	if txErr != nil {
		log.Printf("ERROR: rotacja refresh tokena nie powiodła się: %v", txErr)
		http.Error(w, "Failed to refresh token", http.StatusInternalServerError)
		return
	}

	accessToken, err := auth.GenerateJWT(sess.ID, user.Email, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	s.setAuthCookies(w, accessToken, newRefreshToken)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
