package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dismorfo/rsui/internal/models"
	"github.com/dismorfo/rsui/internal/session"
)

// SessionStore to magazyn poświadczenia jednej sesji, oparty o wiersz
// w tabeli sessions. Żyje przez jedno żądanie HTTP: odczyty idą z kopii
// załadowanej przy wejściu, zapis rotacji trafia od razu do bazy i do
// kopii, więc drugie wywołanie w tym samym żądaniu widzi nowy token.
type SessionStore struct {
	ctx       context.Context
	store     *Store
	sessionID uuid.UUID
	cred      *session.Credential
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(ctx context.Context, store *Store, sess *models.Session) *SessionStore {
	var cred *session.Credential
	if sess.UpstreamToken != "" {
		cred = &session.Credential{
			Token:     sess.UpstreamToken,
			ExpiresAt: sess.UpstreamExpiresAt,
		}
	}
	return &SessionStore{
		ctx:       ctx,
		store:     store,
		sessionID: sess.ID,
		cred:      cred,
	}
}

func (s *SessionStore) Credential() *session.Credential {
	if s.cred == nil {
		return nil
	}
	cred := *s.cred
	return &cred
}

func (s *SessionStore) Put(token string, expiresAt time.Time) error {
	if err := s.store.UpdateSessionCredential(s.ctx, s.sessionID, token, expiresAt); err != nil {
		return err
	}
	s.cred = &session.Credential{Token: token, ExpiresAt: expiresAt}
	return nil
}

func (s *SessionStore) Clear() error {
	if err := s.store.ClearSessionCredential(s.ctx, s.sessionID); err != nil {
		return err
	}
	s.cred = nil
	return nil
}
