package session

import "time"

// Credential przechowuje nieprzezroczysty token sesji API zewnętrznego
// razem z jego terminem ważności. Źródłem prawdy o wygaśnięciu jest
// atrybut Expires ciasteczka zwróconego przez upstream.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.Token == "" {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.Before(c.ExpiresAt)
}

// Store to magazyn poświadczenia powiązany z sesją jednego użytkownika.
// Jedynym komponentem, który go modyfikuje, jest klient upstream
// (rotacja ciasteczka); wszyscy pozostali tylko czytają.
type Store interface {
	Credential() *Credential
	Put(token string, expiresAt time.Time) error
	Clear() error
}
