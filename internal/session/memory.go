package session

import (
	"sync"
	"time"
)

// MemoryStore trzyma poświadczenie w pamięci procesu. Używany w testach
// oraz wszędzie tam, gdzie sesja nie jest utrwalana w bazie.
type MemoryStore struct {
	mu   sync.Mutex
	cred *Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Credential() *Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil
	}
	cred := *m.cred
	return &cred
}

func (m *MemoryStore) Put(token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &Credential{Token: token, ExpiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	return nil
}
