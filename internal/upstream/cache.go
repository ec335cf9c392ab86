package upstream

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache to krótkotrwały cache odpowiedzi metadanych, klucz to
// (id sesji, metoda, ścieżka, skrót opcji). Cache jest wyłącznie
// optymalizacją serii nawigacji i nigdy nie maskuje błędów poświadczenia
// ani odpowiedzi spoza 2xx, bo walidacja sesji dzieje się przed odczytem.
//
// Odczyt jest włączany flagą konfiguracyjną (domyślnie wyłączony, żeby
// każda odpowiedź niosła świeżo zrotowane ciasteczko); zapis działa
// zawsze, więc włączenie odczytu to czysta zmiana konfiguracji.
type ResponseCache struct {
	cache       *gocache.Cache
	readEnabled bool
}

func NewResponseCache(ttl time.Duration, readEnabled bool) *ResponseCache {
	return &ResponseCache{
		cache:       gocache.New(ttl, 2*ttl),
		readEnabled: readEnabled,
	}
}

func cacheKey(sessionID, method, path string, query url.Values) string {
	h := fnv.New64a()
	h.Write([]byte(query.Encode()))
	return fmt.Sprintf("%s|%s|%s|%x", sessionID, method, path, h.Sum64())
}

func (rc *ResponseCache) Get(sessionID, method, path string, query url.Values) ([]byte, bool) {
	if rc == nil || !rc.readEnabled {
		return nil, false
	}
	v, ok := rc.cache.Get(cacheKey(sessionID, method, path, query))
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

func (rc *ResponseCache) Put(sessionID, method, path string, query url.Values, body []byte) {
	if rc == nil {
		return
	}
	rc.cache.SetDefault(cacheKey(sessionID, method, path, query), body)
}
