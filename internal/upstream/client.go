package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dismorfo/rsui/internal/config"
	"github.com/dismorfo/rsui/internal/session"
)

// AuthCookieName to nazwa ciasteczka sesyjnego API zewnętrznego. Upstream
// wydaje je przy logowaniu i rotuje przy kolejnych wywołaniach.
const AuthCookieName = "Authorization"

// streamTimeout ogranicza pobrania dużych plików; celowo dużo dłuższy niż
// timeout wywołań metadanych.
const streamTimeout = 1 * time.Hour

// Client wykonuje uwierzytelnione wywołania HTTP do API zewnętrznego
// i utrzymuje magazyn poświadczenia w synchronizacji z rotacją
// ciasteczka. Współdzielony między żądaniami; stan sesji przychodzi
// z zewnątrz per wywołanie.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
	streaming *http.Client
	cache     *ResponseCache
}

func NewClient(cfg config.UpstreamConfig, cache *ResponseCache) *Client {
	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout()},
		streaming: &http.Client{Timeout: streamTimeout},
		cache:     cache,
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

type RequestOptions struct {
	Query url.Values
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
}

// Login wywołuje POST {endpoint}sessions i wyciąga ciasteczko
// Authorization z odpowiedzi. To jedyne wywołanie wysyłane bez
// wcześniejszego poświadczenia.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectionError{Path: "sessions", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Path: "sessions", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestFailedError{Path: "sessions", Status: resp.StatusCode, Body: string(body)}
	}

	result := &LoginResult{}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == AuthCookieName {
			result.Token = cookie.Value
			result.ExpiresAt = cookie.Expires
			break
		}
	}

	var data struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &data); err == nil {
		result.Username = data.Username
	}

	return result, nil
}

// Request wykonuje jedno uwierzytelnione wywołanie metadanych.
// Kolejność jest częścią kontraktu: walidacja poświadczenia → (odczyt
// cache) → wysyłka → zapis zrotowanego tokena → zwrot ciała. Każdy,
// kto zaraz potem wyśle drugie żądanie, widzi już nowy token.
func (c *Client) Request(ctx context.Context, store session.Store, sessionID, method, relPath string, opts *RequestOptions) ([]byte, error) {
	cred := store.Credential()
	if !cred.Valid(time.Now()) {
		return nil, ErrAuthExpired
	}

	var query url.Values
	if opts != nil {
		query = opts.Query
	}

	if method == http.MethodGet {
		if body, ok := c.cache.Get(sessionID, method, relPath, query); ok {
			return body, nil
		}
	}

	fullURL := c.endpoint + strings.TrimPrefix(relPath, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: cred.Token})

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("ERROR: błąd połączenia z upstream dla %s: %v", relPath, err)
		return nil, &ConnectionError{Path: relPath, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("ERROR: nie udało się odczytać odpowiedzi upstream dla %s: %v", relPath, err)
		return nil, &ConnectionError{Path: relPath, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("ERROR: żądanie upstream %s %s zakończone statusem %d: %s", method, relPath, resp.StatusCode, body)
		return nil, &RequestFailedError{Path: relPath, Status: resp.StatusCode, Body: string(body)}
	}

	c.rotateCredential(store, cred, resp)

	if method == http.MethodGet {
		c.cache.Put(sessionID, method, relPath, query, body)
	}

	return body, nil
}

// rotateCredential zapisuje zrotowany token z odpowiedzi. Brak atrybutu
// Expires w ciasteczku nie unieważnia sesji; zostaje poprzedni termin,
// bo to upstream jest źródłem prawdy o wygaśnięciu.
func (c *Client) rotateCredential(store session.Store, prev *session.Credential, resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != AuthCookieName || cookie.Value == "" {
			continue
		}
		expiresAt := cookie.Expires
		if expiresAt.IsZero() {
			expiresAt = prev.ExpiresAt
		}
		if err := store.Put(cookie.Value, expiresAt); err != nil {
			log.Printf("ERROR: nie udało się zapisać zrotowanego tokena sesji: %v", err)
		}
		return
	}
}

// StreamGet otwiera długotrwałe pobranie pod bieżącym poświadczeniem.
// Wywołujący zamyka Body; anulowanie ctx zrywa połączenie z upstream.
func (c *Client) StreamGet(ctx context.Context, store session.Store, rawURL string) (*http.Response, error) {
	cred := store.Credential()
	if !cred.Valid(time.Now()) {
		return nil, ErrAuthExpired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: cred.Token})

	resp, err := c.streaming.Do(req)
	if err != nil {
		return nil, &ConnectionError{Path: rawURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &RequestFailedError{Path: rawURL, Status: resp.StatusCode, Body: string(body)}
	}

	c.rotateCredential(store, cred, resp)

	return resp, nil
}

func decode(path string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponseError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
