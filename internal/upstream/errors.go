package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired oznacza brak lub wygaśnięcie tokena sesji upstream.
	// Warstwa HTTP tłumaczy go na wymuszenie ponownego logowania.
	ErrAuthExpired = errors.New("upstream session has expired")

	// ErrInvalidPath oznacza, że sanityzacja ścieżki nie zostawiła
	// żadnego segmentu. Warstwa HTTP odpowiada 404.
	ErrInvalidPath = errors.New("invalid path")

	// ErrMissingPartnerID oznacza odpowiedź kolekcji bez partner_id,
	// czyli naruszenie integralności danych po stronie upstream.
	ErrMissingPartnerID = errors.New("partner_id not set in collection response")
)

// RequestFailedError to odpowiedź upstream ze statusem spoza 2xx.
type RequestFailedError struct {
	Path   string
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("upstream request failed for %s: status %d", e.Path, e.Status)
}

// ConnectionError to błąd transportu (sieć, timeout), rozróżnialny od
// błędów poświadczenia i od odpowiedzi spoza 2xx.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("upstream connection error for %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// MalformedResponseError to odpowiedź 2xx, której ciała nie dało się
// zdekodować do oczekiwanego schematu.
type MalformedResponseError struct {
	Path string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response for %s: %v", e.Path, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
