package upstream

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dismorfo/rsui/internal/session"
)

const fallbackFilename = "download"

// sniffLimit to tyle bajtów, ile mimetype potrzebuje do detekcji.
const sniffLimit = 3072

// Downloader przekazuje duży plik z upstream do przeglądarki bez
// buforowania całości w pamięci.
type Downloader struct {
	client *Client
}

func NewDownloader(client *Client) *Downloader {
	return &Downloader{client: client}
}

// ServeFile strumieniuje plik spod podanej ścieżki (względnej lub
// absolutnej) do klienta. Błąd wraca tylko dla niepowodzeń sprzed
// pierwszego wysłanego bajtu, kiedy wywołujący może jeszcze odpowiedzieć
// statusem diagnostycznym. Po rozpoczęciu strumienia błędy są już tylko
// logowane, bo statusu odpowiedzi nie da się cofnąć.
func (d *Downloader) ServeFile(w http.ResponseWriter, r *http.Request, store session.Store, rawPath string) error {
	fileURL := rawPath
	if strings.HasPrefix(fileURL, "http://") || strings.HasPrefix(fileURL, "https://") {
		// Absolutny adres akceptujemy wyłącznie pod skonfigurowanym
		// endpointem. Cokolwiek innego wysłałoby ciasteczko sesji
		// upstream na obcy host.
		if !strings.HasPrefix(fileURL, d.client.Endpoint()) {
			return ErrInvalidPath
		}
	} else {
		cleanPath, err := SanitizePath(rawPath)
		if err != nil {
			return err
		}
		fileURL = d.client.Endpoint() + cleanPath
	}

	filename := filenameFromURL(fileURL)

	// Znacznik intencji pobrania dla upstream.
	fileURL = appendQueryMarker(fileURL, "download", "true")

	resp, err := d.client.StreamGet(r.Context(), store, fileURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")

	if length := resp.Header.Get("Content-Length"); length != "" {
		w.Header().Set("Content-Length", length)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
		if _, err := io.Copy(w, resp.Body); err != nil {
			logMidStream(fileURL, err)
		}
		return nil
	}

	// Upstream nie podał typu: wąchamy początek strumienia i odsyłamy
	// przeczytane bajty razem z resztą ciała.
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(resp.Body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return &ConnectionError{Path: fileURL, Err: err}
	}
	head = head[:n]

	w.Header().Set("Content-Type", mimetype.Detect(head).String())

	if _, err := w.Write(head); err != nil {
		logMidStream(fileURL, err)
		return nil
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		logMidStream(fileURL, err)
	}
	return nil
}

func logMidStream(fileURL string, err error) {
	log.Printf("ERROR: przerwane strumieniowanie pobrania %s: %v", fileURL, err)
}

// filenameFromURL wyciąga nazwę pliku z adresu i czyści ją ze znaków,
// które rozsypałyby nagłówek Content-Disposition (cudzysłowy, ukośniki
// wsteczne, znaki sterujące).
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackFilename
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return fallbackFilename
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('_')
		case r < 0x20:
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallbackFilename
	}
	return b.String()
}

func appendQueryMarker(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
