package upstream

import (
	"regexp"
	"strings"
)

const (
	BrowsePrefix   = "/fs"
	DownloadPrefix = "/download"
	PreviewPrefix  = "/preview"
)

var segmentCharset = regexp.MustCompile(`[^A-Za-z0-9._-]`)
var dotsOnly = regexp.MustCompile(`^\.+$`)

// SanitizePath to jedyna obrona przed path traversal i wstrzykiwaniem
// nagłówków przez ścieżki nawigowane z przeglądarki. Z każdego segmentu
// usuwa znaki spoza [A-Za-z0-9._-], odrzuca segmenty puste i złożone z
// samych kropek, resztę skleja z powrotem ukośnikami.
func SanitizePath(path string) (string, error) {
	var clean []string
	for _, segment := range strings.Split(path, "/") {
		segment = segmentCharset.ReplaceAllString(segment, "")
		if segment == "" || dotsOnly.MatchString(segment) {
			continue
		}
		clean = append(clean, segment)
	}
	if len(clean) == 0 {
		return "", ErrInvalidPath
	}
	return strings.Join(clean, "/"), nil
}

// Normalizer przepisuje absolutne adresy zasobów upstream na lokalne
// adresy aplikacji. Adresy spoza skonfigurowanego endpointu wracają bez
// zmian (są już lokalne albo obce), więc przepisanie jest idempotentne.
type Normalizer struct {
	endpoint string
}

func NewNormalizer(endpoint string) *Normalizer {
	return &Normalizer{endpoint: endpoint}
}

func (n *Normalizer) rewrite(absoluteURL, localPrefix string) string {
	if n.endpoint == "" || !strings.HasPrefix(absoluteURL, n.endpoint) {
		return absoluteURL
	}
	rest := strings.TrimPrefix(absoluteURL, n.endpoint)
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return localPrefix
	}
	return localPrefix + "/" + rest
}

func (n *Normalizer) BrowseURL(absoluteURL string) string {
	return n.rewrite(absoluteURL, BrowsePrefix)
}

func (n *Normalizer) DownloadURL(absoluteURL string) string {
	return n.rewrite(absoluteURL, DownloadPrefix)
}

func (n *Normalizer) PreviewURL(absoluteURL string) string {
	return n.rewrite(absoluteURL, PreviewPrefix)
}

func splitPath(cleanPath string) []string {
	if cleanPath == "" {
		return nil
	}
	return strings.Split(cleanPath, "/")
}
