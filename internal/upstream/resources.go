package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dismorfo/rsui/internal/models"
	"github.com/dismorfo/rsui/internal/session"
)

// Service składa wywołania klienta upstream w obiekty domenowe dla
// warstwy UI. Tworzony per żądanie, z magazynem poświadczenia bieżącej
// sesji przekazanym jawnie.
type Service struct {
	client    *Client
	norm      *Normalizer
	store     session.Store
	sessionID string
}

func NewService(client *Client, store session.Store, sessionID string) *Service {
	return &Service{
		client:    client,
		norm:      NewNormalizer(client.Endpoint()),
		store:     store,
		sessionID: sessionID,
	}
}

func (s *Service) get(ctx context.Context, relPath string) ([]byte, error) {
	return s.client.Request(ctx, s.store, s.sessionID, http.MethodGet, relPath, nil)
}

func (s *Service) Partners(ctx context.Context) ([]models.Partner, error) {
	body, err := s.get(ctx, "partners")
	if err != nil {
		return nil, err
	}
	var partners []models.Partner
	if err := decode("partners", body, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// PartnerByID pobiera partnera i jego kolekcje i scala je w jeden
// obiekt. Każde niepowodzenie zwraca błąd zamiast obiektu częściowego,
// żeby UI nie renderowało partnera z niezdefiniowaną listą kolekcji.
func (s *Service) PartnerByID(ctx context.Context, id string) (*models.Partner, error) {
	body, err := s.get(ctx, "partners/"+id)
	if err != nil {
		return nil, err
	}
	var partner models.Partner
	if err := decode("partners/"+id, body, &partner); err != nil {
		return nil, err
	}

	collections, err := s.CollectionsByPartnerID(ctx, id)
	if err != nil {
		return nil, err
	}
	partner.Collections = collections

	return &partner, nil
}

func (s *Service) CollectionsByPartnerID(ctx context.Context, id string) ([]models.Collection, error) {
	relPath := fmt.Sprintf("partners/%s/colls", id)
	body, err := s.get(ctx, relPath)
	if err != nil {
		return nil, err
	}
	var collections []models.Collection
	if err := decode(relPath, body, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// CollectionByID pobiera kolekcję, wymaga partner_id w odpowiedzi,
// dociąga partnera i przepisuje storage_url na adres lokalny. Brak
// partner_id to błąd integralności danych upstream, nie stan lokalnie
// naprawialny.
func (s *Service) CollectionByID(ctx context.Context, id string) (*models.Collection, error) {
	body, err := s.get(ctx, "colls/"+id)
	if err != nil {
		return nil, err
	}
	var collection models.Collection
	if err := decode("colls/"+id, body, &collection); err != nil {
		return nil, err
	}

	if collection.PartnerID == "" {
		return nil, ErrMissingPartnerID
	}

	partnerBody, err := s.get(ctx, "partners/"+collection.PartnerID)
	if err != nil {
		return nil, err
	}
	var partner models.Partner
	if err := decode("partners/"+collection.PartnerID, partnerBody, &partner); err != nil {
		return nil, err
	}
	collection.Partner = &partner
	collection.StorageURL = s.norm.BrowseURL(collection.StorageURL)

	return &collection, nil
}

// Path zwraca znormalizowany węzeł magazynu pod podaną ścieżką. Ścieżka
// przechodzi przez sanityzację, a adresy węzła i wszystkich dzieci są
// przepisywane na lokalne, żeby przeglądarka nigdy nie widziała hosta
// upstream.
func (s *Service) Path(ctx context.Context, rawPath string) (*models.FileNode, error) {
	cleanPath, err := SanitizePath(rawPath)
	if err != nil {
		return nil, err
	}

	body, err := s.get(ctx, cleanPath)
	if err != nil {
		return nil, err
	}
	var node models.FileNode
	if err := decode(cleanPath, body, &node); err != nil {
		return nil, err
	}

	node.URL = BrowsePrefix + "/" + cleanPath
	for i := range node.Children {
		child := &node.Children[i]
		if child.URL != "" {
			child.URL = s.norm.BrowseURL(child.URL)
		}
		if child.DownloadURL != "" {
			child.DownloadURL = s.norm.DownloadURL(child.DownloadURL)
		}
	}

	return &node, nil
}

// BreadcrumbChain buduje historię nawigacji od korzenia magazynu
// kolekcji do bieżącego katalogu. Pierwszy wpis to zawsze korzeń
// kolekcji; adres każdego kolejnego wpisu to adres poprzedniego plus
// nazwa segmentu. Powtórzone nazwy segmentów są zwijane, żeby wadliwa
// ścieżka nie rozciągała okruszków w nieskończoność.
func (s *Service) BreadcrumbChain(partnerID, collectionID, rootName, relativePath string) []models.FileNode {
	rootURL := fmt.Sprintf("%s/paths/%s/%s", BrowsePrefix, partnerID, collectionID)
	chain := []models.FileNode{{
		Name:       rootName,
		ObjectType: models.ObjectTypeDirectory,
		URL:        rootURL,
	}}

	seen := map[string]bool{}
	currentURL := rootURL
	cleanPath, err := SanitizePath(relativePath)
	if err != nil {
		return chain
	}

	for _, segment := range splitPath(cleanPath) {
		if seen[segment] {
			continue
		}
		seen[segment] = true
		currentURL = currentURL + "/" + segment
		chain = append(chain, models.FileNode{
			Name:       segment,
			ObjectType: models.ObjectTypeDirectory,
			URL:        currentURL,
		})
	}

	return chain
}
