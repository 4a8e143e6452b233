package storefront

import (
	"context"
	"strings"
	"sync"
)

// catalogClient is the slice of the collaborator the catalog needs.
type catalogClient interface {
	ListProducts(ctx context.Context, category string) ([]Product, error)
}

// CatalogStore holds the fetched product set for one view and exposes
// pure client-side filtering over it. A recommendation overlay can
// temporarily replace the visible list without touching the held set.
type CatalogStore struct {
	client catalogClient

	mu      sync.Mutex
	seq     uint64
	loaded  bool
	held    []Product
	overlay []Product
}

// NewCatalogStore builds a catalog view backed by the collaborator.
func NewCatalogStore(client catalogClient) (*CatalogStore, error) {
	if client == nil {
		return nil, newError(KindValidation, "catalog client is required")
	}
	return &CatalogStore{client: client}, nil
}

// Load fetches the category's products and replaces the held set. A
// failed refresh keeps the previous set; a failed first load leaves the
// set empty. A load superseded by a newer one is discarded, never
// applied over the newer result.
func (s *CatalogStore) Load(ctx context.Context, category string) error {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.mu.Unlock()

	products, err := s.client.ListProducts(ctx, category)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// A newer load superseded this one.
		return nil
	}
	if err != nil {
		if !s.loaded {
			s.held = nil
		}
		return wrapError(KindNetwork, err, "load catalog")
	}
	s.held = products
	s.loaded = true
	s.overlay = nil
	return nil
}

// Products returns the held set.
func (s *CatalogStore) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.held...)
}

// Filter projects the held set down to products whose name or
// description contains term case-insensitively. An empty term yields the
// full held set. Filtering never fetches and never mutates the held set.
func (s *CatalogStore) Filter(term string) []Product {
	s.mu.Lock()
	held := append([]Product(nil), s.held...)
	s.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return held
	}

	var matched []Product
	for _, p := range held {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

// ShowRecommendations replaces the visible list with an advisory pick.
// The held set is untouched.
func (s *CatalogStore) ShowRecommendations(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = append([]Product(nil), products...)
}

// ClearRecommendations reverts the visible list to the held set. Any
// plain filter operation supersedes the overlay the same way.
func (s *CatalogStore) ClearRecommendations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = nil
}

// Visible returns what the view should render: the recommendation
// overlay when one is active, otherwise the held set filtered by term.
func (s *CatalogStore) Visible(term string) []Product {
	s.mu.Lock()
	overlay := s.overlay
	s.mu.Unlock()

	if overlay != nil {
		return append([]Product(nil), overlay...)
	}
	return s.Filter(term)
}
