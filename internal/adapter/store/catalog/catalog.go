// Package catalog resolves refractive indices from the built-in Sellmeier
// medium catalog.
package catalog

import (
	"fmt"

	"go.scopelab.io/focus-api/internal/domain"
)

// Store implements index lookup against domain.StandardMedia. It needs no
// external data and serves as the fallback when no dispersion tables are
// configured.
type Store struct{}

// NewStore creates a catalog-backed index store.
func NewStore() *Store {
	return &Store{}
}

// IndexAt evaluates the Sellmeier equation of a catalog medium.
func (s *Store) IndexAt(medium string, lambdaNm float64) (float64, error) {
	m, ok := domain.GetMedium(medium)
	if !ok {
		return 0, fmt.Errorf("unknown medium %q (known: %v)", medium, s.names())
	}
	return m.IndexAt(lambdaNm)
}

// ListMedia returns the catalog medium names.
func (s *Store) ListMedia() ([]string, error) {
	return s.names(), nil
}

func (s *Store) names() []string {
	media := domain.AllMedia()
	names := make([]string, len(media))
	for i, m := range media {
		names[i] = m.Name
	}
	return names
}
