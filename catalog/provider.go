// Package catalog holds the in-memory read-mostly stores the executor
// queries: providers with their availability grids, lab tests with per-lab
// offerings, bundled packages and synthesized collection slots.
package catalog

import (
	"sort"
	"strings"

	"medibook/geo"
	"medibook/models"
)

// ProviderCatalog exposes read-only provider queries. Slot consumption is
// the reservation engine's job, not the catalog's.
type ProviderCatalog interface {
	SearchProviders(origin models.Coordinates, query string, filters models.SearchFilters) []models.ProviderMatch
	GetProvider(id string) (*models.Provider, bool)
	Specialties() []string
}

// InMemoryProviderCatalog implements ProviderCatalog over a fixed set of
// providers built at startup. Reads are safe for concurrent use; the only
// post-build mutation is a slot's booked flag, which the reservation engine
// serializes per provider.
type InMemoryProviderCatalog struct {
	providers []*models.Provider // insertion order, used for ranking tie-breaks
	byID      map[string]*models.Provider
}

// NewInMemoryProviderCatalog builds a catalog from providers in the given order.
func NewInMemoryProviderCatalog(providers []*models.Provider) *InMemoryProviderCatalog {
	byID := make(map[string]*models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}
	return &InMemoryProviderCatalog{providers: providers, byID: byID}
}

// SearchProviders ranks matching providers by relevance score, descending.
// A candidate passes when the query is empty or matches specialty or name
// case-insensitively; MaxFee and MinRating are strict exclusions. Ties keep
// insertion order: the sort is stable and no secondary key is applied.
func (c *InMemoryProviderCatalog) SearchProviders(origin models.Coordinates, query string, filters models.SearchFilters) []models.ProviderMatch {
	q := strings.ToLower(strings.TrimSpace(query))

	var matches []models.ProviderMatch
	for _, p := range c.providers {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Specialty), q) &&
			!strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if filters.MaxFee != nil && p.Fees.InClinic > *filters.MaxFee {
			continue
		}
		if filters.MinRating != nil && p.Rating < *filters.MinRating {
			continue
		}

		dist := geo.Distance(origin, p.Location.Coordinates)
		availableToday := p.HasFreeSlotOn(0)
		matches = append(matches, models.ProviderMatch{
			Provider:       p,
			DistanceKm:     dist,
			Score:          geo.RelevanceScore(dist, p.Rating, availableToday),
			AvailableToday: availableToday,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// GetProvider is an exact lookup.
func (c *InMemoryProviderCatalog) GetProvider(id string) (*models.Provider, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Specialties returns the distinct specialty names in the catalog, in first
// appearance order.
func (c *InMemoryProviderCatalog) Specialties() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.providers {
		if !seen[p.Specialty] {
			seen[p.Specialty] = true
			out = append(out, p.Specialty)
		}
	}
	return out
}
