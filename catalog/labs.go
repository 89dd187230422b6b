package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"medibook/models"
)

// LabCentre is a seeded diagnostic lab. Its terms for individual tests live
// on each test as offerings; the centre itself is kept for lab-visit slots.
type LabCentre struct {
	ID            string
	Name          string
	Address       string
	Rating        float64
	Accreditation string
}

// LabCatalog exposes read-only lab test queries plus collection-slot
// synthesis. Collection slots are transient: regenerated per call, never
// consumed by a booking.
type LabCatalog interface {
	SearchTests(query string, filters models.SearchFilters) []models.LabTest
	GetTest(id string) (*models.LabTest, bool)
	GetPackage(id string) (*models.LabPackage, bool)
	RecommendPackage(testIDs []string) (*models.LabPackage, bool)
	CollectionSlots(collectionType models.CollectionType) []models.CollectionSlot
}

// SlotConfig controls collection-slot synthesis. The sampling source is
// injected so tests can pin a seed or force the probabilities to 0 or 1.
type SlotConfig struct {
	HomeProbability float64      // default 0.8
	LabProbability  float64      // default 0.7
	ClosedWeekday   time.Weekday // no collections on this day
	Now             func() time.Time
	Rand            *rand.Rand
}

// InMemoryLabCatalog implements LabCatalog over fixtures built at startup.
type InMemoryLabCatalog struct {
	tests      []*models.LabTest // insertion order
	testsByID  map[string]*models.LabTest
	packages   []*models.LabPackage // creation order, drives recommendation
	pkgsByID   map[string]*models.LabPackage
	centres    []LabCentre
	slotCfg    SlotConfig
	mu         sync.Mutex // guards slotCfg.Rand, which is not concurrency-safe
}

// NewInMemoryLabCatalog builds the catalog and validates package structure.
// A package referencing a missing test, containing duplicates, holding fewer
// than two tests or priced above its original price is a startup failure,
// not a request-time one.
func NewInMemoryLabCatalog(tests []*models.LabTest, packages []*models.LabPackage, centres []LabCentre, slotCfg SlotConfig) (*InMemoryLabCatalog, error) {
	testsByID := make(map[string]*models.LabTest, len(tests))
	for _, t := range tests {
		testsByID[t.ID] = t
	}
	for _, pkg := range packages {
		if len(pkg.TestsIncluded) < 2 {
			return nil, fmt.Errorf("package %s: needs at least 2 tests, has %d", pkg.ID, len(pkg.TestsIncluded))
		}
		seen := make(map[string]bool, len(pkg.TestsIncluded))
		for _, id := range pkg.TestsIncluded {
			if seen[id] {
				return nil, fmt.Errorf("package %s: duplicate test %s", pkg.ID, id)
			}
			seen[id] = true
			if _, ok := testsByID[id]; !ok {
				return nil, fmt.Errorf("package %s: references unknown test %s", pkg.ID, id)
			}
		}
		if pkg.Savings < 0 || pkg.PackagePrice > pkg.OriginalPrice {
			return nil, fmt.Errorf("package %s: negative savings (original %d, package %d)", pkg.ID, pkg.OriginalPrice, pkg.PackagePrice)
		}
	}

	pkgsByID := make(map[string]*models.LabPackage, len(packages))
	for _, p := range packages {
		pkgsByID[p.ID] = p
	}
	if slotCfg.Now == nil {
		slotCfg.Now = time.Now
	}
	if slotCfg.Rand == nil {
		slotCfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &InMemoryLabCatalog{
		tests:     tests,
		testsByID: testsByID,
		packages:  packages,
		pkgsByID:  pkgsByID,
		centres:   centres,
		slotCfg:   slotCfg,
	}, nil
}

// parenAbbrev extracts the abbreviation from a parenthesized suffix, so
// "Complete Blood Count (CBC)" is discoverable by "cbc".
func parenAbbrev(name string) string {
	open := strings.Index(name, "(")
	if open < 0 {
		return ""
	}
	end := strings.Index(name[open:], ")")
	if end < 0 {
		return ""
	}
	return strings.ToLower(name[open+1 : open+end])
}

// SearchTests matches the query against test name, category or the
// parenthesized abbreviation, applies the filters as exclusions, and sorts
// by popularity descending with insertion-order ties.
func (c *InMemoryLabCatalog) SearchTests(query string, filters models.SearchFilters) []models.LabTest {
	q := strings.ToLower(strings.TrimSpace(query))

	var results []models.LabTest
	for _, t := range c.tests {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) &&
			!strings.Contains(parenAbbrev(t.Name), q) {
			continue
		}
		if filters.MaxPrice != nil && t.MinPrice() > *filters.MaxPrice {
			continue
		}
		if filters.HomeCollection != nil && *filters.HomeCollection && !t.HomeCollectionAvailable() {
			continue
		}
		if filters.MinRating != nil && t.Rating < *filters.MinRating {
			continue
		}
		results = append(results, *t)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].BookingCount > results[j].BookingCount
	})
	return results
}

// GetTest is an exact lookup.
func (c *InMemoryLabCatalog) GetTest(id string) (*models.LabTest, bool) {
	t, ok := c.testsByID[id]
	return t, ok
}

// GetPackage is an exact lookup.
func (c *InMemoryLabCatalog) GetPackage(id string) (*models.LabPackage, bool) {
	p, ok := c.pkgsByID[id]
	return p, ok
}

// RecommendPackage returns the first package, in creation order, whose
// included tests overlap the selection in at least two elements. First
// match wins; this is not a best-discount search.
func (c *InMemoryLabCatalog) RecommendPackage(testIDs []string) (*models.LabPackage, bool) {
	selected := make(map[string]bool, len(testIDs))
	for _, id := range testIDs {
		selected[id] = true
	}
	for _, pkg := range c.packages {
		overlap := 0
		for _, id := range pkg.TestsIncluded {
			if selected[id] {
				overlap++
			}
		}
		if overlap >= 2 {
			return pkg, true
		}
	}
	return nil, false
}

// CollectionSlots synthesizes morning slots for the next 7 days, skipping
// the closed weekday. Each slot's availability is sampled independently
// from the injected source; only available slots are returned.
func (c *InMemoryLabCatalog) CollectionSlots(collectionType models.CollectionType) []models.CollectionSlot {
	c.mu.Lock()
	defer c.mu.Unlock()

	prob := c.slotCfg.LabProbability
	if collectionType == models.CollectionHome {
		prob = c.slotCfg.HomeProbability
	}

	var centre *LabCentre
	if collectionType == models.CollectionLabVisit && len(c.centres) > 0 {
		centre = &c.centres[0]
	}

	base := c.slotCfg.Now()
	var slots []models.CollectionSlot
	for offset := 0; offset < 7; offset++ {
		day := base.AddDate(0, 0, offset)
		if day.Weekday() == c.slotCfg.ClosedWeekday {
			continue
		}
		date := day.Format("2006-01-02")
		for _, hour := range []int{8, 9, 10, 11} {
			if c.slotCfg.Rand.Float64() >= prob {
				continue
			}
			slot := models.CollectionSlot{
				ID:             fmt.Sprintf("slot_%s_%02d00", date, hour),
				Date:           date,
				TimeRange:      fmt.Sprintf("%02d:00-%02d:00 AM", hour, hour+1),
				CollectionType: collectionType,
				Available:      true,
			}
			if centre != nil {
				slot.LabName = centre.Name
				slot.LabAddress = centre.Address
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
