package catalog

import (
	"math/rand"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSlotConfig(home, lab float64) SlotConfig {
	return SlotConfig{
		HomeProbability: home,
		LabProbability:  lab,
		ClosedWeekday:   time.Sunday,
		// Tue 2026-08-25; the window Tue..Mon always contains one Sunday.
		Now:  func() time.Time { return time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC) },
		Rand: rand.New(rand.NewSource(1)),
	}
}

func testLab(id, name, category string, price int, home bool, bookings int) *models.LabTest {
	fee := 0
	if home {
		fee = 50
	}
	return &models.LabTest{
		ID:       id,
		Name:     name,
		Category: category,
		Offerings: []models.LabOffering{
			{LabID: "lab_001", LabName: "CityCare Labs", LabRating: 4.6, Price: price, HomeCollectionAvailable: home, HomeCollectionFee: fee},
			{LabID: "lab_002", LabName: "HealthFirst Diagnostics", LabRating: 4.4, Price: price + 100, HomeCollectionAvailable: home, HomeCollectionFee: fee},
		},
		Rating:       4.5,
		BookingCount: bookings,
	}
}

func newTestLabCatalog(t *testing.T, packages []*models.LabPackage, cfg SlotConfig) *InMemoryLabCatalog {
	t.Helper()
	tests := []*models.LabTest{
		testLab("test_blood_001", "Complete Blood Count (CBC)", "Blood Tests", 500, true, 900),
		testLab("test_blood_002", "Lipid Profile", "Blood Tests", 800, true, 700),
		testLab("test_blood_003", "HbA1c (Glycated Hemoglobin)", "Blood Tests", 600, true, 500),
		testLab("test_radio_001", "Chest X-Ray", "Radiology", 600, false, 300),
	}
	cat, err := NewInMemoryLabCatalog(tests, packages, DefaultLabCentres(), cfg)
	require.NoError(t, err)
	return cat
}

func TestSearchTestsMatchesAbbreviationAndCategory(t *testing.T) {
	cat := newTestLabCatalog(t, nil, fixedSlotConfig(1, 1))

	// "cbc" only appears inside the parentheses.
	got := cat.SearchTests("cbc", models.SearchFilters{})
	require.Len(t, got, 1)
	assert.Equal(t, "test_blood_001", got[0].ID)

	// Name substring, case-insensitive.
	got = cat.SearchTests("blood count", models.SearchFilters{})
	require.Len(t, got, 1)
	assert.Equal(t, "test_blood_001", got[0].ID)

	// Category substring matches all blood tests.
	got = cat.SearchTests("blood", models.SearchFilters{})
	assert.Len(t, got, 3)

	assert.Empty(t, cat.SearchTests("mri", models.SearchFilters{}))
}

func TestSearchTestsFilters(t *testing.T) {
	cat := newTestLabCatalog(t, nil, fixedSlotConfig(1, 1))

	maxPrice := 600
	got := cat.SearchTests("", models.SearchFilters{MaxPrice: &maxPrice})
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	// Lipid Profile's cheapest offering is 800 and drops out.
	assert.NotContains(t, ids, "test_blood_002")
	assert.Contains(t, ids, "test_blood_001")

	home := true
	got = cat.SearchTests("", models.SearchFilters{HomeCollection: &home})
	for _, r := range got {
		assert.NotEqual(t, "test_radio_001", r.ID, "X-Ray has no home collection")
	}
}

func TestSearchTestsSortsByPopularity(t *testing.T) {
	cat := newTestLabCatalog(t, nil, fixedSlotConfig(1, 1))

	got := cat.SearchTests("", models.SearchFilters{})
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].BookingCount, got[i].BookingCount)
	}
	assert.Equal(t, "test_blood_001", got[0].ID)
}

func TestRecommendPackageFirstMatchWins(t *testing.T) {
	packages := []*models.LabPackage{
		{
			ID: "pkg_001", Name: "Full Body Checkup",
			TestsIncluded: []string{"test_blood_001", "test_blood_002", "test_blood_003"},
			OriginalPrice: 1900, PackagePrice: 1235, Savings: 665,
		},
		{
			ID: "pkg_002", Name: "Diabetes Care Package",
			TestsIncluded: []string{"test_blood_003", "test_blood_001"},
			OriginalPrice: 1100, PackagePrice: 770, Savings: 330,
		},
	}
	cat := newTestLabCatalog(t, packages, fixedSlotConfig(1, 1))

	// Both packages overlap in >= 2 tests; creation order decides.
	pkg, ok := cat.RecommendPackage([]string{"test_blood_001", "test_blood_003"})
	require.True(t, ok)
	assert.Equal(t, "pkg_001", pkg.ID)

	// One shared test is not enough.
	_, ok = cat.RecommendPackage([]string{"test_blood_001", "test_radio_001"})
	assert.False(t, ok)

	_, ok = cat.RecommendPackage(nil)
	assert.False(t, ok)
}

func TestNewInMemoryLabCatalogRejectsBrokenPackages(t *testing.T) {
	tests := []*models.LabTest{
		testLab("test_blood_001", "Complete Blood Count (CBC)", "Blood Tests", 500, true, 900),
		testLab("test_blood_002", "Lipid Profile", "Blood Tests", 800, true, 700),
	}
	cases := []struct {
		name string
		pkg  *models.LabPackage
	}{
		{"too few tests", &models.LabPackage{ID: "pkg_x", TestsIncluded: []string{"test_blood_001"}}},
		{"duplicate test", &models.LabPackage{ID: "pkg_x", TestsIncluded: []string{"test_blood_001", "test_blood_001"}}},
		{"unknown test", &models.LabPackage{ID: "pkg_x", TestsIncluded: []string{"test_blood_001", "test_missing"}}},
		{"negative savings", &models.LabPackage{
			ID: "pkg_x", TestsIncluded: []string{"test_blood_001", "test_blood_002"},
			OriginalPrice: 1000, PackagePrice: 1200, Savings: -200,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInMemoryLabCatalog(tests, []*models.LabPackage{tc.pkg}, DefaultLabCentres(), fixedSlotConfig(1, 1))
			assert.Error(t, err)
		})
	}
}

func TestCollectionSlotsSkipClosedWeekdayAndMornings(t *testing.T) {
	cat := newTestLabCatalog(t, nil, fixedSlotConfig(1, 1))

	slots := cat.CollectionSlots(models.CollectionHome)
	// 7 days minus the Sunday, 4 morning slots each at probability 1.
	require.Len(t, slots, 24)
	for _, s := range slots {
		day, err := time.Parse("2006-01-02", s.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Sunday, day.Weekday())
		assert.True(t, s.Available)
		assert.Equal(t, models.CollectionHome, s.CollectionType)
		assert.Empty(t, s.LabName, "home slots carry no lab identity")
	}
	assert.Equal(t, "slot_2026-08-25_0800", slots[0].ID)
	assert.Equal(t, "08:00-09:00 AM", slots[0].TimeRange)
}

func TestCollectionSlotsZeroProbabilityYieldsNone(t *testing.T) {
	cat := newTestLabCatalog(t, nil, fixedSlotConfig(0, 0))
	assert.Empty(t, cat.CollectionSlots(models.CollectionHome))
	assert.Empty(t, cat.CollectionSlots(models.CollectionLabVisit))
}

func TestCollectionSlotsLabVisitCarriesCentreIdentity(t *testing.T) {
	cat := newTestLabCatalog(t, nil, fixedSlotConfig(1, 1))

	slots := cat.CollectionSlots(models.CollectionLabVisit)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, "CityCare Labs", s.LabName)
		assert.Equal(t, "Sector 12, Pune", s.LabAddress)
		assert.Equal(t, models.CollectionLabVisit, s.CollectionType)
	}
}

func TestCollectionSlotsReproducibleForSameSeed(t *testing.T) {
	// Two catalogs with identical slot config sample the same slots; the
	// sampling source is the only nondeterminism.
	first := newTestLabCatalog(t, nil, fixedSlotConfig(0.5, 0.5)).CollectionSlots(models.CollectionHome)
	second := newTestLabCatalog(t, nil, fixedSlotConfig(0.5, 0.5)).CollectionSlots(models.CollectionHome)
	assert.Equal(t, first, second)
}
