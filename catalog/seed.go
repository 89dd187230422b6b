package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"medibook/models"
)

// FixtureConfig controls catalog seeding. The same seed always produces the
// same catalog.
type FixtureConfig struct {
	Seed                 int64
	HomeCollectionFee    int
	FullBodyDiscount     float64
	DiabetesCareDiscount float64
	HeartHealthDiscount  float64
	StartDate            time.Time // day 0 of availability grids; zero means today
}

var specialties = []string{
	"Dermatologist", "General Physician", "Pediatrician",
	"Orthopedist", "Cardiologist", "Dentist",
}

var surnames = []string{"Sharma", "Patel", "Gupta", "Singh", "Deshmukh", "Kulkarni"}

// Pune city centre; providers are scattered within roughly 10 km.
const (
	baseLat = 18.5204
	baseLng = 73.8567
)

// BuildProviders generates 20 mock doctors with 7-day availability grids.
func BuildProviders(cfg FixtureConfig) []*models.Provider {
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := cfg.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	providers := make([]*models.Provider, 0, 20)
	for i := 1; i <= 20; i++ {
		coords, err := models.NewCoordinates(
			baseLat+rng.Float64()*0.18-0.09,
			baseLng+rng.Float64()*0.18-0.09,
		)
		if err != nil {
			// Offsets are bounded well inside the valid ranges.
			panic(err)
		}
		providers = append(providers, &models.Provider{
			ID:              fmt.Sprintf("doc_%03d", i),
			Name:            fmt.Sprintf("Dr. %s (%d)", surnames[rng.Intn(len(surnames))], i),
			Specialty:       specialties[rng.Intn(len(specialties))],
			Qualifications:  []string{"MBBS", "MD"},
			ExperienceYears: 3 + rng.Intn(23),
			Languages:       []string{"English", "Hindi", "Marathi"},
			Location: models.Location{
				City:        "Pune",
				ClinicName:  fmt.Sprintf("Clinic %d", i),
				Address:     fmt.Sprintf("Sector %d, Pune", 1+rng.Intn(50)),
				Coordinates: coords,
			},
			Fees: models.Fees{
				Online:   []int{400, 500, 800}[rng.Intn(3)],
				InClinic: []int{800, 1000, 1500}[rng.Intn(3)],
			},
			Rating:       math.Round((3.5+rng.Float64()*1.5)*10) / 10,
			ReviewsCount: 50 + rng.Intn(451),
			Availability: buildAvailability(rng, start),
		})
	}
	return providers
}

// buildAvailability generates 7 days with 4 fixed slots each; roughly a
// third start out booked.
func buildAvailability(rng *rand.Rand, start time.Time) []models.DayAvailability {
	times := [][2]string{
		{"10:00", "10:30"}, {"11:00", "11:30"}, {"17:00", "17:30"}, {"18:00", "18:30"},
	}
	days := make([]models.DayAvailability, 0, 7)
	for d := 0; d < 7; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		slots := make([]models.Slot, 0, len(times))
		for idx, tr := range times {
			slots = append(slots, models.Slot{
				ID:        fmt.Sprintf("slot_%d_%d", d, idx),
				StartTime: tr[0],
				EndTime:   tr[1],
				Booked:    rng.Intn(3) == 0,
			})
		}
		days = append(days, models.DayAvailability{Date: date, Slots: slots})
	}
	return days
}

// DefaultLabCentres are the seeded diagnostic labs offering the tests.
func DefaultLabCentres() []LabCentre {
	return []LabCentre{
		{ID: "lab_001", Name: "CityCare Labs", Address: "Sector 12, Pune", Rating: 4.6, Accreditation: "NABL"},
		{ID: "lab_002", Name: "HealthFirst Diagnostics", Address: "FC Road, Pune", Rating: 4.4, Accreditation: "NABL"},
		{ID: "lab_003", Name: "Apex Pathology", Address: "Baner, Pune", Rating: 4.2, Accreditation: "CAP"},
	}
}

type testSeed struct {
	name       string
	category   string
	sample     string
	fasting    bool
	prep       string
	params     int
	basePrice  int
	home       bool
	minPopular int
	maxPopular int
}

var testSeeds = []testSeed{
	// Blood tests.
	{"Complete Blood Count (CBC)", "Blood Tests", "Blood", false, "No special preparation", 25, 500, true, 100, 1000},
	{"Lipid Profile", "Blood Tests", "Blood", true, "12-14 hours fasting required", 8, 800, true, 100, 1000},
	{"Thyroid Profile (TSH, T3, T4)", "Blood Tests", "Blood", false, "Can be done anytime", 3, 700, true, 100, 1000},
	{"HbA1c (Glycated Hemoglobin)", "Blood Tests", "Blood", false, "No fasting needed", 1, 600, true, 100, 1000},
	{"Liver Function Test (LFT)", "Blood Tests", "Blood", true, "8-12 hours fasting", 12, 900, true, 100, 1000},
	{"Kidney Function Test (KFT)", "Blood Tests", "Blood", true, "8 hours fasting", 8, 850, true, 100, 1000},
	{"Vitamin D (25-OH)", "Blood Tests", "Blood", false, "No preparation needed", 1, 1200, true, 100, 1000},
	{"Vitamin B12", "Blood Tests", "Blood", false, "No preparation", 1, 900, true, 100, 1000},
	{"Iron Studies", "Blood Tests", "Blood", true, "Morning sample preferred", 3, 1100, true, 100, 1000},
	{"Erythrocyte Sedimentation Rate (ESR)", "Blood Tests", "Blood", false, "No preparation", 1, 200, true, 100, 1000},
	{"C-Reactive Protein (CRP)", "Blood Tests", "Blood", false, "No preparation", 1, 500, true, 100, 1000},
	{"Fasting Blood Sugar (FBS)", "Blood Tests", "Blood", true, "8-12 hours fasting required", 1, 150, true, 100, 1000},
	{"Post-Prandial Blood Sugar (PPBS)", "Blood Tests", "Blood", false, "Test after 2 hours of meal", 1, 150, false, 100, 1000},
	// Radiology, lab visit only.
	{"Chest X-Ray", "Radiology", "Image", false, "Remove metal objects", 1, 600, false, 50, 500},
	{"Knee X-Ray", "Radiology", "Image", false, "No special preparation", 1, 550, false, 50, 500},
	{"Abdominal Ultrasound", "Radiology", "Image", true, "6 hours fasting, full bladder", 1, 1400, false, 50, 500},
	{"CT Scan Head", "Radiology", "Image", false, "Remove metal objects", 1, 2800, false, 50, 500},
	{"MRI Spine", "Radiology", "Image", false, "Inform about implants", 1, 2600, false, 50, 500},
	{"Electrocardiogram (ECG)", "Radiology", "Graph", false, "Wear loose clothing", 1, 400, false, 50, 500},
	// Specialized.
	{"COVID-19 RT-PCR", "Specialized Tests", "Nasal Swab", false, "No eating/drinking 30 mins before", 1, 1200, true, 100, 800},
	{"Dengue NS1 Antigen", "Specialized Tests", "Blood", false, "No preparation", 1, 800, true, 100, 800},
	{"Malaria Antigen", "Specialized Tests", "Blood", false, "No preparation", 1, 500, true, 100, 800},
	{"Pregnancy Test (Beta HCG)", "Specialized Tests", "Blood", false, "Morning sample preferred", 1, 600, true, 100, 800},
	{"Allergy Panel (Basic)", "Specialized Tests", "Blood", false, "No preparation", 4, 2500, true, 100, 800},
}

var turnarounds = []string{"Same day", "24 hours", "48 hours"}

// BuildLabTests generates the test catalogue with 2-3 offerings per test.
// Each test's displayed rating is fixed here as the mean of its offering
// lab ratings; readers never recompute it.
func BuildLabTests(cfg FixtureConfig, centres []LabCentre) []*models.LabTest {
	rng := rand.New(rand.NewSource(cfg.Seed + 1))

	counters := map[string]int{}
	prefixes := map[string]string{
		"Blood Tests":       "blood",
		"Radiology":         "radio",
		"Specialized Tests": "spec",
	}

	tests := make([]*models.LabTest, 0, len(testSeeds))
	for _, seed := range testSeeds {
		counters[seed.category]++
		id := fmt.Sprintf("test_%s_%03d", prefixes[seed.category], counters[seed.category])

		nOfferings := 2 + rng.Intn(len(centres)-1)
		offerings := make([]models.LabOffering, 0, nOfferings)
		ratingSum := 0.0
		for i := 0; i < nOfferings; i++ {
			centre := centres[i]
			// Price varies up to ±15% per lab around the base price.
			price := seed.basePrice + int(float64(seed.basePrice)*(rng.Float64()*0.3-0.15))
			offerings = append(offerings, models.LabOffering{
				LabID:                   centre.ID,
				LabName:                 centre.Name,
				LabRating:               centre.Rating,
				LabLocation:             centre.Address,
				Price:                   price,
				HomeCollectionAvailable: seed.home,
				HomeCollectionFee:       homeFee(seed.home, cfg.HomeCollectionFee),
				TurnaroundTime:          turnarounds[rng.Intn(len(turnarounds))],
				Accreditation:           centre.Accreditation,
			})
			ratingSum += centre.Rating
		}

		tests = append(tests, &models.LabTest{
			ID:                      id,
			Name:                    seed.name,
			Category:                seed.category,
			SampleType:              seed.sample,
			FastingRequired:         seed.fasting,
			PreparationInstructions: seed.prep,
			ParametersCount:         seed.params,
			Offerings:               offerings,
			Rating:                  math.Round(ratingSum/float64(nOfferings)*100) / 100,
			BookingCount:            seed.minPopular + rng.Intn(seed.maxPopular-seed.minPopular+1),
		})
	}
	return tests
}

func homeFee(available bool, fee int) int {
	if !available {
		return 0
	}
	return fee
}

type packageSeed struct {
	id          string
	name        string
	description string
	category    string
	popular     bool
	discount    float64
	testNames   []string
}

// BuildLabPackages assembles the bundled packages from already-built tests.
// A missing constituent test is a fixture error, surfaced immediately.
func BuildLabPackages(cfg FixtureConfig, tests []*models.LabTest) ([]*models.LabPackage, error) {
	seeds := []packageSeed{
		{
			id: "pkg_001", name: "Full Body Checkup",
			description: "Comprehensive health screening covering all major organs",
			category:    "Health Checkup", popular: true, discount: cfg.FullBodyDiscount,
			testNames: []string{
				"Complete Blood Count (CBC)", "Lipid Profile",
				"Thyroid Profile (TSH, T3, T4)", "Liver Function Test (LFT)",
				"Kidney Function Test (KFT)",
			},
		},
		{
			id: "pkg_002", name: "Diabetes Care Package",
			description: "Essential tests for diabetes monitoring and management",
			category:    "Diabetes", popular: true, discount: cfg.DiabetesCareDiscount,
			testNames: []string{
				"HbA1c (Glycated Hemoglobin)", "Fasting Blood Sugar (FBS)",
				"Kidney Function Test (KFT)",
			},
		},
		{
			id: "pkg_003", name: "Heart Health Package",
			description: "Cardiac risk assessment with lipid profile and ECG",
			category:    "Cardiac", popular: false, discount: cfg.HeartHealthDiscount,
			testNames: []string{
				"Lipid Profile", "Electrocardiogram (ECG)", "Complete Blood Count (CBC)",
			},
		},
	}

	byName := make(map[string]*models.LabTest, len(tests))
	for _, t := range tests {
		byName[t.Name] = t
	}

	packages := make([]*models.LabPackage, 0, len(seeds))
	for _, seed := range seeds {
		var ids []string
		original := 0
		for _, name := range seed.testNames {
			t, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("package %s: fixture references unknown test %q", seed.id, name)
			}
			ids = append(ids, t.ID)
			original += t.MinPrice()
		}
		price := int(float64(original) * (1 - seed.discount))
		packages = append(packages, &models.LabPackage{
			ID:            seed.id,
			Name:          seed.name,
			Description:   seed.description,
			TestsIncluded: ids,
			OriginalPrice: original,
			PackagePrice:  price,
			Savings:       original - price,
			Category:      seed.category,
			Popular:       seed.popular,
		})
	}
	return packages, nil
}
