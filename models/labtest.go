package models

// LabOffering is one lab centre's terms for a specific test.
type LabOffering struct {
	LabID                   string  `json:"labId"`
	LabName                 string  `json:"labName"`
	LabRating               float64 `json:"labRating"`
	LabLocation             string  `json:"labLocation"`
	Price                   int     `json:"price"`
	HomeCollectionAvailable bool    `json:"homeCollectionAvailable"`
	HomeCollectionFee       int     `json:"homeCollectionFee"`
	TurnaroundTime          string  `json:"turnaroundTime"` // "Same day", "24 hours", "48 hours"
	Accreditation           string  `json:"accreditation"`  // NABL, CAP, ...
}

// LabTest is a diagnostic test offered by one or more lab centres.
// Rating is the mean of the offering lab ratings, fixed at catalog build time.
type LabTest struct {
	ID                      string        `json:"id"`
	Name                    string        `json:"name"`
	Category                string        `json:"category"` // "Blood Tests", "Radiology", "Specialized Tests"
	SampleType              string        `json:"sampleType"`
	FastingRequired         bool          `json:"fastingRequired"`
	PreparationInstructions string        `json:"preparationInstructions"`
	ParametersCount         int           `json:"parametersCount"`
	Offerings               []LabOffering `json:"labsOffering"`
	Rating                  float64       `json:"rating"`
	BookingCount            int           `json:"bookingCount"` // popularity metric
}

// MinPrice returns the cheapest offering price, or 0 when there are no offerings.
func (t *LabTest) MinPrice() int {
	min := 0
	for i, o := range t.Offerings {
		if i == 0 || o.Price < min {
			min = o.Price
		}
	}
	return min
}

// HomeCollectionAvailable reports whether any lab offers home collection for this test.
func (t *LabTest) HomeCollectionAvailable() bool {
	for _, o := range t.Offerings {
		if o.HomeCollectionAvailable {
			return true
		}
	}
	return false
}

// OfferingByLab returns the offering for the given lab id.
func (t *LabTest) OfferingByLab(labID string) (LabOffering, bool) {
	for _, o := range t.Offerings {
		if o.LabID == labID {
			return o, true
		}
	}
	return LabOffering{}, false
}

// LabPackage is a named bundle of tests sold at a discount.
type LabPackage struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TestsIncluded []string `json:"testsIncluded"`
	OriginalPrice int      `json:"originalPrice"` // sum of constituent minimum lab prices
	PackagePrice  int      `json:"packagePrice"`
	Savings       int      `json:"savings"` // OriginalPrice - PackagePrice, never negative
	Category      string   `json:"category"`
	Popular       bool     `json:"popular"`
}
