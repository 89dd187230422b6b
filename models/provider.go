package models

// Location describes where a provider consults.
type Location struct {
	City        string      `json:"city"`
	ClinicName  string      `json:"clinicName"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// Fees is a provider's fee schedule. Amounts are whole rupees.
type Fees struct {
	Online   int `json:"online"`
	InClinic int `json:"inClinic"`
}

// Slot is one bookable cell in a provider's availability grid.
// Booked transitions false->true exactly once and never reverts.
type Slot struct {
	ID        string `json:"slotId"`
	StartTime string `json:"startTime"` // "HH:MM" 24hr
	EndTime   string `json:"endTime"`   // "HH:MM" 24hr
	Booked    bool   `json:"isBooked"`
}

// DayAvailability holds the ordered slots for one calendar day.
type DayAvailability struct {
	Date  string `json:"date"` // ISO date, e.g. "2026-08-25"
	Slots []Slot `json:"slots"`
}

// Provider is a doctor with a 7-day rolling availability grid.
type Provider struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Specialty       string            `json:"specialty"`
	Qualifications  []string          `json:"qualifications"`
	ExperienceYears int               `json:"experienceYears"`
	Languages       []string          `json:"languages"`
	Location        Location          `json:"location"`
	Fees            Fees              `json:"fees"`
	Rating          float64           `json:"rating"`
	ReviewsCount    int               `json:"reviewsCount"`
	Availability    []DayAvailability `json:"availability"`
}

// HasFreeSlotOn reports whether any slot on the given day index is unbooked.
func (p *Provider) HasFreeSlotOn(dayIndex int) bool {
	if dayIndex < 0 || dayIndex >= len(p.Availability) {
		return false
	}
	for _, s := range p.Availability[dayIndex].Slots {
		if !s.Booked {
			return true
		}
	}
	return false
}

// ProviderMatch is a search result: a provider plus its computed ranking data.
type ProviderMatch struct {
	Provider       *Provider `json:"provider"`
	DistanceKm     float64   `json:"distanceKm"`
	Score          float64   `json:"score"`
	AvailableToday bool      `json:"availableToday"`
}
