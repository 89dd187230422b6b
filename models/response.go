package models

// ResponseType tags a ChatResult so the presentation layer knows what the
// payload is.
type ResponseType string

const (
	TypeSearch           ResponseType = "search"
	TypeFilter           ResponseType = "filter"
	TypeSlots            ResponseType = "slots"
	TypeLabSlots         ResponseType = "lab_slots"
	TypeCartUpdated      ResponseType = "cart_updated"
	TypeCartView         ResponseType = "cart_view"
	TypeBooking          ResponseType = "booking"
	TypeBookingConfirmed ResponseType = "booking_confirmed"
	TypeChat             ResponseType = "chat"
	TypeError            ResponseType = "error"
)

// ChatResult is the executor's structured outcome: a response-type tag, a
// human-readable message, and a tag-specific payload.
type ChatResult struct {
	Type    ResponseType `json:"type"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
}

// DoctorSummary is the ranked-search projection of a provider.
type DoctorSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Specialty     string  `json:"specialty"`
	Distance      string  `json:"distance"` // "3.42 km"
	NextAvailable string  `json:"nextAvailable"`
	Rating        float64 `json:"rating"`
	Fees          int     `json:"fees"`
	MatchReason   string  `json:"matchReason"`
}

// DoctorSearchData is the payload for search/filter results in the doctor flow.
type DoctorSearchData struct {
	Doctors []DoctorSummary `json:"doctors"`
	Count   int             `json:"count"`
}

// SlotOption is one free slot in a schedule listing.
type SlotOption struct {
	ID   string `json:"id"`
	Time string `json:"time"` // "10:00-10:30"
}

// DaySchedule lists the free slots of one day.
type DaySchedule struct {
	Date  string       `json:"date"`
	Slots []SlotOption `json:"slots"`
}

// ScheduleData is the payload for the slots response.
type ScheduleData struct {
	DoctorID string        `json:"doctorId"`
	Doctor   string        `json:"doctor"`
	Schedule []DaySchedule `json:"schedule"`
}

// TestSearchData is the payload for search/filter results in the lab flow.
type TestSearchData struct {
	Tests []LabTest `json:"tests"`
	Count int       `json:"count"`
}

// CartData is a cart snapshot payload.
type CartData struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total int        `json:"total"`
}

// LabSlotsData carries collection slots together with the cart they are for.
type LabSlotsData struct {
	Slots []CollectionSlot `json:"slots"`
	Cart  CartData         `json:"cart"`
}

// PackageSuggestion is attached to cart updates when the selected tests
// overlap a bundled package.
type PackageSuggestion struct {
	Package       LabPackage `json:"package"`
	SavingsPct    int        `json:"savingsPercentage"`
	IncludedTests []LabTest  `json:"includedTests"`
}
