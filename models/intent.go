package models

// Flow selects which consumer journey an intent belongs to.
type Flow string

const (
	FlowDoctor Flow = "doctor"
	FlowLab    Flow = "lab"
)

// SearchFilters are the optional constraints a classified intent may carry.
// Nil means "not provided"; present values are applied as strict exclusions.
type SearchFilters struct {
	MaxFee         *int     `json:"maxFees,omitempty"`        // doctor flow, in-clinic fee
	MaxPrice       *int     `json:"maxPrice,omitempty"`       // lab flow, minimum offering price
	MinRating      *float64 `json:"minRating,omitempty"`      // both flows
	HomeCollection *bool    `json:"homeCollection,omitempty"` // lab flow
}

// Merge overlays non-nil fields of other onto a copy of f.
func (f SearchFilters) Merge(other SearchFilters) SearchFilters {
	if other.MaxFee != nil {
		f.MaxFee = other.MaxFee
	}
	if other.MaxPrice != nil {
		f.MaxPrice = other.MaxPrice
	}
	if other.MinRating != nil {
		f.MinRating = other.MinRating
	}
	if other.HomeCollection != nil {
		f.HomeCollection = other.HomeCollection
	}
	return f
}

// Intent is a classified user command. It is a closed set: one variant per
// intent type, each carrying only its own fields, so dispatch can switch on
// the concrete type instead of probing a loose payload.
type Intent interface {
	isIntent()
}

// SearchIntent starts or restarts discovery.
type SearchIntent struct {
	Query   string
	Filters SearchFilters
}

// FilterIntent refines a previous search. Query may be empty, in which case
// the subject must be resolvable from the session's last search.
type FilterIntent struct {
	Query   string
	Filters SearchFilters
}

// SlotsIntent asks for a specific doctor's schedule.
type SlotsIntent struct {
	Subject string // doctor name or id
}

// AvailabilityIntent asks for lab collection slots for the current cart.
type AvailabilityIntent struct {
	CollectionType CollectionType // empty means undecided
}

// AddToCartIntent adds one test at one lab to the session cart.
type AddToCartIntent struct {
	TestID string
	LabID  string
}

// ViewCartIntent shows the current cart.
type ViewCartIntent struct{}

// RemoveFromCartIntent removes one test from the cart.
type RemoveFromCartIntent struct {
	TestID string
}

// BookingIntent commits to a booking. Doctor flow uses Subject/SlotID/Date;
// lab flow uses CollectionType/SlotID.
type BookingIntent struct {
	Subject        string
	SlotID         string
	Date           string
	Time           string
	CollectionType CollectionType
}

// ChatIntent carries the classifier's conversational reply straight through.
type ChatIntent struct {
	Reply string
}

func (SearchIntent) isIntent()         {}
func (FilterIntent) isIntent()         {}
func (SlotsIntent) isIntent()          {}
func (AvailabilityIntent) isIntent()   {}
func (AddToCartIntent) isIntent()      {}
func (ViewCartIntent) isIntent()       {}
func (RemoveFromCartIntent) isIntent() {}
func (BookingIntent) isIntent()        {}
func (ChatIntent) isIntent()           {}
