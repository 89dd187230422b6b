package models

// CollectionType says where a lab sample is taken.
type CollectionType string

const (
	CollectionHome     CollectionType = "home"
	CollectionLabVisit CollectionType = "lab_visit"
)

// CollectionSlot is a transient sample-collection option. Slots are
// regenerated per query and never persisted; booking one does not consume
// it from a shared pool.
type CollectionSlot struct {
	ID             string         `json:"slotId"`
	Date           string         `json:"date"`      // ISO date
	TimeRange      string         `json:"timeRange"` // "08:00-09:00 AM"
	CollectionType CollectionType `json:"collectionType"`
	Available      bool           `json:"available"`
	LabName        string         `json:"labName,omitempty"`    // lab visits only
	LabAddress     string         `json:"labAddress,omitempty"` // lab visits only
}

// LabBooking is the record minted when a lab-test cart is finalized.
type LabBooking struct {
	Reference         string          `json:"bookingReference"`
	Items             []CartItem      `json:"items"`
	Total             int             `json:"total"`
	HomeCollectionFee int             `json:"homeCollectionFee"`
	CollectionType    CollectionType  `json:"collectionType"`
	Slot              *CollectionSlot `json:"slot,omitempty"`
}
