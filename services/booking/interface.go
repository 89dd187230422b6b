// Package booking owns the mutable state of the conversation backend: slot
// reservation against provider availability grids and per-session journey
// state with the lab test cart.
package booking

import "medibook/models"

// ReservationEngine books doctor appointment slots. Reservation is the only
// write path into provider availability; everything else reads.
type ReservationEngine interface {
	// Reserve books the given slot on the given date for the provider. It
	// fails with a FlowError when the provider, date or slot is unknown or
	// the slot is already booked. At most one caller wins a given slot.
	Reserve(providerID, date, slotID, patientID string) (*models.Appointment, error)

	// GetAppointment looks up a confirmed appointment by id.
	GetAppointment(id string) (*models.Appointment, bool)
}

// SessionStore tracks per-session journey state. Implementations serialize
// access per session; callers never see a half-applied mutation.
type SessionStore interface {
	// GetState returns a snapshot of the session, creating it at the
	// search stage on first touch.
	GetState(sessionID string) models.SessionState

	// RecordSearch notes the query subject and moves the session to the
	// discovery stage. Later filter turns reuse the recorded subject.
	RecordSearch(sessionID, query string)

	// AddToCart adds a test from a specific lab. A test already in the
	// cart keeps its original lab and price; the duplicate add is a no-op
	// reported via the bool.
	AddToCart(sessionID string, item models.CartItem) (models.SessionState, bool)

	// RemoveFromCart removes a test by id. Emptying the cart reverts the
	// session to the discovery stage.
	RemoveFromCart(sessionID, testID string) (models.SessionState, bool)

	// ClearCart empties the cart and reverts the session to discovery.
	ClearCart(sessionID string) models.SessionState

	// SetCollectionMethod records the chosen collection type and moves the
	// session to the availability stage.
	SetCollectionMethod(sessionID string, ct models.CollectionType) models.SessionState

	// FinalizeBooking records the booking under the given reference and
	// clears the cart, keeping the reference on the session.
	FinalizeBooking(sessionID, reference string, slot *models.CollectionSlot) (models.LabBooking, error)
}
