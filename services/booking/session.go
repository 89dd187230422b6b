package booking

import (
	"sync"

	"medibook/models"
)

// DefaultSessionStore keeps session state in memory. One mutex per store is
// enough at this scale; every operation is a short map access.
type DefaultSessionStore struct {
	homeCollectionFee int

	mu       sync.Mutex
	sessions map[string]*models.SessionState
}

// NewSessionStore returns an empty store. The fee is charged on finalized
// bookings with home collection.
func NewSessionStore(homeCollectionFee int) *DefaultSessionStore {
	return &DefaultSessionStore{
		homeCollectionFee: homeCollectionFee,
		sessions:          make(map[string]*models.SessionState),
	}
}

// get returns the live session, creating it on first touch. Callers hold mu.
func (s *DefaultSessionStore) get(sessionID string) *models.SessionState {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &models.SessionState{SessionID: sessionID, Stage: models.StageSearch}
		s.sessions[sessionID] = sess
	}
	return sess
}

// snapshot copies the session so callers never alias live state.
func snapshot(sess *models.SessionState) models.SessionState {
	out := *sess
	out.Cart = make([]models.CartItem, len(sess.Cart))
	copy(out.Cart, sess.Cart)
	if sess.SelectedSlot != nil {
		slot := *sess.SelectedSlot
		out.SelectedSlot = &slot
	}
	return out
}

// GetState returns a snapshot, creating the session at the search stage on
// first touch.
func (s *DefaultSessionStore) GetState(sessionID string) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.get(sessionID))
}

// RecordSearch notes the query for later filter turns and moves the session
// to discovery.
func (s *DefaultSessionStore) RecordSearch(sessionID, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.LastQuery = query
	sess.Stage = models.StageDiscovery
}

// AddToCart appends the item unless its test is already present; the first
// selection keeps its lab and price. The bool reports whether the cart changed.
func (s *DefaultSessionStore) AddToCart(sessionID string, item models.CartItem) (models.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	for _, existing := range sess.Cart {
		if existing.TestID == item.TestID {
			return snapshot(sess), false
		}
	}
	sess.Cart = append(sess.Cart, item)
	sess.Stage = models.StageCart
	return snapshot(sess), true
}

// RemoveFromCart drops the test from the cart. An emptied cart reverts the
// session to discovery; removing an absent test reports false and changes
// nothing.
func (s *DefaultSessionStore) RemoveFromCart(sessionID, testID string) (models.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	for i, item := range sess.Cart {
		if item.TestID == testID {
			sess.Cart = append(sess.Cart[:i], sess.Cart[i+1:]...)
			if len(sess.Cart) == 0 {
				sess.Stage = models.StageDiscovery
			}
			return snapshot(sess), true
		}
	}
	return snapshot(sess), false
}

// ClearCart empties the cart and reverts the session to discovery.
func (s *DefaultSessionStore) ClearCart(sessionID string) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.Cart = nil
	sess.Stage = models.StageDiscovery
	return snapshot(sess)
}

// SetCollectionMethod records the collection choice and advances to the
// availability stage.
func (s *DefaultSessionStore) SetCollectionMethod(sessionID string, ct models.CollectionType) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.CollectionMethod = ct
	sess.Stage = models.StageAvailability
	return snapshot(sess)
}

// FinalizeBooking mints the booking record from the cart, then clears the
// cart and parks the session at post_booking with the reference retained.
// The record is assembled before any state is cleared; a failure leaves the
// session untouched.
func (s *DefaultSessionStore) FinalizeBooking(sessionID, reference string, slot *models.CollectionSlot) (models.LabBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	if len(sess.Cart) == 0 {
		return models.LabBooking{}, NewPreconditionError("cart is empty, nothing to book")
	}
	if sess.CollectionMethod == "" {
		return models.LabBooking{}, NewPreconditionError("collection method not chosen yet")
	}

	items := make([]models.CartItem, len(sess.Cart))
	copy(items, sess.Cart)
	fee := 0
	if sess.CollectionMethod == models.CollectionHome {
		fee = s.homeCollectionFee
	}
	total := 0
	for _, item := range items {
		total += item.Price
	}
	record := models.LabBooking{
		Reference:         reference,
		Items:             items,
		Total:             total + fee,
		HomeCollectionFee: fee,
		CollectionType:    sess.CollectionMethod,
		Slot:              slot,
	}

	sess.Cart = nil
	sess.SelectedSlot = slot
	sess.BookingReference = reference
	sess.Stage = models.StagePostBooking
	return record, nil
}
