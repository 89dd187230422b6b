package models

// JourneyStage is the session's position in the discovery->cart->booking funnel.
type JourneyStage string

const (
	StageSearch       JourneyStage = "search"
	StageDiscovery    JourneyStage = "discovery"
	StageCart         JourneyStage = "cart"
	StageAvailability JourneyStage = "availability"
	StageBooking      JourneyStage = "booking"
	StagePostBooking  JourneyStage = "post_booking"
)

// CartItem is one selected test at a chosen lab. At most one entry per
// test id exists in a cart; the first selection wins.
type CartItem struct {
	TestID   string `json:"testId"`
	LabID    string `json:"labId"`
	TestName string `json:"testName"`
	LabName  string `json:"labName"`
	Price    int    `json:"price"`
}

// SessionState is a point-in-time snapshot of one session. Mutation goes
// through the session store; copies handed out are safe to read freely.
type SessionState struct {
	SessionID        string          `json:"sessionId"`
	Stage            JourneyStage    `json:"journeyStage"`
	Cart             []CartItem      `json:"cart"`
	CollectionMethod CollectionType  `json:"collectionMethod,omitempty"`
	SelectedSlot     *CollectionSlot `json:"selectedSlot,omitempty"`
	BookingReference string          `json:"bookingReference,omitempty"`
	LastQuery        string          `json:"lastQuery,omitempty"`
}

// CartTotal sums the cart item prices, excluding any collection fee.
func (s SessionState) CartTotal() int {
	total := 0
	for _, item := range s.Cart {
		total += item.Price
	}
	return total
}

// TestIDs lists the cart's test ids in insertion order.
func (s SessionState) TestIDs() []string {
	ids := make([]string, 0, len(s.Cart))
	for _, item := range s.Cart {
		ids = append(ids, item.TestID)
	}
	return ids
}
