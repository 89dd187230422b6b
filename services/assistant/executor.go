package assistant

import (
	"errors"
	"fmt"
	"math/rand"

	"medibook/catalog"
	"medibook/models"
	"medibook/services/booking"
)

// Executor dispatches classified intents against the catalog, the session
// store and the reservation engine. Every branch validates its precondition
// before touching state, so a failed turn leaves the session exactly as it
// was.
type Executor struct {
	providers catalog.ProviderCatalog
	labs      catalog.LabCatalog
	reserver  booking.ReservationEngine
	sessions  booking.SessionStore

	defaultOrigin models.Coordinates
	newReference  func() string
}

// ExecutorOption tweaks executor construction.
type ExecutorOption func(*Executor)

// WithReferenceGenerator overrides the booking reference mint, used by tests
// to pin references.
func WithReferenceGenerator(gen func() string) ExecutorOption {
	return func(e *Executor) { e.newReference = gen }
}

// NewExecutor wires the executor. defaultOrigin is used when the caller
// supplies no location.
func NewExecutor(
	providers catalog.ProviderCatalog,
	labs catalog.LabCatalog,
	reserver booking.ReservationEngine,
	sessions booking.SessionStore,
	defaultOrigin models.Coordinates,
	opts ...ExecutorOption,
) *Executor {
	e := &Executor{
		providers:     providers,
		labs:          labs,
		reserver:      reserver,
		sessions:      sessions,
		defaultOrigin: defaultOrigin,
		newReference:  randomReference,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// randomReference mints "LB" plus eight digits.
func randomReference() string {
	return fmt.Sprintf("LB%08d", rand.Intn(100000000))
}

// SessionState exposes the session snapshot for prompt construction.
func (e *Executor) SessionState(sessionID string) models.SessionState {
	return e.sessions.GetState(sessionID)
}

// Execute runs one classified intent for one session and returns the
// structured result the presentation layer renders.
func (e *Executor) Execute(flow models.Flow, intent models.Intent, sessionID string, origin models.Coordinates) models.ChatResult {
	if origin == (models.Coordinates{}) {
		origin = e.defaultOrigin
	}

	switch it := intent.(type) {
	case models.ChatIntent:
		reply := it.Reply
		if reply == "" {
			reply = fallbackReply(flow)
		}
		return models.ChatResult{Type: models.TypeChat, Message: reply}

	case models.SearchIntent:
		if flow == models.FlowLab {
			return e.searchTests(sessionID, it.Query, it.Filters)
		}
		return e.searchDoctors(sessionID, origin, it.Query, it.Filters)

	case models.FilterIntent:
		subject := it.Query
		if subject == "" {
			subject = e.sessions.GetState(sessionID).LastQuery
		}
		if subject == "" {
			return models.ChatResult{Type: models.TypeChat, Message: askForSubject(flow)}
		}
		if flow == models.FlowLab {
			return e.searchTests(sessionID, subject, it.Filters)
		}
		return e.filterDoctors(sessionID, origin, subject, it.Filters)

	case models.SlotsIntent:
		return e.doctorSchedule(origin, it.Subject)

	case models.AvailabilityIntent:
		return e.collectionSlots(sessionID, it.CollectionType)

	case models.AddToCartIntent:
		return e.addToCart(sessionID, it)

	case models.ViewCartIntent:
		return e.viewCart(sessionID)

	case models.RemoveFromCartIntent:
		return e.removeFromCart(sessionID, it.TestID)

	case models.BookingIntent:
		if flow == models.FlowLab {
			return e.bookLabTests(sessionID, it)
		}
		return e.bookDoctor(origin, it)

	default:
		return models.ChatResult{Type: models.TypeChat, Message: fallbackReply(flow)}
	}
}

// resultForError maps a flow error onto a user-facing result. Preconditions
// and lookups read as clarifications; everything else is an error result.
func resultForError(err error) models.ChatResult {
	var flowErr *booking.FlowError
	if errors.As(err, &flowErr) {
		switch flowErr.Code {
		case booking.CodePreconditionUnmet, booking.CodeNotFound:
			return models.ChatResult{Type: models.TypeChat, Message: flowErr.Message}
		default:
			return models.ChatResult{Type: models.TypeError, Message: flowErr.Message}
		}
	}
	return models.ChatResult{Type: models.TypeError, Message: "Something went wrong. Please try again."}
}
