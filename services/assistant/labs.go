package assistant

import (
	"fmt"
	"math"

	"medibook/models"
)

// maxTestResults caps the test list shown in one chat turn.
const maxTestResults = 10

// maxCollectionSlots caps the slot options shown at once.
const maxCollectionSlots = 20

func (e *Executor) searchTests(sessionID, query string, filters models.SearchFilters) models.ChatResult {
	results := e.labs.SearchTests(query, filters)
	if len(results) == 0 {
		return models.ChatResult{
			Type:    models.TypeSearch,
			Message: fmt.Sprintf("No tests found for '%s'", query),
		}
	}
	e.sessions.RecordSearch(sessionID, query)

	count := len(results)
	if len(results) > maxTestResults {
		results = results[:maxTestResults]
	}
	return models.ChatResult{
		Type:    models.TypeSearch,
		Message: fmt.Sprintf("Found %d test(s)", count),
		Data:    models.TestSearchData{Tests: results, Count: count},
	}
}

func (e *Executor) addToCart(sessionID string, intent models.AddToCartIntent) models.ChatResult {
	if intent.TestID == "" {
		return models.ChatResult{Type: models.TypeChat, Message: "Which test would you like to add to your cart?"}
	}
	test, ok := e.labs.GetTest(intent.TestID)
	if !ok {
		return models.ChatResult{
			Type:    models.TypeError,
			Message: fmt.Sprintf("I couldn't find a test with id '%s'.", intent.TestID),
		}
	}

	offering, ok := e.resolveOffering(test, intent.LabID)
	if !ok {
		return models.ChatResult{
			Type:    models.TypeError,
			Message: fmt.Sprintf("%s is not offered by lab '%s'.", test.Name, intent.LabID),
		}
	}

	state, added := e.sessions.AddToCart(sessionID, models.CartItem{
		TestID:   test.ID,
		LabID:    offering.LabID,
		TestName: test.Name,
		LabName:  offering.LabName,
		Price:    offering.Price,
	})

	msg := cartUpdatedMessage(test.Name, offering.LabName, added, cartDataOf(state))
	result := models.ChatResult{Type: models.TypeCartUpdated, Message: msg, Data: cartDataOf(state)}

	if suggestion, ok := e.packageSuggestion(state); ok {
		result.Data = struct {
			models.CartData
			Suggestion models.PackageSuggestion `json:"packageSuggestion"`
		}{cartDataOf(state), suggestion}
		result.Message = msg + packageSuggestionMessage(suggestion)
	}
	return result
}

func (e *Executor) viewCart(sessionID string) models.ChatResult {
	state := e.sessions.GetState(sessionID)
	if len(state.Cart) == 0 {
		return models.ChatResult{Type: models.TypeChat, Message: "Your cart is empty. Search for tests to add!"}
	}
	data := cartDataOf(state)
	return models.ChatResult{Type: models.TypeCartView, Message: cartViewMessage(data), Data: data}
}

func (e *Executor) removeFromCart(sessionID, testID string) models.ChatResult {
	if testID == "" {
		return models.ChatResult{Type: models.TypeChat, Message: "Which test should I remove from your cart?"}
	}
	state, removed := e.sessions.RemoveFromCart(sessionID, testID)
	data := cartDataOf(state)
	if !removed {
		return models.ChatResult{
			Type:    models.TypeCartUpdated,
			Message: "That test isn't in your cart.",
			Data:    data,
		}
	}
	if data.Count == 0 {
		return models.ChatResult{
			Type:    models.TypeCartUpdated,
			Message: "Removed. Your cart is now empty.",
			Data:    data,
		}
	}
	return models.ChatResult{
		Type:    models.TypeCartUpdated,
		Message: fmt.Sprintf("Removed. Your cart has %d test(s), total Rs %d.", data.Count, data.Total),
		Data:    data,
	}
}

func (e *Executor) collectionSlots(sessionID string, ct models.CollectionType) models.ChatResult {
	state := e.sessions.GetState(sessionID)
	if len(state.Cart) == 0 {
		return models.ChatResult{Type: models.TypeChat, Message: "Your cart is empty. Add tests before checking availability!"}
	}

	if ct == "" {
		ct = state.CollectionMethod
	}
	if ct == "" {
		ct = models.CollectionHome
	}
	state = e.sessions.SetCollectionMethod(sessionID, ct)

	slots := e.labs.CollectionSlots(ct)
	if len(slots) == 0 {
		return models.ChatResult{Type: models.TypeChat, Message: "No slots available currently. Please try again later."}
	}
	if len(slots) > maxCollectionSlots {
		slots = slots[:maxCollectionSlots]
	}

	data := models.LabSlotsData{Slots: slots, Cart: cartDataOf(state)}
	return models.ChatResult{Type: models.TypeLabSlots, Message: labSlotsMessage(data.Cart), Data: data}
}

func (e *Executor) bookLabTests(sessionID string, intent models.BookingIntent) models.ChatResult {
	state := e.sessions.GetState(sessionID)
	if len(state.Cart) == 0 {
		return models.ChatResult{Type: models.TypeChat, Message: "Your cart is empty. Add tests first!"}
	}

	ct := intent.CollectionType
	if ct == "" {
		ct = state.CollectionMethod
	}
	if ct == "" {
		ct = models.CollectionLabVisit
	}
	e.sessions.SetCollectionMethod(sessionID, ct)

	slot := e.resolveCollectionSlot(ct, intent)
	reference := e.newReference()

	record, err := e.sessions.FinalizeBooking(sessionID, reference, slot)
	if err != nil {
		return resultForError(err)
	}
	return models.ChatResult{Type: models.TypeBookingConfirmed, Message: labBookingMessage(record), Data: record}
}

// resolveCollectionSlot honors a stated slot and otherwise defaults to
// tomorrow morning. Lab collection slots are transient; booking one never
// consumes it from a pool.
func (e *Executor) resolveCollectionSlot(ct models.CollectionType, intent models.BookingIntent) *models.CollectionSlot {
	if intent.SlotID != "" {
		for _, s := range e.labs.CollectionSlots(ct) {
			if s.ID == intent.SlotID {
				slot := s
				return &slot
			}
		}
	}
	slot := &models.CollectionSlot{
		ID:             intent.SlotID,
		Date:           intent.Date,
		TimeRange:      intent.Time,
		CollectionType: ct,
		Available:      true,
	}
	if slot.Date == "" {
		slot.Date = "Tomorrow"
	}
	if slot.TimeRange == "" {
		slot.TimeRange = "09:00-11:00 AM"
	}
	return slot
}

// resolveOffering picks the stated lab's offering, or the cheapest one when
// no lab was stated.
func (e *Executor) resolveOffering(test *models.LabTest, labID string) (models.LabOffering, bool) {
	if labID != "" {
		return test.OfferingByLab(labID)
	}
	if len(test.Offerings) == 0 {
		return models.LabOffering{}, false
	}
	best := test.Offerings[0]
	for _, o := range test.Offerings[1:] {
		if o.Price < best.Price {
			best = o
		}
	}
	return best, true
}

func (e *Executor) packageSuggestion(state models.SessionState) (models.PackageSuggestion, bool) {
	pkg, ok := e.labs.RecommendPackage(state.TestIDs())
	if !ok {
		return models.PackageSuggestion{}, false
	}
	var included []models.LabTest
	for _, id := range pkg.TestsIncluded {
		if t, ok := e.labs.GetTest(id); ok {
			included = append(included, *t)
		}
	}
	pct := 0
	if pkg.OriginalPrice > 0 {
		pct = int(math.Round(float64(pkg.Savings) / float64(pkg.OriginalPrice) * 100))
	}
	return models.PackageSuggestion{Package: *pkg, SavingsPct: pct, IncludedTests: included}, true
}

func cartDataOf(state models.SessionState) models.CartData {
	return models.CartData{
		Items: state.Cart,
		Count: len(state.Cart),
		Total: state.CartTotal(),
	}
}
