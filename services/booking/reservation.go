package booking

import (
	"fmt"
	"sync"

	"medibook/catalog"
	"medibook/models"
)

// DefaultReservationEngine books slots against the in-memory provider
// catalog. A per-provider mutex serializes the check-then-mark critical
// section so two sessions racing for the same slot produce exactly one
// appointment.
type DefaultReservationEngine struct {
	catalog catalog.ProviderCatalog

	mu           sync.Mutex // guards locks, appointments and nextID
	locks        map[string]*sync.Mutex
	appointments map[string]*models.Appointment
	nextID       int
}

// NewReservationEngine returns an engine over the given catalog.
func NewReservationEngine(cat catalog.ProviderCatalog) *DefaultReservationEngine {
	return &DefaultReservationEngine{
		catalog:      cat,
		locks:        make(map[string]*sync.Mutex),
		appointments: make(map[string]*models.Appointment),
	}
}

func (e *DefaultReservationEngine) providerLock(providerID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[providerID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[providerID] = lock
	}
	return lock
}

// Reserve books the slot and mints a confirmed appointment. The booked flag
// flips false to true exactly once; a lost race reports alreadyBooked, the
// same failure a late arrival sees.
func (e *DefaultReservationEngine) Reserve(providerID, date, slotID, patientID string) (*models.Appointment, error) {
	if providerID == "" || date == "" || slotID == "" {
		return nil, NewInvalidInputError("provider, date and slot are all required")
	}

	provider, ok := e.catalog.GetProvider(providerID)
	if !ok {
		return nil, NewNotFoundError("no doctor with id %s", providerID)
	}

	lock := e.providerLock(providerID)
	lock.Lock()
	defer lock.Unlock()

	var day *models.DayAvailability
	for i := range provider.Availability {
		if provider.Availability[i].Date == date {
			day = &provider.Availability[i]
			break
		}
	}
	if day == nil {
		return nil, NewNotFoundError("doctor %s has no schedule on %s", providerID, date)
	}

	var slot *models.Slot
	for i := range day.Slots {
		if day.Slots[i].ID == slotID {
			slot = &day.Slots[i]
			break
		}
	}
	if slot == nil {
		return nil, NewNotFoundError("no slot %s on %s", slotID, date)
	}
	if slot.Booked {
		return nil, NewAlreadyBookedError("slot %s on %s is already taken", slotID, date)
	}
	slot.Booked = true

	e.mu.Lock()
	e.nextID++
	appt := &models.Appointment{
		ID:         fmt.Sprintf("appt_%d", e.nextID),
		ProviderID: providerID,
		PatientID:  patientID,
		SlotID:     slotID,
		Date:       date,
		Status:     models.AppointmentConfirmed,
	}
	e.appointments[appt.ID] = appt
	e.mu.Unlock()

	return appt, nil
}

// GetAppointment looks up a confirmed appointment by id.
func (e *DefaultReservationEngine) GetAppointment(id string) (*models.Appointment, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	appt, ok := e.appointments[id]
	return appt, ok
}
