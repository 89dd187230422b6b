package booking

import (
	"sync"
	"testing"

	"medibook/catalog"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *DefaultReservationEngine {
	providers := []*models.Provider{
		{
			ID:        "doc_001",
			Name:      "Dr. Sharma (1)",
			Specialty: "Dentist",
			Availability: []models.DayAvailability{
				{Date: "2026-08-25", Slots: []models.Slot{
					{ID: "slot_0_0", StartTime: "10:00", EndTime: "10:30"},
					{ID: "slot_0_1", StartTime: "11:00", EndTime: "11:30", Booked: true},
				}},
				{Date: "2026-08-26", Slots: []models.Slot{
					{ID: "slot_1_0", StartTime: "10:00", EndTime: "10:30"},
				}},
			},
		},
	}
	return NewReservationEngine(catalog.NewInMemoryProviderCatalog(providers))
}

func TestReserveMintsConfirmedAppointment(t *testing.T) {
	engine := newTestEngine()

	appt, err := engine.Reserve("doc_001", "2026-08-25", "slot_0_0", "patient_1")
	require.NoError(t, err)
	assert.Equal(t, "appt_1", appt.ID)
	assert.Equal(t, "doc_001", appt.ProviderID)
	assert.Equal(t, "slot_0_0", appt.SlotID)
	assert.Equal(t, "2026-08-25", appt.Date)
	assert.Equal(t, models.AppointmentConfirmed, appt.Status)

	got, ok := engine.GetAppointment("appt_1")
	require.True(t, ok)
	assert.Equal(t, appt, got)

	// Ids are sequential across reservations.
	second, err := engine.Reserve("doc_001", "2026-08-26", "slot_1_0", "patient_2")
	require.NoError(t, err)
	assert.Equal(t, "appt_2", second.ID)
}

func TestReserveRejectsDoubleBooking(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Reserve("doc_001", "2026-08-25", "slot_0_0", "patient_1")
	require.NoError(t, err)

	_, err = engine.Reserve("doc_001", "2026-08-25", "slot_0_0", "patient_2")
	require.Error(t, err)
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, CodeAlreadyBooked, flowErr.Code)

	// A slot seeded as booked fails the same way.
	_, err = engine.Reserve("doc_001", "2026-08-25", "slot_0_1", "patient_3")
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, CodeAlreadyBooked, flowErr.Code)
}

func TestReserveUnknownTargets(t *testing.T) {
	engine := newTestEngine()
	var flowErr *FlowError

	_, err := engine.Reserve("doc_999", "2026-08-25", "slot_0_0", "p")
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, CodeNotFound, flowErr.Code)

	_, err = engine.Reserve("doc_001", "2026-09-01", "slot_0_0", "p")
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, CodeNotFound, flowErr.Code)

	_, err = engine.Reserve("doc_001", "2026-08-25", "slot_9_9", "p")
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, CodeNotFound, flowErr.Code)

	_, err = engine.Reserve("", "2026-08-25", "slot_0_0", "p")
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, CodeInvalidInput, flowErr.Code)
}

func TestReserveConcurrentExactlyOneWins(t *testing.T) {
	engine := newTestEngine()

	const racers = 32
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Reserve("doc_001", "2026-08-25", "slot_0_0", "patient")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var flowErr *FlowError
		require.ErrorAs(t, err, &flowErr)
		assert.Equal(t, CodeAlreadyBooked, flowErr.Code)
		losses++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, losses)
}
