package assistant

import (
	"fmt"

	"medibook/models"
)

// maxDoctorResults caps the list shown in one chat turn.
const maxDoctorResults = 5

// scheduleDays is how far ahead a schedule listing looks.
const scheduleDays = 3

func (e *Executor) searchDoctors(sessionID string, origin models.Coordinates, query string, filters models.SearchFilters) models.ChatResult {
	matches := e.providers.SearchProviders(origin, query, filters)
	if len(matches) == 0 {
		return models.ChatResult{
			Type:    models.TypeSearch,
			Message: fmt.Sprintf("I couldn't find any doctors matching '%s'. Try a different specialty?", query),
		}
	}
	e.sessions.RecordSearch(sessionID, query)

	data := doctorSearchData(matches)
	return models.ChatResult{
		Type:    models.TypeSearch,
		Message: doctorSearchMessage(data),
		Data:    data,
	}
}

func (e *Executor) filterDoctors(sessionID string, origin models.Coordinates, subject string, filters models.SearchFilters) models.ChatResult {
	matches := e.providers.SearchProviders(origin, subject, filters)
	if len(matches) == 0 {
		return models.ChatResult{
			Type:    models.TypeFilter,
			Message: "I couldn't find any doctors matching your criteria. Try adjusting your filters?",
		}
	}
	e.sessions.RecordSearch(sessionID, subject)

	data := doctorSearchData(matches)
	return models.ChatResult{
		Type:    models.TypeFilter,
		Message: doctorFilterMessage(data, filters),
		Data:    data,
	}
}

func (e *Executor) doctorSchedule(origin models.Coordinates, subject string) models.ChatResult {
	if subject == "" {
		return models.ChatResult{Type: models.TypeChat, Message: "Which doctor would you like to see the schedule for?"}
	}
	provider, ok := e.resolveDoctor(origin, subject)
	if !ok {
		return models.ChatResult{
			Type:    models.TypeChat,
			Message: fmt.Sprintf("I couldn't find a doctor named '%s'.", subject),
		}
	}

	schedule := freeSchedule(provider)
	if len(schedule) == 0 {
		return models.ChatResult{Type: models.TypeChat, Message: "Sorry, this doctor has no available slots."}
	}
	return models.ChatResult{
		Type:    models.TypeSlots,
		Message: fmt.Sprintf("Schedule for %s", provider.Name),
		Data:    models.ScheduleData{DoctorID: provider.ID, Doctor: provider.Name, Schedule: schedule},
	}
}

func (e *Executor) bookDoctor(origin models.Coordinates, intent models.BookingIntent) models.ChatResult {
	if intent.Subject == "" {
		return models.ChatResult{Type: models.TypeChat, Message: "Who would you like to book an appointment with?"}
	}
	provider, ok := e.resolveDoctor(origin, intent.Subject)
	if !ok {
		return models.ChatResult{
			Type:    models.TypeChat,
			Message: fmt.Sprintf("I couldn't find a doctor named '%s'.", intent.Subject),
		}
	}

	// A stated slot is honored as-is; an unstated one defaults to the first
	// free slot. The doctor itself is never defaulted.
	date, slotID := intent.Date, intent.SlotID
	if slotID == "" {
		schedule := freeSchedule(provider)
		if len(schedule) == 0 {
			return models.ChatResult{Type: models.TypeChat, Message: "Sorry, this doctor has no available slots."}
		}
		date = schedule[0].Date
		slotID = schedule[0].Slots[0].ID
	} else if date == "" {
		if d, ok := dateOfSlot(provider, slotID); ok {
			date = d
		}
	}

	appt, err := e.reserver.Reserve(provider.ID, date, slotID, "web_user")
	if err != nil {
		return resultForError(err)
	}

	return models.ChatResult{
		Type:    models.TypeBooking,
		Message: doctorBookingMessage(provider, appt, slotTime(provider, date, slotID)),
		Data:    appt,
	}
}

// resolveDoctor finds a doctor by name or id, reusing the ranked search so
// "Dr. Sharma" and a bare id both work.
func (e *Executor) resolveDoctor(origin models.Coordinates, subject string) (*models.Provider, bool) {
	if p, ok := e.providers.GetProvider(subject); ok {
		return p, true
	}
	matches := e.providers.SearchProviders(origin, subject, models.SearchFilters{})
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0].Provider, true
}

func doctorSearchData(matches []models.ProviderMatch) models.DoctorSearchData {
	count := len(matches)
	if len(matches) > maxDoctorResults {
		matches = matches[:maxDoctorResults]
	}
	doctors := make([]models.DoctorSummary, 0, len(matches))
	for _, m := range matches {
		next := "Tomorrow"
		if m.AvailableToday {
			next = "Today"
		}
		doctors = append(doctors, models.DoctorSummary{
			ID:            m.Provider.ID,
			Name:          m.Provider.Name,
			Specialty:     m.Provider.Specialty,
			Distance:      fmt.Sprintf("%.2f km", m.DistanceKm),
			NextAvailable: next,
			Rating:        m.Provider.Rating,
			Fees:          m.Provider.Fees.InClinic,
			MatchReason:   fmt.Sprintf("Rated %.1f stars and close to you.", m.Provider.Rating),
		})
	}
	return models.DoctorSearchData{Doctors: doctors, Count: count}
}

// freeSchedule projects the provider's next few days down to unbooked slots,
// dropping days with nothing free.
func freeSchedule(p *models.Provider) []models.DaySchedule {
	var schedule []models.DaySchedule
	for i, day := range p.Availability {
		if i >= scheduleDays {
			break
		}
		var free []models.SlotOption
		for _, s := range day.Slots {
			if !s.Booked {
				free = append(free, models.SlotOption{
					ID:   s.ID,
					Time: fmt.Sprintf("%s-%s", s.StartTime, s.EndTime),
				})
			}
		}
		if len(free) > 0 {
			schedule = append(schedule, models.DaySchedule{Date: day.Date, Slots: free})
		}
	}
	return schedule
}

func dateOfSlot(p *models.Provider, slotID string) (string, bool) {
	for _, day := range p.Availability {
		for _, s := range day.Slots {
			if s.ID == slotID {
				return day.Date, true
			}
		}
	}
	return "", false
}

func slotTime(p *models.Provider, date, slotID string) string {
	for _, day := range p.Availability {
		if day.Date != date {
			continue
		}
		for _, s := range day.Slots {
			if s.ID == slotID {
				return fmt.Sprintf("%s-%s", s.StartTime, s.EndTime)
			}
		}
	}
	return ""
}
