package models

// Appointment statuses. Only "confirmed" is ever assigned by this service;
// cancellation and completion belong to the hosting system.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is the immutable record minted by a successful reservation.
type Appointment struct {
	ID         string `json:"appointmentId"`
	ProviderID string `json:"doctorId"`
	PatientID  string `json:"patientId"`
	SlotID     string `json:"slotId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}
