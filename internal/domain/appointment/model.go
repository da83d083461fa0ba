package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

var (
	ErrNotFound = errors.New("appointment not found")
	// ErrConflict is returned when a booking-status update loses a race.
	ErrConflict = errors.New("appointment status changed concurrently")
	// ErrClosed is returned when cancelling or completing an appointment
	// that already left the Scheduled state.
	ErrClosed = errors.New("appointment is no longer scheduled")
)

// Appointment is a booked visit. Its Status is the booking lifecycle
// (Scheduled, Cancelled, Completed) and is independent of the patient's
// flow status, which lives only on the patient row.
type Appointment struct {
	ID        uuid.UUID       `json:"id"`
	PatientID uuid.UUID       `json:"patient_id"`
	DoctorID  uuid.UUID       `json:"doctor_id"`
	Date      time.Time       `json:"date"`
	TimeSlot  string          `json:"time_slot"`
	Type      string          `json:"type"`
	Status    workflow.Status `json:"status"`
	Token     int             `json:"token"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// bookingStatuses is the closed booking vocabulary.
var bookingStatuses = map[workflow.Status]bool{
	workflow.StatusScheduled: true,
	workflow.StatusCancelled: true,
	workflow.StatusCompleted: true,
}

// ValidBookingStatus reports whether s is a member of the booking vocabulary.
func ValidBookingStatus(s workflow.Status) bool {
	return bookingStatuses[s]
}
