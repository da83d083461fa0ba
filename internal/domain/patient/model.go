package patient

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

var (
	ErrNotFound = errors.New("patient not found")
	// ErrConflict is returned when a status update loses a race: the row's
	// current status no longer matches what the caller read.
	ErrConflict = errors.New("patient status changed concurrently")
)

// Patient is a registered clinic visitor. MRN and Token are assigned by the
// storage layer from database sequences, never derived from collection sizes.
type Patient struct {
	ID               uuid.UUID       `json:"id"`
	MRN              string          `json:"mrn"`
	Token            int             `json:"token"`
	Name             string          `json:"name"`
	Age              int             `json:"age"`
	Gender           string          `json:"gender"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	EmergencyContact string          `json:"emergency_contact"`
	Status           workflow.Status `json:"status"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// StatusChange is one entry in a patient's flow-status audit trail.
type StatusChange struct {
	ID         uuid.UUID       `json:"id"`
	PatientID  uuid.UUID       `json:"patient_id"`
	FromStatus workflow.Status `json:"from_status"`
	ToStatus   workflow.Status `json:"to_status"`
	ChangedBy  string          `json:"changed_by"`
	ChangedAt  time.Time       `json:"changed_at"`
}
