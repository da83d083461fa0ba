package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

// Repository is the appointment storage boundary.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// UpdateStatus is a compare-and-set on the booking status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to workflow.Status) error

	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListForDay(ctx context.Context, day time.Time, limit, offset int) ([]*Appointment, int, error)
	CountForDay(ctx context.Context, day time.Time) (int, error)
}
