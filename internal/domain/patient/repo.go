package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

// Repository is the patient storage boundary.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error

	// UpdateStatus performs a compare-and-set: the row is updated only if its
	// current status still equals from. ErrConflict reports a lost race.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to workflow.Status) error

	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)

	// ListActive returns every active patient ordered by token, the snapshot
	// the derived queue views are computed from.
	ListActive(ctx context.Context) ([]*Patient, error)

	AddStatusChange(ctx context.Context, sc *StatusChange) error
	StatusHistory(ctx context.Context, patientID uuid.UUID) ([]*StatusChange, error)
}
