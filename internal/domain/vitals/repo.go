package vitals

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the vitals storage boundary.
type Repository interface {
	Create(ctx context.Context, v *Vitals) error
	Latest(ctx context.Context, patientID uuid.UUID) (*Vitals, error)
	History(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Vitals, int, error)
}
