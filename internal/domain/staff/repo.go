package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

// Repository is the staff storage boundary.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	Update(ctx context.Context, m *Member) error
	List(ctx context.Context, limit, offset int) ([]*Member, int, error)
	SetOnDuty(ctx context.Context, id uuid.UUID, onDuty bool) error
	SetRole(ctx context.Context, id uuid.UUID, role workflow.Role) error
	DoctorsOnDuty(ctx context.Context) ([]*Member, error)
	CountDoctorsOnDuty(ctx context.Context) (int, error)
}
