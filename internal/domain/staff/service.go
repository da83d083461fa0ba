package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a staff member. Only admins manage the roster.
func (s *Service) Create(ctx context.Context, role workflow.Role, m *Member) error {
	if role != workflow.RoleAdmin {
		return workflow.ErrRoleDenied
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidRole(m.Role) {
		return fmt.Errorf("invalid staff role: %s", m.Role)
	}
	m.Active = true
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// SetOnDuty toggles the duty flag. Staff can mark themselves; the handler
// gates to admin|doctor|staff.
func (s *Service) SetOnDuty(ctx context.Context, role workflow.Role, id uuid.UUID, onDuty bool) error {
	switch role {
	case workflow.RoleAdmin, workflow.RoleDoctor, workflow.RoleStaff:
	default:
		return workflow.ErrRoleDenied
	}
	return s.repo.SetOnDuty(ctx, id, onDuty)
}

// SetRole reassigns a member's role. Admin only.
func (s *Service) SetRole(ctx context.Context, role workflow.Role, id uuid.UUID, newRole workflow.Role) error {
	if role != workflow.RoleAdmin {
		return workflow.ErrRoleDenied
	}
	if !ValidRole(newRole) {
		return fmt.Errorf("invalid staff role: %s", newRole)
	}
	return s.repo.SetRole(ctx, id, newRole)
}

func (s *Service) Update(ctx context.Context, role workflow.Role, m *Member) error {
	if role != workflow.RoleAdmin {
		return workflow.ErrRoleDenied
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) DoctorsOnDuty(ctx context.Context) ([]*Member, error) {
	return s.repo.DoctorsOnDuty(ctx)
}

func (s *Service) CountDoctorsOnDuty(ctx context.Context) (int, error) {
	return s.repo.CountDoctorsOnDuty(ctx)
}
