package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type Service struct {
	repo   Repository
	policy *workflow.Policy
	tx     db.TxRunner
}

// NewService wires the patient service. tx runs multi-table mutations
// atomically; a nil runner executes them on the bare connection, which is
// only acceptable for tests with in-memory repositories.
func NewService(repo Repository, policy *workflow.Policy, tx db.TxRunner) *Service {
	if tx == nil {
		tx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{repo: repo, policy: policy, tx: tx}
}

// Register creates a new patient in the Registered status. MRN and queue
// token assignment happens in the repository.
func (s *Service) Register(ctx context.Context, role workflow.Role, p *Patient) error {
	if !s.policy.Allows(role, workflow.CapRegisterPatient) {
		return workflow.ErrRoleDenied
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	p.Status = workflow.StatusRegistered
	p.Active = true
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForActor reads a patient record on behalf of the acting user. The
// patient role only sees its own record; other roles read freely.
func (s *Service) GetForActor(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID) (*Patient, error) {
	if role == workflow.RolePatient && id.String() != actorID {
		return nil, workflow.ErrRoleDenied
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return s.repo.GetByMRN(ctx, mrn)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, query, limit, offset)
}

func (s *Service) ListActive(ctx context.Context) ([]*Patient, error) {
	return s.repo.ListActive(ctx)
}

// UpdateStatus moves a patient to the given flow status on behalf of the
// acting role. The policy is enforced here, not in the handler, so no
// transport path can bypass it. The write is a compare-and-set against the
// status read in this call; a concurrent change surfaces as ErrConflict.
func (s *Service) UpdateStatus(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID, to workflow.Status) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanTransition(role, p.Status, to); err != nil {
		return nil, err
	}
	if p.Status == to {
		return p, nil
	}
	// The compare-and-set and its history row commit together: a transition
	// without an audit entry must never be observable.
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, p.Status, to); err != nil {
			return err
		}
		sc := &StatusChange{
			PatientID:  id,
			FromStatus: p.Status,
			ToStatus:   to,
			ChangedBy:  actorID,
		}
		if err := s.repo.AddStatusChange(ctx, sc); err != nil {
			return fmt.Errorf("record status change: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.Status = to
	return p, nil
}

// Advance moves a patient one step along the canonical path.
func (s *Service) Advance(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, role, actorID, id, workflow.Next(p.Status))
}

// SendBackToDoctor returns a Re-check Pending patient to the doctor's queue.
func (s *Service) SendBackToDoctor(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID) (*Patient, error) {
	return s.UpdateStatus(ctx, role, actorID, id, workflow.StatusWithDoctor)
}

// UpdateDemographics edits patient identity fields; flow status is not
// touched here.
func (s *Service) UpdateDemographics(ctx context.Context, role workflow.Role, p *Patient) error {
	if !s.policy.Allows(role, workflow.CapRegisterPatient) {
		return workflow.ErrRoleDenied
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Active = existing.Active
	return s.repo.Update(ctx, p)
}

// Deactivate retires a patient record. Records are never deleted.
func (s *Service) Deactivate(ctx context.Context, role workflow.Role, id uuid.UUID) error {
	if role != workflow.RoleAdmin {
		return workflow.ErrRoleDenied
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Active = false
	return s.repo.Update(ctx, p)
}

func (s *Service) StatusHistory(ctx context.Context, id uuid.UUID) ([]*StatusChange, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.StatusHistory(ctx, id)
}
