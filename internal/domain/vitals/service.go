package vitals

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

// PatientFlow is the slice of patient.Service this package needs: reading a
// patient and moving it along the workflow.
type PatientFlow interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	UpdateStatus(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID, to workflow.Status) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientFlow
	policy   *workflow.Policy
	tx       db.TxRunner
}

// NewService wires the vitals service. tx makes the measurement insert and
// the workflow advance commit together; nil runs them on the bare connection
// and is only acceptable for tests with in-memory repositories.
func NewService(repo Repository, patients PatientFlow, policy *workflow.Policy, tx db.TxRunner) *Service {
	if tx == nil {
		tx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{repo: repo, patients: patients, policy: policy, tx: tx}
}

// Record stores a set of measurements. A completed patient is locked: the
// call is refused before anything is written. Recording vitals on a freshly
// registered patient advances them to Vitals Done; in any other active
// status the measurements are stored without a transition.
func (s *Service) Record(ctx context.Context, role workflow.Role, actorID string, v *Vitals) error {
	if !s.policy.Allows(role, workflow.CapRecordVitals) {
		return workflow.ErrRoleDenied
	}
	if err := validate(v); err != nil {
		return err
	}

	p, err := s.patients.Get(ctx, v.PatientID)
	if err != nil {
		return err
	}
	if p.Status == workflow.StatusCompleted {
		return workflow.ErrCompletedLocked
	}

	v.RecordedBy = actorID
	// Measurement and workflow advance commit together: if the advance loses
	// a status race the measurement rolls back and the caller retries cleanly.
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, v); err != nil {
			return err
		}
		if p.Status == workflow.StatusRegistered {
			if _, err := s.patients.UpdateStatus(ctx, role, actorID, p.ID, workflow.StatusVitalsDone); err != nil {
				return fmt.Errorf("advance to vitals done: %w", err)
			}
		}
		return nil
	})
}

func (s *Service) Latest(ctx context.Context, patientID uuid.UUID) (*Vitals, error) {
	return s.repo.Latest(ctx, patientID)
}

func (s *Service) History(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Vitals, int, error) {
	return s.repo.History(ctx, patientID, limit, offset)
}

func validate(v *Vitals) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if v.SystolicBP < 0 || v.DiastolicBP < 0 || v.Pulse < 0 {
		return fmt.Errorf("measurements must not be negative")
	}
	if v.SpO2 < 0 || v.SpO2 > 100 {
		return fmt.Errorf("spo2 must be between 0 and 100")
	}
	return nil
}
