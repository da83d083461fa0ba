package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/staff"
	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

// PatientDirectory resolves patient records; satisfied by patient.Service.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// StaffDirectory resolves staff records; satisfied by staff.Service.
type StaffDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*staff.Member, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	staff    StaffDirectory
	policy   *workflow.Policy
}

func NewService(repo Repository, patients PatientDirectory, staffDir StaffDirectory, policy *workflow.Policy) *Service {
	return &Service{repo: repo, patients: patients, staff: staffDir, policy: policy}
}

// Book creates a Scheduled appointment. Patients may only book for
// themselves; the actor's subject is checked against the booked patient.
func (s *Service) Book(ctx context.Context, role workflow.Role, actorID string, a *Appointment) error {
	if !s.policy.Allows(role, workflow.CapBookAppointment) {
		return workflow.ErrRoleDenied
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if role == workflow.RolePatient && a.PatientID.String() != actorID {
		return workflow.ErrRoleDenied
	}
	if _, err := s.patients.Get(ctx, a.PatientID); err != nil {
		return fmt.Errorf("patient %s: %w", a.PatientID, err)
	}
	doc, err := s.staff.Get(ctx, a.DoctorID)
	if err != nil {
		return fmt.Errorf("doctor %s: %w", a.DoctorID, err)
	}
	if doc.Role != workflow.RoleDoctor {
		return fmt.Errorf("staff member %s is not a doctor", a.DoctorID)
	}
	a.Status = workflow.StatusScheduled
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForActor reads an appointment on behalf of the acting user. The patient
// role only sees its own bookings; other roles read freely.
func (s *Service) GetForActor(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == workflow.RolePatient && a.PatientID.String() != actorID {
		return nil, workflow.ErrRoleDenied
	}
	return a, nil
}

// Cancel ends a scheduled appointment. Cancelled is terminal. Patients may
// only cancel their own bookings.
func (s *Service) Cancel(ctx context.Context, role workflow.Role, actorID string, id uuid.UUID) (*Appointment, error) {
	if !s.policy.Allows(role, workflow.CapBookAppointment) {
		return nil, workflow.ErrRoleDenied
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == workflow.RolePatient && a.PatientID.String() != actorID {
		return nil, workflow.ErrRoleDenied
	}
	if a.Status != workflow.StatusScheduled {
		return nil, ErrClosed
	}
	if err := s.repo.UpdateStatus(ctx, id, workflow.StatusScheduled, workflow.StatusCancelled); err != nil {
		return nil, err
	}
	a.Status = workflow.StatusCancelled
	return a, nil
}

// Complete closes out a scheduled appointment after the visit.
func (s *Service) Complete(ctx context.Context, role workflow.Role, id uuid.UUID) (*Appointment, error) {
	switch role {
	case workflow.RoleAdmin, workflow.RoleDoctor, workflow.RoleStaff:
	default:
		return nil, workflow.ErrRoleDenied
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != workflow.StatusScheduled {
		return nil, ErrClosed
	}
	if err := s.repo.UpdateStatus(ctx, id, workflow.StatusScheduled, workflow.StatusCompleted); err != nil {
		return nil, err
	}
	a.Status = workflow.StatusCompleted
	return a, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) ListForDay(ctx context.Context, day time.Time, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListForDay(ctx, day, limit, offset)
}

func (s *Service) CountForDay(ctx context.Context, day time.Time) (int, error) {
	return s.repo.CountForDay(ctx, day)
}
