package queue

import (
	"context"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

// PatientSnapshots provides the patient snapshot the views derive from;
// satisfied by patient.Service.
type PatientSnapshots interface {
	ListActive(ctx context.Context) ([]*patient.Patient, error)
}

// AppointmentCounts provides the day's booking count; satisfied by
// appointment.Service.
type AppointmentCounts interface {
	CountForDay(ctx context.Context, day time.Time) (int, error)
}

// DutyRoster provides the doctors-on-duty count; satisfied by staff.Service.
type DutyRoster interface {
	CountDoctorsOnDuty(ctx context.Context) (int, error)
}

// DashboardStats is the front-desk overview card.
type DashboardStats struct {
	AppointmentsToday int                     `json:"appointments_today"`
	ActiveQueue       int                     `json:"active_queue"`
	ReturnQueue       int                     `json:"return_queue"`
	DoctorsOnDuty     int                     `json:"doctors_on_duty"`
	ByStatus          map[workflow.Status]int `json:"by_status"`
}

type Service struct {
	patients     PatientSnapshots
	appointments AppointmentCounts
	roster       DutyRoster
}

func NewService(patients PatientSnapshots, appointments AppointmentCounts, roster DutyRoster) *Service {
	return &Service{patients: patients, appointments: appointments, roster: roster}
}

// ActiveQueue re-derives the waiting queue from the current patient rows.
func (s *Service) ActiveQueue(ctx context.Context) ([]*patient.Patient, error) {
	snapshot, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return Active(snapshot), nil
}

// ReturnQueue re-derives the post-test re-check queue.
func (s *Service) ReturnQueue(ctx context.Context) ([]*patient.Patient, error) {
	snapshot, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return Returning(snapshot), nil
}

// Dashboard assembles the overview stats for the given day.
func (s *Service) Dashboard(ctx context.Context, day time.Time) (*DashboardStats, error) {
	snapshot, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	appts, err := s.appointments.CountForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	doctors, err := s.roster.CountDoctorsOnDuty(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		AppointmentsToday: appts,
		ActiveQueue:       len(Active(snapshot)),
		ReturnQueue:       len(Returning(snapshot)),
		DoctorsOnDuty:     doctors,
		ByStatus:          CountByStatus(snapshot),
	}, nil
}
