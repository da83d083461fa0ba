package vitals

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type mockRepo struct {
	records []*Vitals
}

func (m *mockRepo) Create(_ context.Context, v *Vitals) error {
	v.ID = uuid.New()
	cp := *v
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockRepo) Latest(_ context.Context, patientID uuid.UUID) (*Vitals, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].PatientID == patientID {
			return m.records[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) History(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Vitals, int, error) {
	var out []*Vitals
	for _, v := range m.records {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out, len(out), nil
}

type mockFlow struct {
	patients    map[uuid.UUID]*patient.Patient
	transitions []workflow.Status

	// updateStatusErr makes every transition fail, simulating a lost
	// compare-and-set race.
	updateStatusErr error
}

func (m *mockFlow) Get(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockFlow) UpdateStatus(_ context.Context, role workflow.Role, actorID string, id uuid.UUID, to workflow.Status) (*patient.Patient, error) {
	if m.updateStatusErr != nil {
		return nil, m.updateStatusErr
	}
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	if err := workflow.DefaultPolicy().CanTransition(role, p.Status, to); err != nil {
		return nil, err
	}
	p.Status = to
	m.transitions = append(m.transitions, to)
	return p, nil
}

func newFixture(status workflow.Status) (*Service, *mockRepo, *mockFlow, uuid.UUID) {
	repo := &mockRepo{}
	pid := uuid.New()
	flow := &mockFlow{patients: map[uuid.UUID]*patient.Patient{
		pid: {ID: pid, Name: "Ravi Kumar", Status: status},
	}}
	return NewService(repo, flow, workflow.DefaultPolicy(), nil), repo, flow, pid
}

// rollbackRunner gives the map-backed repo transactional semantics: stored
// records are snapshotted before fn and restored when fn fails.
func rollbackRunner(repo *mockRepo) db.TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		saved := append([]*Vitals(nil), repo.records...)
		if err := fn(ctx); err != nil {
			repo.records = saved
			return err
		}
		return nil
	}
}

func sample(pid uuid.UUID) *Vitals {
	return &Vitals{
		PatientID:   pid,
		SystolicBP:  120,
		DiastolicBP: 80,
		Pulse:       72,
		SpO2:        98,
	}
}

func TestRecord_AdvancesRegisteredPatient(t *testing.T) {
	svc, repo, flow, pid := newFixture(workflow.StatusRegistered)

	v := sample(pid)
	if err := svc.Record(context.Background(), workflow.RoleStaff, "s1", v); err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.records))
	}
	if repo.records[0].RecordedBy != "s1" {
		t.Errorf("expected recorded_by s1, got %s", repo.records[0].RecordedBy)
	}
	if flow.patients[pid].Status != workflow.StatusVitalsDone {
		t.Errorf("expected patient advanced to Vitals Done, got %s", flow.patients[pid].Status)
	}
}

func TestRecord_NoTransitionMidFlow(t *testing.T) {
	svc, repo, flow, pid := newFixture(workflow.StatusWithDoctor)

	if err := svc.Record(context.Background(), workflow.RoleDoctor, "d1", sample(pid)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.records))
	}
	if len(flow.transitions) != 0 {
		t.Errorf("expected no transition, got %v", flow.transitions)
	}
	if flow.patients[pid].Status != workflow.StatusWithDoctor {
		t.Errorf("status should be unchanged, got %s", flow.patients[pid].Status)
	}
}

func TestRecord_CompletedLocked(t *testing.T) {
	svc, repo, _, pid := newFixture(workflow.StatusCompleted)

	err := svc.Record(context.Background(), workflow.RoleDoctor, "d1", sample(pid))
	if !errors.Is(err, workflow.ErrCompletedLocked) {
		t.Fatalf("expected ErrCompletedLocked, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Errorf("locked record must not store vitals, got %d records", len(repo.records))
	}
}

func TestRecord_RoleDenied(t *testing.T) {
	svc, repo, _, pid := newFixture(workflow.StatusRegistered)

	err := svc.Record(context.Background(), workflow.RolePatient, "p1", sample(pid))
	if !errors.Is(err, workflow.ErrRoleDenied) {
		t.Errorf("expected ErrRoleDenied, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Errorf("denied record must not store vitals")
	}
}

// TestRecord_FailedAdvanceDiscardsMeasurement covers the atomicity of the
// record-then-advance pair: when the Registered patient's transition loses a
// status race the stored measurement rolls back with it, so the caller can
// simply retry.
func TestRecord_FailedAdvanceDiscardsMeasurement(t *testing.T) {
	repo := &mockRepo{}
	pid := uuid.New()
	flow := &mockFlow{
		patients: map[uuid.UUID]*patient.Patient{
			pid: {ID: pid, Name: "Ravi Kumar", Status: workflow.StatusRegistered},
		},
		updateStatusErr: patient.ErrConflict,
	}
	svc := NewService(repo, flow, workflow.DefaultPolicy(), rollbackRunner(repo))

	err := svc.Record(context.Background(), workflow.RoleStaff, "s1", sample(pid))
	if !errors.Is(err, patient.ErrConflict) {
		t.Fatalf("expected ErrConflict from the failed advance, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Errorf("measurement must roll back with the failed advance, got %d records", len(repo.records))
	}

	// With the race gone the retry stores and advances.
	flow.updateStatusErr = nil
	if err := svc.Record(context.Background(), workflow.RoleStaff, "s1", sample(pid)); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.records))
	}
	if flow.patients[pid].Status != workflow.StatusVitalsDone {
		t.Errorf("expected Vitals Done after retry, got %s", flow.patients[pid].Status)
	}
}

func TestRecord_UnknownPatient(t *testing.T) {
	svc, _, _, _ := newFixture(workflow.StatusRegistered)

	err := svc.Record(context.Background(), workflow.RoleStaff, "s1", sample(uuid.New()))
	if !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected patient.ErrNotFound, got %v", err)
	}
}

func TestRecord_Validation(t *testing.T) {
	svc, _, _, pid := newFixture(workflow.StatusRegistered)
	ctx := context.Background()

	v := sample(pid)
	v.SpO2 = 120
	if err := svc.Record(ctx, workflow.RoleStaff, "s1", v); err == nil {
		t.Error("expected error for spo2 > 100")
	}

	v = sample(pid)
	v.Pulse = -1
	if err := svc.Record(ctx, workflow.RoleStaff, "s1", v); err == nil {
		t.Error("expected error for negative pulse")
	}

	v = sample(uuid.Nil)
	if err := svc.Record(ctx, workflow.RoleStaff, "s1", v); err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestLatest(t *testing.T) {
	svc, _, _, pid := newFixture(workflow.StatusWithDoctor)
	ctx := context.Background()

	if _, err := svc.Latest(ctx, pid); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	first := sample(pid)
	second := sample(pid)
	second.Pulse = 90
	if err := svc.Record(ctx, workflow.RoleStaff, "s1", first); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(ctx, workflow.RoleStaff, "s1", second); err != nil {
		t.Fatalf("record: %v", err)
	}

	latest, err := svc.Latest(ctx, pid)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Pulse != 90 {
		t.Errorf("expected latest pulse 90, got %d", latest.Pulse)
	}
}
