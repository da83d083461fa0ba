package staff

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

type mockRepo struct {
	members map[uuid.UUID]*Member
}

func newMockRepo() *mockRepo {
	return &mockRepo{members: make(map[uuid.UUID]*Member)}
}

func (m *mockRepo) Create(_ context.Context, mem *Member) error {
	mem.ID = uuid.New()
	cp := *mem
	m.members[mem.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *mem
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, mem *Member) error {
	if _, ok := m.members[mem.ID]; !ok {
		return ErrNotFound
	}
	cp := *mem
	m.members[mem.ID] = &cp
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Member, int, error) {
	var all []*Member
	for _, mem := range m.members {
		all = append(all, mem)
	}
	return all, len(all), nil
}

func (m *mockRepo) SetOnDuty(_ context.Context, id uuid.UUID, onDuty bool) error {
	mem, ok := m.members[id]
	if !ok {
		return ErrNotFound
	}
	mem.OnDuty = onDuty
	return nil
}

func (m *mockRepo) SetRole(_ context.Context, id uuid.UUID, role workflow.Role) error {
	mem, ok := m.members[id]
	if !ok {
		return ErrNotFound
	}
	mem.Role = role
	return nil
}

func (m *mockRepo) DoctorsOnDuty(_ context.Context) ([]*Member, error) {
	var docs []*Member
	for _, mem := range m.members {
		if mem.Role == workflow.RoleDoctor && mem.OnDuty && mem.Active {
			docs = append(docs, mem)
		}
	}
	return docs, nil
}

func (m *mockRepo) CountDoctorsOnDuty(ctx context.Context) (int, error) {
	docs, err := m.DoctorsOnDuty(ctx)
	return len(docs), err
}

func TestCreate_AdminOnly(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), workflow.RoleStaff, &Member{Name: "Dr. Shah", Role: workflow.RoleDoctor})
	if !errors.Is(err, workflow.ErrRoleDenied) {
		t.Errorf("expected ErrRoleDenied, got %v", err)
	}

	m := &Member{Name: "Dr. Shah", Role: workflow.RoleDoctor, Specialty: "General Medicine"}
	if err := svc.Create(context.Background(), workflow.RoleAdmin, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !m.Active {
		t.Error("new member should be active")
	}
}

func TestCreate_InvalidRole(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), workflow.RoleAdmin, &Member{Name: "X", Role: workflow.RolePatient})
	if err == nil {
		t.Error("expected error for patient role on staff record")
	}
	err = svc.Create(context.Background(), workflow.RoleAdmin, &Member{Name: "X", Role: "janitor"})
	if err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestSetRole(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	m := &Member{Name: "A. Nurse", Role: workflow.RoleStaff}
	if err := svc.Create(context.Background(), workflow.RoleAdmin, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SetRole(context.Background(), workflow.RoleStaff, m.ID, workflow.RoleAdmin); !errors.Is(err, workflow.ErrRoleDenied) {
		t.Errorf("expected ErrRoleDenied for staff actor, got %v", err)
	}
	if err := svc.SetRole(context.Background(), workflow.RoleAdmin, m.ID, workflow.RoleDoctor); err != nil {
		t.Fatalf("set role: %v", err)
	}
	if repo.members[m.ID].Role != workflow.RoleDoctor {
		t.Errorf("expected doctor, got %s", repo.members[m.ID].Role)
	}
}

func TestDoctorsOnDuty(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	doc1 := &Member{Name: "Dr. A", Role: workflow.RoleDoctor}
	doc2 := &Member{Name: "Dr. B", Role: workflow.RoleDoctor}
	nurse := &Member{Name: "N. C", Role: workflow.RoleStaff}
	for _, m := range []*Member{doc1, doc2, nurse} {
		if err := svc.Create(ctx, workflow.RoleAdmin, m); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := svc.SetOnDuty(ctx, workflow.RoleStaff, doc1.ID, true); err != nil {
		t.Fatalf("set on duty: %v", err)
	}
	if err := svc.SetOnDuty(ctx, workflow.RoleStaff, nurse.ID, true); err != nil {
		t.Fatalf("set on duty: %v", err)
	}

	count, err := svc.CountDoctorsOnDuty(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 doctor on duty, got %d", count)
	}

	docs, err := svc.DoctorsOnDuty(ctx)
	if err != nil {
		t.Fatalf("doctors on duty: %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "Dr. A" {
		t.Errorf("unexpected on-duty list: %v", docs)
	}
}

func TestSetOnDuty_PatientDenied(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.SetOnDuty(context.Background(), workflow.RolePatient, uuid.New(), true)
	if !errors.Is(err, workflow.ErrRoleDenied) {
		t.Errorf("expected ErrRoleDenied, got %v", err)
	}
}
