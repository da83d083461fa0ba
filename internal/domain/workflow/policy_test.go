package workflow

import (
	"errors"
	"testing"
)

func TestDefaultPolicyCapabilities(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		cap  Capability
		role Role
		want bool
	}{
		{CapRegisterPatient, RoleAdmin, true},
		{CapRegisterPatient, RoleStaff, true},
		{CapRegisterPatient, RoleDoctor, false},
		{CapRegisterPatient, RolePatient, false},
		{CapBookAppointment, RolePatient, true},
		{CapBookAppointment, RoleDoctor, false},
		{CapRecordVitals, RoleStaff, true},
		{CapRecordVitals, RoleDoctor, true},
		{CapRecordVitals, RolePatient, false},
		{CapAdvanceToDoctor, RoleDoctor, true},
		{CapAdvanceToDoctor, RoleStaff, false},
		{CapClinicalTransition, RoleDoctor, true},
		{CapClinicalTransition, RoleStaff, false},
		{CapOverrideStatus, RoleAdmin, true},
		{CapOverrideStatus, RoleDoctor, false},
		{CapViewQueue, RoleStaff, true},
		{CapViewQueue, RolePatient, false},
		{CapManageSettings, RoleAdmin, true},
		{CapManageSettings, RoleStaff, false},
	}
	for _, c := range cases {
		if got := p.Allows(c.role, c.cap); got != c.want {
			t.Errorf("Allows(%s, %s) = %v, want %v", c.role, c.cap, got, c.want)
		}
	}
}

func TestCanTransitionCanonical(t *testing.T) {
	p := DefaultPolicy()

	if err := p.CanTransition(RoleStaff, StatusRegistered, StatusVitalsDone); err != nil {
		t.Errorf("staff should record vitals: %v", err)
	}
	if err := p.CanTransition(RoleDoctor, StatusVitalsDone, StatusWithDoctor); err != nil {
		t.Errorf("doctor should advance to With Doctor: %v", err)
	}
	if err := p.CanTransition(RoleDoctor, StatusWithDoctor, StatusSentForTests); err != nil {
		t.Errorf("doctor should send for tests: %v", err)
	}
	if err := p.CanTransition(RoleDoctor, StatusRecheckPending, StatusCompleted); err != nil {
		t.Errorf("doctor should complete: %v", err)
	}
}

func TestCanTransitionSendBack(t *testing.T) {
	p := DefaultPolicy()
	if err := p.CanTransition(RoleDoctor, StatusRecheckPending, StatusWithDoctor); err != nil {
		t.Errorf("send back to doctor should be allowed: %v", err)
	}
	if err := p.CanTransition(RoleStaff, StatusRecheckPending, StatusWithDoctor); !errors.Is(err, ErrRoleDenied) {
		t.Errorf("staff send-back: got %v, want ErrRoleDenied", err)
	}
}

func TestCanTransitionRoleDenied(t *testing.T) {
	p := DefaultPolicy()

	if err := p.CanTransition(RoleStaff, StatusVitalsDone, StatusWithDoctor); !errors.Is(err, ErrRoleDenied) {
		t.Errorf("got %v, want ErrRoleDenied", err)
	}
	if err := p.CanTransition(RolePatient, StatusRegistered, StatusVitalsDone); !errors.Is(err, ErrRoleDenied) {
		t.Errorf("got %v, want ErrRoleDenied", err)
	}
}

func TestCanTransitionCompletedLocked(t *testing.T) {
	p := DefaultPolicy()

	if err := p.CanTransition(RoleDoctor, StatusCompleted, StatusWithDoctor); !errors.Is(err, ErrCompletedLocked) {
		t.Errorf("got %v, want ErrCompletedLocked", err)
	}
	if err := p.CanTransition(RoleStaff, StatusCompleted, StatusVitalsDone); !errors.Is(err, ErrCompletedLocked) {
		t.Errorf("got %v, want ErrCompletedLocked", err)
	}
}

func TestCanTransitionAdminOverride(t *testing.T) {
	p := DefaultPolicy()

	// Admin may jump anywhere, including out of Completed.
	if err := p.CanTransition(RoleAdmin, StatusCompleted, StatusWithDoctor); err != nil {
		t.Errorf("admin override out of Completed: %v", err)
	}
	if err := p.CanTransition(RoleAdmin, StatusRegistered, StatusCompleted); err != nil {
		t.Errorf("admin override jump: %v", err)
	}
	// But never outside the vocabulary.
	if err := p.CanTransition(RoleAdmin, StatusRegistered, Status("Archived")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("got %v, want ErrUnknownStatus", err)
	}
}

func TestCanTransitionIllegalEdge(t *testing.T) {
	p := DefaultPolicy()

	if err := p.CanTransition(RoleDoctor, StatusRegistered, StatusCompleted); !errors.Is(err, ErrTransitionDenied) {
		t.Errorf("got %v, want ErrTransitionDenied", err)
	}
	if err := p.CanTransition(RoleDoctor, StatusSentForTests, StatusWithDoctor); !errors.Is(err, ErrTransitionDenied) {
		t.Errorf("got %v, want ErrTransitionDenied", err)
	}
}
