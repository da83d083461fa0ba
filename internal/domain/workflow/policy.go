package workflow

// Role is an authenticated user's role as supplied by the identity
// provider. The role value is trusted as-is but every mutation re-checks
// it against the policy table here, server-side.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"
)

// Capability names an action a role may or may not perform.
type Capability string

const (
	CapRegisterPatient    Capability = "register_patient"
	CapBookAppointment    Capability = "book_appointment"
	CapRecordVitals       Capability = "record_vitals"
	CapAdvanceToDoctor    Capability = "advance_to_doctor"
	CapClinicalTransition Capability = "clinical_transition"
	CapOverrideStatus     Capability = "override_status"
	CapViewQueue          Capability = "view_queue"
	CapManageSettings     Capability = "manage_settings"
)

// Policy maps capabilities to the roles allowed to exercise them.
type Policy struct {
	grants map[Capability]map[Role]bool
}

// DefaultPolicy returns the standard clinic capability table.
func DefaultPolicy() *Policy {
	p := &Policy{grants: make(map[Capability]map[Role]bool)}
	p.grant(CapRegisterPatient, RoleAdmin, RoleStaff)
	p.grant(CapBookAppointment, RoleAdmin, RoleStaff, RolePatient)
	p.grant(CapRecordVitals, RoleAdmin, RoleDoctor, RoleStaff)
	p.grant(CapAdvanceToDoctor, RoleAdmin, RoleDoctor)
	p.grant(CapClinicalTransition, RoleAdmin, RoleDoctor)
	p.grant(CapOverrideStatus, RoleAdmin)
	p.grant(CapViewQueue, RoleAdmin, RoleDoctor, RoleStaff)
	p.grant(CapManageSettings, RoleAdmin)
	return p
}

func (p *Policy) grant(cap Capability, roles ...Role) {
	m, ok := p.grants[cap]
	if !ok {
		m = make(map[Role]bool)
		p.grants[cap] = m
	}
	for _, r := range roles {
		m[r] = true
	}
}

// Allows reports whether role holds the capability.
func (p *Policy) Allows(role Role, cap Capability) bool {
	return p.grants[cap][role]
}

// transitionCapability returns the capability needed for the from -> to
// edge. Edges must already be legal per EdgeAllowed.
func transitionCapability(from, to Status) Capability {
	switch to {
	case StatusVitalsDone:
		return CapRecordVitals
	case StatusWithDoctor:
		return CapAdvanceToDoctor
	default:
		return CapClinicalTransition
	}
}

// CanTransition decides whether role may move a patient from one status to
// another. Admins may set any vocabulary member directly (the override
// path); everyone else is held to the transition table, and Completed is
// terminal for them.
func (p *Policy) CanTransition(role Role, from, to Status) error {
	if !Valid(to) {
		return ErrUnknownStatus
	}
	if p.Allows(role, CapOverrideStatus) {
		return nil
	}
	if from == StatusCompleted {
		return ErrCompletedLocked
	}
	if !EdgeAllowed(from, to) {
		return ErrTransitionDenied
	}
	if !p.Allows(role, transitionCapability(from, to)) {
		return ErrRoleDenied
	}
	return nil
}
