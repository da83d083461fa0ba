package workflow

import "errors"

// Status is a patient-flow status. The vocabulary is closed: no value
// outside the constants below is ever stored.
type Status string

const (
	StatusRegistered     Status = "Registered"
	StatusVitalsDone     Status = "Vitals Done"
	StatusWithDoctor     Status = "With Doctor"
	StatusSentForTests   Status = "Sent for Tests"
	StatusRecheckPending Status = "Re-check Pending"
	StatusCompleted      Status = "Completed"

	// Booking lifecycle statuses, used by appointments only.
	StatusScheduled Status = "Scheduled"
	StatusCancelled Status = "Cancelled"
)

var (
	ErrUnknownStatus    = errors.New("unknown status")
	ErrCompletedLocked  = errors.New("patient record is completed")
	ErrTransitionDenied = errors.New("transition not allowed")
	ErrRoleDenied       = errors.New("role not permitted for this action")
)

// canonicalNext holds the forward path
// Registered -> Vitals Done -> With Doctor -> Sent for Tests -> Re-check Pending -> Completed.
var canonicalNext = map[Status]Status{
	StatusRegistered:     StatusVitalsDone,
	StatusVitalsDone:     StatusWithDoctor,
	StatusWithDoctor:     StatusSentForTests,
	StatusSentForTests:   StatusRecheckPending,
	StatusRecheckPending: StatusCompleted,
}

// Next returns the next status along the canonical path. It is a total
// function: any status not in the path, including Completed itself and
// unrecognized input, collapses to Completed.
func Next(current Status) Status {
	if next, ok := canonicalNext[current]; ok {
		return next
	}
	return StatusCompleted
}

// flowStatuses is the patient-flow vocabulary (appointment booking
// statuses are validated separately).
var flowStatuses = map[Status]bool{
	StatusRegistered:     true,
	StatusVitalsDone:     true,
	StatusWithDoctor:     true,
	StatusSentForTests:   true,
	StatusRecheckPending: true,
	StatusCompleted:      true,
}

// Valid reports whether s is a member of the patient-flow vocabulary.
func Valid(s Status) bool {
	return flowStatuses[s]
}

// allowedEdges lists the legal non-override transitions out of each status.
// Beyond the canonical path this includes the clinical shortcuts a doctor
// may take from With Doctor and the Re-check Pending send-back. Completed
// has no outgoing edges.
var allowedEdges = map[Status][]Status{
	StatusRegistered:     {StatusVitalsDone},
	StatusVitalsDone:     {StatusWithDoctor},
	StatusWithDoctor:     {StatusSentForTests, StatusRecheckPending, StatusCompleted},
	StatusSentForTests:   {StatusRecheckPending},
	StatusRecheckPending: {StatusWithDoctor, StatusCompleted},
}

// EdgeAllowed reports whether from -> to is a legal transition without the
// admin override.
func EdgeAllowed(from, to Status) bool {
	for _, s := range allowedEdges[from] {
		if s == to {
			return true
		}
	}
	return false
}
