package queue

import (
	"sort"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

// The queue views are pure functions over a patient snapshot. Nothing here
// caches or mutates: every call re-derives its result so the views can never
// drift from the patient rows.

// SortForDisplay orders a snapshot for the waiting-room screen: patients
// still in the flow come first, completed ones sink to the bottom, and
// within each half the lower token goes first. The input is not modified.
func SortForDisplay(snapshot []*patient.Patient) []*patient.Patient {
	out := make([]*patient.Patient, len(snapshot))
	copy(out, snapshot)
	sort.SliceStable(out, func(i, j int) bool {
		iDone := out[i].Status == workflow.StatusCompleted
		jDone := out[j].Status == workflow.StatusCompleted
		if iDone != jDone {
			return !iDone
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Active returns the patients still moving through the flow, token order.
func Active(snapshot []*patient.Patient) []*patient.Patient {
	var out []*patient.Patient
	for _, p := range snapshot {
		if p.Status != workflow.StatusCompleted {
			out = append(out, p)
		}
	}
	return SortForDisplay(out)
}

// Returning returns the patients waiting to see the doctor again after
// tests, token order.
func Returning(snapshot []*patient.Patient) []*patient.Patient {
	var out []*patient.Patient
	for _, p := range snapshot {
		if p.Status == workflow.StatusRecheckPending {
			out = append(out, p)
		}
	}
	return SortForDisplay(out)
}

// CountByStatus tallies the snapshot per flow status.
func CountByStatus(snapshot []*patient.Patient) map[workflow.Status]int {
	counts := make(map[workflow.Status]int)
	for _, p := range snapshot {
		counts[p.Status]++
	}
	return counts
}
