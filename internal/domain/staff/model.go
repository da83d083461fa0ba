package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

var ErrNotFound = errors.New("staff member not found")

// Member is a clinic employee. Role drives what the workflow policy lets
// them do; OnDuty feeds the dashboard's doctors-on-duty count.
type Member struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Role      workflow.Role `json:"role"`
	Specialty string        `json:"specialty,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	OnDuty    bool          `json:"on_duty"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// staffRoles is the closed set of roles a staff record may carry.
var staffRoles = map[workflow.Role]bool{
	workflow.RoleAdmin:  true,
	workflow.RoleDoctor: true,
	workflow.RoleStaff:  true,
}

// ValidRole reports whether r may be assigned to a staff member.
func ValidRole(r workflow.Role) bool {
	return staffRoles[r]
}
