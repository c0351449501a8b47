// model/employee.go
package model

import "time"

// Employee is the directory record backing context enrichment. It mirrors
// the org graph: team and department membership, the reporting chain, and
// project assignments.
type Employee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	TeamID        string    `json:"team_id,omitempty"`
	DepartmentID  string    `json:"department_id,omitempty"`
	OrgID         string    `json:"org_id,omitempty"`
	ManagerID     string    `json:"manager_id,omitempty"`
	DirectReports []string  `json:"direct_reports,omitempty"`
	ProjectIDs    []string  `json:"project_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Metadata carries profile extras (phone numbers, personal email and
	// the like). It is redacted for viewers below leadership.
	Metadata map[string]any `json:"metadata,omitempty"`
}
