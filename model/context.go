// model/context.go
package model

// UserContext carries the authenticated caller's identity for the lifetime
// of one request. The context builder constructs it once; everything past
// that treats it as read-only.
type UserContext struct {
	UserID        string         `json:"user_id"`
	Email         string         `json:"email,omitempty"`
	Name          string         `json:"name,omitempty"`
	Role          Role           `json:"role"`
	TeamID        string         `json:"team_id,omitempty"`
	DepartmentID  string         `json:"department_id,omitempty"`
	OrgID         string         `json:"org_id,omitempty"`
	ManagerID     string         `json:"manager_id,omitempty"`
	DirectReports []string       `json:"direct_reports,omitempty"`
	ProjectIDs    []string       `json:"project_ids,omitempty"`
	SessionID     string         `json:"session_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// IsManagerOf reports whether userID is one of the caller's direct reports.
func (c UserContext) IsManagerOf(userID string) bool {
	for _, id := range c.DirectReports {
		if id == userID {
			return true
		}
	}
	return false
}

// OnProject reports whether the caller is assigned to the given project.
func (c UserContext) OnProject(projectID string) bool {
	for _, id := range c.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// Snapshot captures the identity fields a decision records for auditing.
func (c UserContext) Snapshot() map[string]any {
	return map[string]any{
		"user_id":       c.UserID,
		"role":          c.Role.String(),
		"team_id":       c.TeamID,
		"department_id": c.DepartmentID,
	}
}
