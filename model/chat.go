// model/chat.go
package model

// ChatSource describes one retrieval source attached to an assistant
// response. Sources the caller may not access are replaced by restricted
// placeholders rather than dropped, so counts and ordering survive
// filtering.
type ChatSource struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	TeamID       string `json:"team_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	OwnerID      string `json:"owner_id,omitempty"`
	AccessDenied bool   `json:"access_denied,omitempty"`
}

// RestrictedSource builds the placeholder that stands in for a denied
// source. The declared type is kept so clients can still render an icon.
func RestrictedSource(sourceType string) ChatSource {
	return ChatSource{
		Title:        "[Restricted]",
		Type:         sourceType,
		AccessDenied: true,
	}
}

// ChatResponse is an assistant reply before or after guard filtering.
type ChatResponse struct {
	Content string       `json:"content"`
	Sources []ChatSource `json:"sources"`
}
