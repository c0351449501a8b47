// audit/model.go
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/atriumhq/atrium/model"
)

// EventType classifies audit events.
type EventType string

const (
	EventAccessGranted    EventType = "access_granted"
	EventAccessDenied     EventType = "access_denied"
	EventPermissionCheck  EventType = "permission_check"
	EventMCPToolCall      EventType = "mcp_tool_call"
	EventMCPToolBlocked   EventType = "mcp_tool_blocked"
	EventChatFiltered     EventType = "chat_filtered"
	EventDataRedacted     EventType = "data_redacted"
	EventRoleAssigned     EventType = "role_assigned"
	EventPolicyRegistered EventType = "policy_registered"
	EventPolicyRemoved    EventType = "policy_removed"
)

// Event is one audit record. Every guard decision produces one; controllers
// add events for filtering and redaction outcomes.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"user_id"`
	Role      string         `json:"role,omitempty"`
	Resource  string         `json:"resource,omitempty"`
	Allowed   bool           `json:"allowed"`
	PolicyID  string         `json:"policy_id,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewDecisionEvent converts an access decision into its audit record.
func NewDecisionEvent(user model.UserContext, decision model.AccessDecision) Event {
	eventType := EventAccessDenied
	if decision.Allowed {
		eventType = EventAccessGranted
	}
	timestamp := decision.DecisionTime
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: timestamp,
		UserID:    user.UserID,
		Role:      user.Role.String(),
		Resource:  string(decision.Resource),
		Allowed:   decision.Allowed,
		PolicyID:  decision.PolicyID,
		Reason:    decision.Reason,
	}
}
