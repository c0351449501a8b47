// model/decision.go
package model

import "time"

// AccessDecision is the engine's verdict for one request. Decisions are
// fresh values created per evaluation, consumed within the request, and
// never cached or mutated.
type AccessDecision struct {
	Allowed     bool         `json:"allowed"`
	Reason      string       `json:"reason"`
	PolicyID    string       `json:"policy_id,omitempty"`
	Resource    ResourceType `json:"resource,omitempty"`
	AccessLevel AccessLevel  `json:"access_level"`

	// ScopeFilters are the constraints the caller must apply to its own
	// data queries to honor a partial grant.
	ScopeFilters map[string]any `json:"scope_filters,omitempty"`

	DecisionTime    time.Time      `json:"decision_time"`
	ContextSnapshot map[string]any `json:"context_snapshot,omitempty"`
}

// DenyDecision builds a denial carrying a human-readable reason. Deny is
// data, not an error: unresolvable requests end here, never in a panic.
func DenyDecision(reason string, resource ResourceType) AccessDecision {
	return AccessDecision{
		Allowed:  false,
		Reason:   reason,
		Resource: resource,
	}
}

// AllowDecision builds a grant at the matched policy's level with its
// derived scope filters.
func AllowDecision(policyID string, resource ResourceType, level AccessLevel, scopeFilters map[string]any) AccessDecision {
	return AccessDecision{
		Allowed:      true,
		Reason:       "Access granted by policy",
		PolicyID:     policyID,
		Resource:     resource,
		AccessLevel:  level,
		ScopeFilters: scopeFilters,
	}
}
