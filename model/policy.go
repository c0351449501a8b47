// model/policy.go
package model

// Conditions is the fixed predicate set a policy can attach to a grant.
// Every set condition must hold for the policy to match; the zero value
// matches unconditionally. Predicates are pure: they read the context and
// the caller-supplied resource attributes and never mutate either.
type Conditions struct {
	SameTeam         bool `json:"same_team,omitempty"`
	SameDepartment   bool `json:"same_department,omitempty"`
	IsOwner          bool `json:"is_owner,omitempty"`
	IsManagerOfOwner bool `json:"is_manager_of_owner,omitempty"`
	ProjectMember    bool `json:"project_member,omitempty"`

	// MaxHierarchyDepth caps the caller-supplied hierarchy_depth attribute.
	// Zero means no ceiling.
	MaxHierarchyDepth int `json:"max_hierarchy_depth,omitempty"`
}

// IsZero reports whether no condition is set.
func (c Conditions) IsZero() bool {
	return c == Conditions{}
}

// Match evaluates every set condition against the context and resource
// attributes.
func (c Conditions) Match(ctx UserContext, attrs map[string]any) bool {
	if c.SameTeam && StringAttr(attrs, "team_id") != ctx.TeamID {
		return false
	}
	if c.SameDepartment && StringAttr(attrs, "department_id") != ctx.DepartmentID {
		return false
	}
	if c.IsOwner && StringAttr(attrs, "owner_id") != ctx.UserID {
		return false
	}
	if c.IsManagerOfOwner && !ctx.IsManagerOf(StringAttr(attrs, "owner_id")) {
		return false
	}
	if c.ProjectMember {
		// Only constrains requests that name a project.
		if projectID := StringAttr(attrs, "project_id"); projectID != "" && !ctx.OnProject(projectID) {
			return false
		}
	}
	if c.MaxHierarchyDepth > 0 && IntAttr(attrs, "hierarchy_depth") > c.MaxHierarchyDepth {
		return false
	}
	return true
}

// AccessPolicy binds a role and resource class to a grant level, guarded by
// conditions. Policies are registered once at startup and never mutated.
type AccessPolicy struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Resource    ResourceType `json:"resource"`
	AccessLevel AccessLevel  `json:"access_level"`
	Conditions  Conditions   `json:"conditions"`
	Description string       `json:"description,omitempty"`

	// Higher priority policies are evaluated first.
	Priority int  `json:"priority"`
	Enabled  bool `json:"enabled"`
}

// Matches reports whether the policy applies to the caller: enabled, same
// role, and all conditions holding against the resource attributes.
func (p AccessPolicy) Matches(ctx UserContext, attrs map[string]any) bool {
	if !p.Enabled {
		return false
	}
	if p.Role != ctx.Role {
		return false
	}
	return p.Conditions.Match(ctx, attrs)
}

// Allows reports whether the policy's level satisfies the required level.
func (p AccessPolicy) Allows(required AccessLevel) bool {
	return p.AccessLevel.Allows(required)
}

// Inherited synthesizes the rank-inheritance variant of p for a
// higher-ranked caller: same grant, conditions stripped, priority one below
// the source so direct policies win ties.
func (p AccessPolicy) Inherited(as Role) AccessPolicy {
	return AccessPolicy{
		ID:          p.ID + "-inherited",
		Role:        as,
		Resource:    p.Resource,
		AccessLevel: p.AccessLevel,
		Conditions:  Conditions{},
		Description: "Inherited from " + p.ID,
		Priority:    p.Priority - 1,
		Enabled:     p.Enabled,
	}
}

// ScopeFilters derives the query constraints a caller must honor for a
// grant made under this policy, mirroring its set conditions one to one.
// IsManagerOfOwner constrains the match, not the downstream query, so it
// contributes no filter.
func (p AccessPolicy) ScopeFilters(ctx UserContext) map[string]any {
	filters := map[string]any{}
	if p.Conditions.SameTeam {
		filters["team_id"] = ctx.TeamID
	}
	if p.Conditions.SameDepartment {
		filters["department_id"] = ctx.DepartmentID
	}
	if p.Conditions.IsOwner {
		filters["owner_id"] = ctx.UserID
	}
	if p.Conditions.ProjectMember {
		filters["project_ids"] = append([]string(nil), ctx.ProjectIDs...)
	}
	if p.Conditions.MaxHierarchyDepth > 0 {
		filters["max_depth"] = p.Conditions.MaxHierarchyDepth
	}
	return filters
}

// StringAttr reads a string-valued resource attribute, tolerating absent
// keys and non-string values.
func StringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IntAttr reads an int-valued resource attribute. JSON-decoded numbers
// arrive as float64, so both encodings are accepted.
func IntAttr(attrs map[string]any, key string) int {
	switch v := attrs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
