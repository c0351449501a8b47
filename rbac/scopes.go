// rbac/scopes.go
package rbac

import (
	"context"

	"github.com/atriumhq/atrium/model"
)

// KnowledgeScope bounds knowledge-graph retrieval for one user: the node
// namespaces retrieval may touch, the maximum traversal depth, and the
// filters appended to every query.
type KnowledgeScope struct {
	AllowedNodes []string       `json:"allowed_nodes"`
	MaxDepth     int            `json:"max_depth"`
	Filters      map[string]any `json:"filters"`
}

// ToolPermission is the per-tool verdict returned by MCPToolPermissions.
// Denied tools report level "none".
type ToolPermission struct {
	Allowed bool           `json:"allowed"`
	Level   string         `json:"level"`
	Scope   map[string]any `json:"scope,omitempty"`
}

// DashboardConfig selects the widgets and data scope a role's dashboard is
// built from.
type DashboardConfig struct {
	Widgets         []string       `json:"widgets"`
	DataScope       map[string]any `json:"data_scope"`
	RefreshInterval int            `json:"refresh_interval"`
}

// KnowledgeScope derives retrieval bounds from the user's role and org
// placement. It consults no policies: the scope narrows what an already
// authorized retrieval may return.
func (g *Guard) KnowledgeScope(user model.UserContext) KnowledgeScope {
	scope := KnowledgeScope{
		AllowedNodes: []string{},
		MaxDepth:     10,
		Filters:      map[string]any{},
	}
	switch user.Role {
	case model.RoleExecutive:
		scope.AllowedNodes = []string{"*"}
	case model.RoleLeadership:
		scope.AllowedNodes = []string{"department:" + user.DepartmentID, "team:" + user.TeamID}
		scope.Filters["department_id"] = user.DepartmentID
	case model.RoleManager:
		scope.AllowedNodes = []string{"team:" + user.TeamID}
		scope.Filters["team_id"] = user.TeamID
	case model.RoleContributor:
		scope.AllowedNodes = []string{"team:" + user.TeamID}
		scope.Filters["team_id"] = user.TeamID
		scope.MaxDepth = 5
	default:
		scope.AllowedNodes = []string{"team:" + user.TeamID}
		scope.Filters["team_id"] = user.TeamID
		scope.Filters["onboarding_visible"] = true
		scope.MaxDepth = 2
	}
	return scope
}

var mcpTools = []struct {
	name     string
	resource model.ResourceType
}{
	{"jira", model.ResourceMCPJira},
	{"github", model.ResourceMCPGitHub},
	{"slack", model.ResourceMCPSlack},
}

// MCPToolPermissions evaluates read access to every MCP tool and returns the
// verdicts keyed by tool name. Allowed tools carry the granted level and the
// scope filters the tool call must honor.
func (g *Guard) MCPToolPermissions(ctx context.Context, user model.UserContext) map[string]ToolPermission {
	tools := make(map[string]ToolPermission, len(mcpTools))
	for _, tool := range mcpTools {
		decision := g.CheckAccess(ctx, user, tool.resource, model.AccessRead, nil)
		perm := ToolPermission{
			Allowed: decision.Allowed,
			Level:   model.AccessNone.String(),
			Scope:   decision.ScopeFilters,
		}
		if decision.Allowed {
			perm.Level = decision.AccessLevel.String()
		}
		tools[tool.name] = perm
	}
	return tools
}

// DashboardConfig returns the widget set and data scope for the user's role.
// Onboarding dashboards refresh slower than operational ones.
func (g *Guard) DashboardConfig(user model.UserContext) DashboardConfig {
	config := DashboardConfig{
		Widgets:         []string{},
		DataScope:       map[string]any{},
		RefreshInterval: 60,
	}
	switch user.Role {
	case model.RoleExecutive:
		config.Widgets = []string{
			"company_overview", "all_teams_health", "cross_team_analytics",
			"company_okrs", "executive_summary", "bottleneck_analysis", "ownership_map",
		}
		config.DataScope = map[string]any{"level": "company"}
	case model.RoleLeadership:
		config.Widgets = []string{
			"department_overview", "team_health", "department_analytics",
			"department_okrs", "team_bottlenecks", "ownership_map",
		}
		config.DataScope = map[string]any{"level": "department", "department_id": user.DepartmentID}
	case model.RoleManager:
		config.Widgets = []string{
			"team_overview", "sprint_velocity", "team_workload",
			"team_analytics", "member_status", "ownership_lookup",
		}
		config.DataScope = map[string]any{"level": "team", "team_id": user.TeamID}
	case model.RoleContributor:
		config.Widgets = []string{"personal_tasks", "team_activity", "my_analytics", "team_knowledge"}
		config.DataScope = map[string]any{"level": "personal", "team_id": user.TeamID, "user_id": user.UserID}
	default:
		config.Widgets = []string{"onboarding_progress", "next_steps", "team_introduction", "help_resources"}
		config.DataScope = map[string]any{"level": "onboarding", "user_id": user.UserID}
		config.RefreshInterval = 300
	}
	return config
}
