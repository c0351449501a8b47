// rbac/scopes_test.go
package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/rbac"
)

func TestKnowledgeScope(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	scope := guard.KnowledgeScope(platformUser(model.RoleExecutive))
	assert.Equal(t, []string{"*"}, scope.AllowedNodes)
	assert.Equal(t, 10, scope.MaxDepth)
	assert.Empty(t, scope.Filters)

	scope = guard.KnowledgeScope(platformUser(model.RoleLeadership))
	assert.Equal(t, []string{"department:engineering", "team:platform"}, scope.AllowedNodes)
	assert.Equal(t, 10, scope.MaxDepth)
	assert.Equal(t, map[string]any{"department_id": "engineering"}, scope.Filters)

	scope = guard.KnowledgeScope(platformUser(model.RoleManager))
	assert.Equal(t, []string{"team:platform"}, scope.AllowedNodes)
	assert.Equal(t, 10, scope.MaxDepth)
	assert.Equal(t, map[string]any{"team_id": "platform"}, scope.Filters)

	scope = guard.KnowledgeScope(platformUser(model.RoleContributor))
	assert.Equal(t, []string{"team:platform"}, scope.AllowedNodes)
	assert.Equal(t, 5, scope.MaxDepth)
	assert.Equal(t, map[string]any{"team_id": "platform"}, scope.Filters)

	// New hires see a shallow, onboarding-only slice of the graph.
	scope = guard.KnowledgeScope(platformUser(model.RoleNewHire))
	assert.Equal(t, []string{"team:platform"}, scope.AllowedNodes)
	assert.Equal(t, 2, scope.MaxDepth)
	assert.Equal(t, map[string]any{"team_id": "platform", "onboarding_visible": true}, scope.Filters)
}

func TestMCPToolPermissions(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)
	ctx := context.Background()

	// Contributors reach Jira and GitHub through ownership grants; the
	// defaulted owner_id satisfies them without attributes.
	perms := guard.MCPToolPermissions(ctx, platformUser(model.RoleContributor))
	assert.Len(t, perms, 3)
	assert.Equal(t, rbac.ToolPermission{
		Allowed: true,
		Level:   "read",
		Scope:   map[string]any{"owner_id": "user-1"},
	}, perms["jira"])
	assert.Equal(t, map[string]any{"owner_id": "user-1"}, perms["github"].Scope)
	assert.False(t, perms["slack"].Allowed)
	assert.Equal(t, "none", perms["slack"].Level)

	// Manager grants are team-conditioned, and tool checks carry no team
	// attribute, so they fail closed.
	perms = guard.MCPToolPermissions(ctx, platformUser(model.RoleManager))
	assert.False(t, perms["jira"].Allowed)
	assert.Equal(t, "none", perms["jira"].Level)
	assert.False(t, perms["github"].Allowed)
	assert.False(t, perms["slack"].Allowed)

	// Leadership and above pass through the condition-stripped inherited
	// grants instead.
	perms = guard.MCPToolPermissions(ctx, platformUser(model.RoleLeadership))
	assert.True(t, perms["jira"].Allowed)
	assert.Equal(t, "read", perms["jira"].Level)
	assert.Empty(t, perms["jira"].Scope)
	assert.True(t, perms["github"].Allowed)
	assert.False(t, perms["slack"].Allowed)

	perms = guard.MCPToolPermissions(ctx, platformUser(model.RoleExecutive))
	assert.True(t, perms["jira"].Allowed)
	assert.True(t, perms["github"].Allowed)
	assert.False(t, perms["slack"].Allowed)
}

func TestDashboardConfig(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	config := guard.DashboardConfig(platformUser(model.RoleExecutive))
	assert.Contains(t, config.Widgets, "company_overview")
	assert.Contains(t, config.Widgets, "cross_team_analytics")
	assert.Equal(t, map[string]any{"level": "company"}, config.DataScope)
	assert.Equal(t, 60, config.RefreshInterval)

	config = guard.DashboardConfig(platformUser(model.RoleLeadership))
	assert.Contains(t, config.Widgets, "department_overview")
	assert.Equal(t, "engineering", config.DataScope["department_id"])

	config = guard.DashboardConfig(platformUser(model.RoleManager))
	assert.Contains(t, config.Widgets, "team_overview")
	assert.Contains(t, config.Widgets, "sprint_velocity")
	assert.Equal(t, "platform", config.DataScope["team_id"])

	config = guard.DashboardConfig(platformUser(model.RoleContributor))
	assert.Equal(t, []string{"personal_tasks", "team_activity", "my_analytics", "team_knowledge"}, config.Widgets)
	assert.Equal(t, "user-1", config.DataScope["user_id"])

	config = guard.DashboardConfig(platformUser(model.RoleNewHire))
	assert.Equal(t, []string{"onboarding_progress", "next_steps", "team_introduction", "help_resources"}, config.Widgets)
	assert.Equal(t, map[string]any{"level": "onboarding", "user_id": "user-1"}, config.DataScope)
	assert.Equal(t, 300, config.RefreshInterval)
}
