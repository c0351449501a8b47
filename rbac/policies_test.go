// rbac/policies_test.go
package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/rbac"
)

func TestDefaultPolicies(t *testing.T) {
	policies := rbac.DefaultPolicies()
	assert.Len(t, policies, 39)

	seen := make(map[string]bool, len(policies))
	for _, p := range policies {
		assert.False(t, seen[p.ID], "duplicate policy id %s", p.ID)
		seen[p.ID] = true

		assert.True(t, p.Role.Valid(), "policy %s", p.ID)
		assert.True(t, p.Resource.Valid(), "policy %s", p.ID)
		assert.True(t, p.AccessLevel.Valid(), "policy %s", p.ID)
		assert.True(t, p.Enabled, "policy %s", p.ID)
		assert.NotEmpty(t, p.Description, "policy %s", p.ID)
	}

	// Every established role can chat and read its own history.
	for _, role := range []model.Role{model.RoleContributor, model.RoleManager, model.RoleLeadership, model.RoleExecutive} {
		assert.True(t, seen[role.String()+"-chat"])
		assert.True(t, seen[role.String()+"-chat-history-own"])
	}
	assert.True(t, seen["new-hire-chat"])
	assert.False(t, seen["new_hire-chat-history-own"])
}

func TestDefaultPolicies_ToolGrantsStayConditioned(t *testing.T) {
	byID := make(map[string]model.AccessPolicy)
	for _, p := range rbac.DefaultPolicies() {
		byID[p.ID] = p
	}

	// Tool access never comes unconditioned: managers are team-scoped,
	// contributors ownership-scoped, and nobody holds a Slack grant.
	assert.Equal(t, model.Conditions{SameTeam: true}, byID["manager-mcp-jira"].Conditions)
	assert.Equal(t, model.Conditions{SameTeam: true}, byID["manager-mcp-github"].Conditions)
	assert.Equal(t, model.Conditions{IsOwner: true}, byID["contributor-mcp-jira-own"].Conditions)
	assert.Equal(t, model.Conditions{IsOwner: true}, byID["contributor-mcp-github-own"].Conditions)

	for _, p := range byID {
		assert.NotEqual(t, model.ResourceMCPSlack, p.Resource, "policy %s", p.ID)
	}
}

func TestDefaultPolicies_ExecutiveScope(t *testing.T) {
	byID := make(map[string]model.AccessPolicy)
	for _, p := range rbac.DefaultPolicies() {
		byID[p.ID] = p
	}

	global := byID["executive-global-knowledge"]
	assert.Equal(t, model.RoleExecutive, global.Role)
	assert.Equal(t, model.AccessAdmin, global.AccessLevel)
	assert.True(t, global.Conditions.IsZero())

	limited := byID["new-hire-team-knowledge-limited"]
	assert.Equal(t, model.Conditions{SameTeam: true, MaxHierarchyDepth: 2}, limited.Conditions)
}
