// model/policy_test.go
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atriumhq/atrium/model"
)

func platformContributor() model.UserContext {
	return model.UserContext{
		UserID:       "user-1",
		Role:         model.RoleContributor,
		TeamID:       "platform",
		DepartmentID: "engineering",
		OrgID:        "atrium",
		ProjectIDs:   []string{"proj-a"},
	}
}

func TestConditionsMatch_SameTeam(t *testing.T) {
	ctx := platformContributor()
	cond := model.Conditions{SameTeam: true}

	assert.True(t, cond.Match(ctx, map[string]any{"team_id": "platform"}))
	assert.False(t, cond.Match(ctx, map[string]any{"team_id": "ml"}))
	assert.False(t, cond.Match(ctx, nil))
}

func TestConditionsMatch_SameDepartment(t *testing.T) {
	ctx := platformContributor()
	cond := model.Conditions{SameDepartment: true}

	assert.True(t, cond.Match(ctx, map[string]any{"department_id": "engineering"}))
	assert.False(t, cond.Match(ctx, map[string]any{"department_id": "sales"}))
}

func TestConditionsMatch_IsOwner(t *testing.T) {
	ctx := platformContributor()
	cond := model.Conditions{IsOwner: true}

	assert.True(t, cond.Match(ctx, map[string]any{"owner_id": "user-1"}))
	assert.False(t, cond.Match(ctx, map[string]any{"owner_id": "user-2"}))
}

func TestConditionsMatch_IsManagerOfOwner(t *testing.T) {
	ctx := platformContributor()
	ctx.DirectReports = []string{"report-1"}
	cond := model.Conditions{IsManagerOfOwner: true}

	assert.True(t, cond.Match(ctx, map[string]any{"owner_id": "report-1"}))
	assert.False(t, cond.Match(ctx, map[string]any{"owner_id": "user-2"}))
}

func TestConditionsMatch_ProjectMember(t *testing.T) {
	ctx := platformContributor()
	cond := model.Conditions{ProjectMember: true}

	assert.True(t, cond.Match(ctx, map[string]any{"project_id": "proj-a"}))
	assert.False(t, cond.Match(ctx, map[string]any{"project_id": "proj-b"}))
	// A request that names no project is not constrained.
	assert.True(t, cond.Match(ctx, map[string]any{}))
}

func TestConditionsMatch_MaxHierarchyDepth(t *testing.T) {
	ctx := platformContributor()
	cond := model.Conditions{MaxHierarchyDepth: 2}

	assert.True(t, cond.Match(ctx, map[string]any{"hierarchy_depth": 2}))
	assert.False(t, cond.Match(ctx, map[string]any{"hierarchy_depth": 3}))
	// JSON-decoded numbers arrive as float64.
	assert.False(t, cond.Match(ctx, map[string]any{"hierarchy_depth": float64(5)}))
	assert.True(t, cond.Match(ctx, nil))
}

func TestConditionsMatch_Combined(t *testing.T) {
	ctx := platformContributor()
	cond := model.Conditions{SameTeam: true, IsOwner: true}

	assert.True(t, cond.Match(ctx, map[string]any{"team_id": "platform", "owner_id": "user-1"}))
	assert.False(t, cond.Match(ctx, map[string]any{"team_id": "platform", "owner_id": "user-2"}))
	assert.False(t, cond.Match(ctx, map[string]any{"team_id": "ml", "owner_id": "user-1"}))
}

func TestConditionsIsZero(t *testing.T) {
	assert.True(t, model.Conditions{}.IsZero())
	assert.False(t, model.Conditions{SameTeam: true}.IsZero())
	assert.False(t, model.Conditions{MaxHierarchyDepth: 1}.IsZero())
}

func TestPolicyMatches(t *testing.T) {
	ctx := platformContributor()
	policy := model.AccessPolicy{
		ID:          "p1",
		Role:        model.RoleContributor,
		Resource:    model.ResourceKnowledgeTeam,
		AccessLevel: model.AccessRead,
		Conditions:  model.Conditions{SameTeam: true},
		Enabled:     true,
	}

	assert.True(t, policy.Matches(ctx, map[string]any{"team_id": "platform"}))

	disabled := policy
	disabled.Enabled = false
	assert.False(t, disabled.Matches(ctx, map[string]any{"team_id": "platform"}))

	wrongRole := policy
	wrongRole.Role = model.RoleManager
	assert.False(t, wrongRole.Matches(ctx, map[string]any{"team_id": "platform"}))
}

func TestPolicyInherited(t *testing.T) {
	policy := model.AccessPolicy{
		ID:          "manager-team-knowledge",
		Role:        model.RoleManager,
		Resource:    model.ResourceKnowledgeTeam,
		AccessLevel: model.AccessWrite,
		Conditions:  model.Conditions{SameTeam: true},
		Priority:    10,
		Enabled:     true,
	}

	inherited := policy.Inherited(model.RoleExecutive)
	assert.Equal(t, "manager-team-knowledge-inherited", inherited.ID)
	assert.Equal(t, model.RoleExecutive, inherited.Role)
	assert.Equal(t, model.AccessWrite, inherited.AccessLevel)
	assert.True(t, inherited.Conditions.IsZero())
	assert.Equal(t, 9, inherited.Priority)
	assert.True(t, inherited.Enabled)
}

func TestPolicyScopeFilters(t *testing.T) {
	ctx := platformContributor()

	policy := model.AccessPolicy{
		Conditions: model.Conditions{SameTeam: true, IsOwner: true, MaxHierarchyDepth: 3},
	}
	filters := policy.ScopeFilters(ctx)
	assert.Equal(t, map[string]any{
		"team_id":   "platform",
		"owner_id":  "user-1",
		"max_depth": 3,
	}, filters)

	unconditioned := model.AccessPolicy{}
	assert.Empty(t, unconditioned.ScopeFilters(ctx))

	project := model.AccessPolicy{Conditions: model.Conditions{ProjectMember: true}}
	assert.Equal(t, map[string]any{"project_ids": []string{"proj-a"}}, project.ScopeFilters(ctx))
}

func TestStringAttr(t *testing.T) {
	attrs := map[string]any{"team_id": "platform", "count": 3}
	assert.Equal(t, "platform", model.StringAttr(attrs, "team_id"))
	assert.Equal(t, "", model.StringAttr(attrs, "count"))
	assert.Equal(t, "", model.StringAttr(attrs, "missing"))
	assert.Equal(t, "", model.StringAttr(nil, "team_id"))
}

func TestIntAttr(t *testing.T) {
	attrs := map[string]any{"a": 3, "b": int64(4), "c": float64(5), "d": "six"}
	assert.Equal(t, 3, model.IntAttr(attrs, "a"))
	assert.Equal(t, 4, model.IntAttr(attrs, "b"))
	assert.Equal(t, 5, model.IntAttr(attrs, "c"))
	assert.Equal(t, 0, model.IntAttr(attrs, "d"))
	assert.Equal(t, 0, model.IntAttr(attrs, "missing"))
}

func TestUserContextHelpers(t *testing.T) {
	ctx := model.UserContext{
		UserID:        "mgr-1",
		DirectReports: []string{"a", "b"},
		ProjectIDs:    []string{"p1"},
	}
	assert.True(t, ctx.IsManagerOf("a"))
	assert.False(t, ctx.IsManagerOf("c"))
	assert.True(t, ctx.OnProject("p1"))
	assert.False(t, ctx.OnProject("p2"))
}

func TestUserContextSnapshot(t *testing.T) {
	ctx := platformContributor()
	snapshot := ctx.Snapshot()
	assert.Equal(t, "user-1", snapshot["user_id"])
	assert.Equal(t, "contributor", snapshot["role"])
	assert.Equal(t, "platform", snapshot["team_id"])
	assert.Equal(t, "engineering", snapshot["department_id"])
}
