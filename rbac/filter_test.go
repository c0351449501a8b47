// rbac/filter_test.go
package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

func TestFilterChatResponse_SourceVisibility(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)
	user := platformUser(model.RoleContributor)

	response := model.ChatResponse{
		Content: "Quarterly planning notes",
		Sources: []model.ChatSource{
			{Title: "Platform roadmap", Type: "document", TeamID: "platform"},
			{Title: "ML planning", Type: "team_doc", TeamID: "ml"},
			{Title: "My scratchpad", Type: "personal", OwnerID: "user-1"},
			{Title: "Their scratchpad", Type: "personal", OwnerID: "user-2"},
			{Title: "PLAT-142", Type: "jira", TeamID: "platform", OwnerID: "user-1"},
			{Title: "#eng-leads", Type: "slack", TeamID: "platform"},
		},
	}

	filtered := guard.FilterChatResponse(context.Background(), user, response)

	// Denied sources become placeholders in place; nothing is dropped.
	assert.Len(t, filtered.Sources, 6)
	assert.Equal(t, response.Sources[0], filtered.Sources[0])
	assert.Equal(t, model.RestrictedSource("team_doc"), filtered.Sources[1])
	assert.Equal(t, response.Sources[2], filtered.Sources[2])
	assert.Equal(t, model.RestrictedSource("personal"), filtered.Sources[3])
	assert.Equal(t, response.Sources[4], filtered.Sources[4])
	assert.Equal(t, model.RestrictedSource("slack"), filtered.Sources[5])

	assert.Equal(t, "[Restricted]", filtered.Sources[1].Title)
	assert.True(t, filtered.Sources[1].AccessDenied)
	assert.Equal(t, "team_doc", filtered.Sources[1].Type)
}

func TestFilterChatResponse_DepartmentSources(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	response := model.ChatResponse{
		Content: "Org update",
		Sources: []model.ChatSource{
			{Title: "Eng handbook", Type: "department_doc", DepartmentID: "engineering"},
			{Title: "Sales playbook", Type: "department_doc", DepartmentID: "sales"},
		},
	}

	filtered := guard.FilterChatResponse(context.Background(), platformUser(model.RoleLeadership), response)
	assert.False(t, filtered.Sources[0].AccessDenied)
	assert.True(t, filtered.Sources[1].AccessDenied)

	// Contributors hold no department-level grant at all.
	filtered = guard.FilterChatResponse(context.Background(), platformUser(model.RoleContributor), response)
	assert.True(t, filtered.Sources[0].AccessDenied)
	assert.True(t, filtered.Sources[1].AccessDenied)
}

func TestFilterChatResponse_UnknownSourceType(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	response := model.ChatResponse{
		Sources: []model.ChatSource{
			{Title: "Wiki page", Type: "wiki", TeamID: "platform"},
			{Title: "Other wiki", Type: "wiki", TeamID: "ml"},
		},
	}

	// Unknown types are treated as team knowledge.
	filtered := guard.FilterChatResponse(context.Background(), platformUser(model.RoleContributor), response)
	assert.False(t, filtered.Sources[0].AccessDenied)
	assert.True(t, filtered.Sources[1].AccessDenied)
}

func TestFilterChatResponse_FinancialRedaction(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	response := model.ChatResponse{
		Content: "Her salary: $150,000 was approved with budget: $2M and revenue: $10M context",
	}

	filtered := guard.FilterChatResponse(context.Background(), platformUser(model.RoleContributor), response)
	assert.Equal(t, "Her [SALARY REDACTED] was approved with [BUDGET REDACTED] and [REVENUE REDACTED] context", filtered.Content)

	filtered = guard.FilterChatResponse(context.Background(), platformUser(model.RoleNewHire), response)
	assert.NotContains(t, filtered.Content, "$150,000")

	// Manager and above read figures unredacted.
	filtered = guard.FilterChatResponse(context.Background(), platformUser(model.RoleManager), response)
	assert.Equal(t, response.Content, filtered.Content)
}

func TestFilterChatResponse_Idempotent(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)
	user := platformUser(model.RoleContributor)

	response := model.ChatResponse{
		Content: "Compensation: $90,000 for the new role",
		Sources: []model.ChatSource{
			{Title: "Comp band", Type: "company_doc"},
			{Title: "Team notes", Type: "document", TeamID: "platform"},
		},
	}

	once := guard.FilterChatResponse(context.Background(), user, response)
	twice := guard.FilterChatResponse(context.Background(), user, once)
	assert.Equal(t, once, twice)
}

func TestFilterChatResponse_EmptySources(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	filtered := guard.FilterChatResponse(context.Background(), platformUser(model.RoleExecutive), model.ChatResponse{Content: "hello"})
	assert.Equal(t, "hello", filtered.Content)
	assert.Empty(t, filtered.Sources)
}
