// rbac/filter.go
package rbac

import (
	"context"
	"regexp"

	"github.com/atriumhq/atrium/model"
)

// sourceResources maps a chat source's declared type to the resource it is
// checked against. Unknown types fall back to team knowledge.
var sourceResources = map[string]model.ResourceType{
	"document":       model.ResourceKnowledgeTeam,
	"team_doc":       model.ResourceKnowledgeTeam,
	"department_doc": model.ResourceKnowledgeDepartment,
	"company_doc":    model.ResourceKnowledgeGlobal,
	"personal":       model.ResourceKnowledgePersonal,
	"jira":           model.ResourceMCPJira,
	"github":         model.ResourceMCPGitHub,
	"slack":          model.ResourceMCPSlack,
}

func sourceResource(sourceType string) model.ResourceType {
	if resource, ok := sourceResources[sourceType]; ok {
		return resource
	}
	return model.ResourceKnowledgeTeam
}

// financialPatterns scrub dollar figures from content shown to roles below
// manager. Replacements never re-match, so filtering twice is a no-op.
var financialPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)salary[:\s]+\$[\d,]+`), "[SALARY REDACTED]"},
	{regexp.MustCompile(`(?i)compensation[:\s]+\$[\d,]+`), "[COMPENSATION REDACTED]"},
	{regexp.MustCompile(`(?i)revenue[:\s]+\$[\d,]+[BMK]?`), "[REVENUE REDACTED]"},
	{regexp.MustCompile(`(?i)budget[:\s]+\$[\d,]+[BMK]?`), "[BUDGET REDACTED]"},
}

// FilterChatResponse rewrites an assistant reply so it only reveals what the
// user may see. Each source is checked for read access and replaced by a
// restricted placeholder on denial; sources are never dropped, so counts and
// ordering are preserved. The body is scrubbed of financial figures for
// roles below manager.
func (g *Guard) FilterChatResponse(ctx context.Context, user model.UserContext, response model.ChatResponse) model.ChatResponse {
	filtered := model.ChatResponse{
		Content: filterContent(user, response.Content),
		Sources: make([]model.ChatSource, 0, len(response.Sources)),
	}
	for _, source := range response.Sources {
		attrs := map[string]any{
			"team_id":       source.TeamID,
			"department_id": source.DepartmentID,
			"owner_id":      source.OwnerID,
		}
		decision := g.CheckAccess(ctx, user, sourceResource(source.Type), model.AccessRead, attrs)
		if decision.Allowed {
			filtered.Sources = append(filtered.Sources, source)
		} else {
			filtered.Sources = append(filtered.Sources, model.RestrictedSource(source.Type))
		}
	}
	return filtered
}

func filterContent(user model.UserContext, content string) string {
	if user.Role.AtLeast(model.RoleManager) {
		return content
	}
	for _, p := range financialPatterns {
		content = p.re.ReplaceAllString(content, p.replacement)
	}
	return content
}
