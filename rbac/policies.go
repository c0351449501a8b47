// rbac/policies.go
package rbac

import (
	"fmt"

	"github.com/atriumhq/atrium/model"
)

// DefaultPolicies returns the production policy set. The set is fixed in
// code: there is no policy store and no policy language, just this list
// evaluated by one uniform algorithm.
//
// Roles at Leadership and above additionally inherit every lower role's
// grant with conditions stripped, so executive-level policies only state
// what is exclusive to those ranks.
func DefaultPolicies() []model.AccessPolicy {
	policies := []model.AccessPolicy{
		// Executive: full company-wide access.
		{
			ID:          "executive-global-knowledge",
			Role:        model.RoleExecutive,
			Resource:    model.ResourceKnowledgeGlobal,
			AccessLevel: model.AccessAdmin,
			Description: "Executives have full access to all knowledge",
			Enabled:     true,
		},
		{
			ID:          "executive-company-dashboard",
			Role:        model.RoleExecutive,
			Resource:    model.ResourceDashboardCompany,
			AccessLevel: model.AccessAdmin,
			Description: "Executives can view and configure company dashboards",
			Enabled:     true,
		},
		{
			ID:          "executive-all-analytics",
			Role:        model.RoleExecutive,
			Resource:    model.ResourceTeamAnalytics,
			AccessLevel: model.AccessRead,
			Description: "Executives can view all team analytics",
			Enabled:     true,
		},
		{
			ID:          "executive-org-memory",
			Role:        model.RoleExecutive,
			Resource:    model.ResourceMemoryOrg,
			AccessLevel: model.AccessAdmin,
			Description: "Executives have full access to organizational memory",
			Enabled:     true,
		},
		{
			ID:          "executive-ownership-lookup",
			Role:        model.RoleExecutive,
			Resource:    model.ResourceOwnershipLookup,
			AccessLevel: model.AccessRead,
			Description: "Executives can look up ownership across the company",
			Enabled:     true,
		},

		// Leadership: department-level access.
		{
			ID:          "leadership-dept-knowledge",
			Role:        model.RoleLeadership,
			Resource:    model.ResourceKnowledgeDepartment,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{SameDepartment: true},
			Description: "Leadership has write access to department knowledge",
			Enabled:     true,
		},
		{
			ID:          "leadership-dept-dashboard",
			Role:        model.RoleLeadership,
			Resource:    model.ResourceDashboardDepartment,
			AccessLevel: model.AccessAdmin,
			Conditions:  model.Conditions{SameDepartment: true},
			Description: "Leadership can manage department dashboards",
			Enabled:     true,
		},
		{
			ID:          "leadership-team-analytics",
			Role:        model.RoleLeadership,
			Resource:    model.ResourceTeamAnalytics,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameDepartment: true},
			Description: "Leadership can view team analytics in their department",
			Enabled:     true,
		},
		{
			ID:          "leadership-team-memory",
			Role:        model.RoleLeadership,
			Resource:    model.ResourceMemoryTeam,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameDepartment: true},
			Description: "Leadership can read team memory in their department",
			Enabled:     true,
		},
		{
			ID:          "leadership-ownership-dept",
			Role:        model.RoleLeadership,
			Resource:    model.ResourceOwnershipLookup,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameDepartment: true},
			Description: "Leadership can look up ownership in their department",
			Enabled:     true,
		},

		// Manager: team-level access.
		{
			ID:          "manager-team-knowledge",
			Role:        model.RoleManager,
			Resource:    model.ResourceKnowledgeTeam,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers have write access to team knowledge",
			Enabled:     true,
		},
		{
			ID:          "manager-team-dashboard",
			Role:        model.RoleManager,
			Resource:    model.ResourceDashboardTeam,
			AccessLevel: model.AccessAdmin,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can manage team dashboards",
			Enabled:     true,
		},
		{
			ID:          "manager-team-members",
			Role:        model.RoleManager,
			Resource:    model.ResourceTeamMembers,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can view team member information",
			Enabled:     true,
		},
		{
			ID:          "manager-team-workload",
			Role:        model.RoleManager,
			Resource:    model.ResourceTeamWorkload,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can view team workload",
			Enabled:     true,
		},
		{
			ID:          "manager-team-analytics",
			Role:        model.RoleManager,
			Resource:    model.ResourceTeamAnalytics,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can view their team's analytics",
			Enabled:     true,
		},
		{
			ID:          "manager-team-memory",
			Role:        model.RoleManager,
			Resource:    model.ResourceMemoryTeam,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can read and write team memory",
			Enabled:     true,
		},
		{
			ID:          "manager-ownership-team",
			Role:        model.RoleManager,
			Resource:    model.ResourceOwnershipLookup,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can look up ownership in their team",
			Enabled:     true,
		},
		{
			ID:          "manager-mcp-jira",
			Role:        model.RoleManager,
			Resource:    model.ResourceMCPJira,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can access Jira for their team",
			Enabled:     true,
		},
		{
			ID:          "manager-mcp-github",
			Role:        model.RoleManager,
			Resource:    model.ResourceMCPGitHub,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Managers can access GitHub for their team",
			Enabled:     true,
		},

		// Contributor: team-scoped and ownership-scoped access.
		{
			ID:          "contributor-team-knowledge-read",
			Role:        model.RoleContributor,
			Resource:    model.ResourceKnowledgeTeam,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Contributors can read team knowledge",
			Enabled:     true,
		},
		{
			ID:          "contributor-personal-knowledge",
			Role:        model.RoleContributor,
			Resource:    model.ResourceKnowledgePersonal,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{IsOwner: true},
			Description: "Contributors have full access to their personal knowledge",
			Enabled:     true,
		},
		{
			ID:          "contributor-personal-dashboard",
			Role:        model.RoleContributor,
			Resource:    model.ResourceDashboardPersonal,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{IsOwner: true},
			Description: "Contributors can manage their personal dashboard",
			Enabled:     true,
		},
		{
			ID:          "contributor-user-memory",
			Role:        model.RoleContributor,
			Resource:    model.ResourceMemoryUser,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{IsOwner: true},
			Description: "Contributors have full access to their personal memory",
			Enabled:     true,
		},
		{
			ID:          "contributor-ownership-team",
			Role:        model.RoleContributor,
			Resource:    model.ResourceOwnershipLookup,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "Contributors can look up ownership in their team",
			Enabled:     true,
		},
		{
			ID:          "contributor-mcp-jira-own",
			Role:        model.RoleContributor,
			Resource:    model.ResourceMCPJira,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{IsOwner: true},
			Description: "Contributors can access their own Jira tickets",
			Enabled:     true,
		},
		{
			ID:          "contributor-mcp-github-own",
			Role:        model.RoleContributor,
			Resource:    model.ResourceMCPGitHub,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{IsOwner: true},
			Description: "Contributors can access their own GitHub activity",
			Enabled:     true,
		},

		// New hire: onboarding-focused access.
		{
			ID:          "new-hire-onboarding-flows",
			Role:        model.RoleNewHire,
			Resource:    model.ResourceOnboardingFlows,
			AccessLevel: model.AccessRead,
			Description: "New hires can access onboarding flows",
			Enabled:     true,
		},
		{
			ID:          "new-hire-onboarding-progress",
			Role:        model.RoleNewHire,
			Resource:    model.ResourceOnboardingProgress,
			AccessLevel: model.AccessWrite,
			Conditions:  model.Conditions{IsOwner: true},
			Description: "New hires can update their onboarding progress",
			Enabled:     true,
		},
		{
			ID:          "new-hire-team-knowledge-limited",
			Role:        model.RoleNewHire,
			Resource:    model.ResourceKnowledgeTeam,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true, MaxHierarchyDepth: 2},
			Description: "New hires have limited team knowledge access",
			Enabled:     true,
		},
		{
			ID:          "new-hire-chat",
			Role:        model.RoleNewHire,
			Resource:    model.ResourceChat,
			AccessLevel: model.AccessWrite,
			Description: "New hires can use chat for onboarding help",
			Enabled:     true,
		},
		{
			ID:          "new-hire-ownership-team",
			Role:        model.RoleNewHire,
			Resource:    model.ResourceOwnershipLookup,
			AccessLevel: model.AccessRead,
			Conditions:  model.Conditions{SameTeam: true},
			Description: "New hires can find contacts in their team",
			Enabled:     true,
		},
	}

	// Chat and own-history access for every established role. New hires
	// get chat above but no history policy.
	for _, role := range []model.Role{model.RoleContributor, model.RoleManager, model.RoleLeadership, model.RoleExecutive} {
		policies = append(policies,
			model.AccessPolicy{
				ID:          fmt.Sprintf("%s-chat", role),
				Role:        role,
				Resource:    model.ResourceChat,
				AccessLevel: model.AccessWrite,
				Description: fmt.Sprintf("%s can use chat", role),
				Enabled:     true,
			},
			model.AccessPolicy{
				ID:          fmt.Sprintf("%s-chat-history-own", role),
				Role:        role,
				Resource:    model.ResourceChatHistory,
				AccessLevel: model.AccessRead,
				Conditions:  model.Conditions{IsOwner: true},
				Description: fmt.Sprintf("%s can view their own chat history", role),
				Enabled:     true,
			},
		)
	}

	return policies
}
