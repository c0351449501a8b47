// model/resource.go
package model

// ResourceType identifies a protected resource class. The set is closed:
// every policy names exactly one of these values and callers map their own
// artifacts onto them before asking for a decision.
type ResourceType string

const (
	ResourceChat        ResourceType = "chat"
	ResourceChatHistory ResourceType = "chat_history"

	ResourceKnowledgeGlobal     ResourceType = "knowledge_global"
	ResourceKnowledgeDepartment ResourceType = "knowledge_department"
	ResourceKnowledgeTeam       ResourceType = "knowledge_team"
	ResourceKnowledgePersonal   ResourceType = "knowledge_personal"

	ResourceMemoryOrg  ResourceType = "memory_org"
	ResourceMemoryTeam ResourceType = "memory_team"
	ResourceMemoryUser ResourceType = "memory_user"

	ResourceDashboardCompany    ResourceType = "dashboard_company"
	ResourceDashboardDepartment ResourceType = "dashboard_department"
	ResourceDashboardTeam       ResourceType = "dashboard_team"
	ResourceDashboardPersonal   ResourceType = "dashboard_personal"

	ResourceMCPJira   ResourceType = "mcp_jira"
	ResourceMCPGitHub ResourceType = "mcp_github"
	ResourceMCPSlack  ResourceType = "mcp_slack"

	ResourceTeamMembers   ResourceType = "team_members"
	ResourceTeamWorkload  ResourceType = "team_workload"
	ResourceTeamAnalytics ResourceType = "team_analytics"

	ResourceOnboardingFlows    ResourceType = "onboarding_flows"
	ResourceOnboardingProgress ResourceType = "onboarding_progress"

	ResourceOwnershipLookup ResourceType = "ownership_lookup"
	ResourceExpertiseSearch ResourceType = "expertise_search"
)

// AllResourceTypes lists every defined resource class.
var AllResourceTypes = []ResourceType{
	ResourceChat,
	ResourceChatHistory,
	ResourceKnowledgeGlobal,
	ResourceKnowledgeDepartment,
	ResourceKnowledgeTeam,
	ResourceKnowledgePersonal,
	ResourceMemoryOrg,
	ResourceMemoryTeam,
	ResourceMemoryUser,
	ResourceDashboardCompany,
	ResourceDashboardDepartment,
	ResourceDashboardTeam,
	ResourceDashboardPersonal,
	ResourceMCPJira,
	ResourceMCPGitHub,
	ResourceMCPSlack,
	ResourceTeamMembers,
	ResourceTeamWorkload,
	ResourceTeamAnalytics,
	ResourceOnboardingFlows,
	ResourceOnboardingProgress,
	ResourceOwnershipLookup,
	ResourceExpertiseSearch,
}

var validResourceTypes = func() map[ResourceType]struct{} {
	m := make(map[ResourceType]struct{}, len(AllResourceTypes))
	for _, rt := range AllResourceTypes {
		m[rt] = struct{}{}
	}
	return m
}()

func (rt ResourceType) String() string {
	return string(rt)
}

// Valid reports whether rt belongs to the closed resource set.
func (rt ResourceType) Valid() bool {
	_, ok := validResourceTypes[rt]
	return ok
}
