// audit/service_test.go
package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium/audit"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
	mocks "github.com/atriumhq/atrium/test/mock"
	"github.com/atriumhq/atrium/util"
)

func TestNewDecisionEvent(t *testing.T) {
	user := model.UserContext{UserID: "user-1", Role: model.RoleManager}
	decisionTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	granted := audit.NewDecisionEvent(user, model.AccessDecision{
		Allowed:      true,
		Reason:       "Access granted by policy",
		PolicyID:     "manager-team-knowledge",
		Resource:     model.ResourceKnowledgeTeam,
		AccessLevel:  model.AccessWrite,
		DecisionTime: decisionTime,
	})
	assert.Equal(t, audit.EventAccessGranted, granted.Type)
	assert.NotEmpty(t, granted.ID)
	assert.Equal(t, decisionTime, granted.Timestamp)
	assert.Equal(t, "user-1", granted.UserID)
	assert.Equal(t, "manager", granted.Role)
	assert.Equal(t, "knowledge_team", granted.Resource)
	assert.True(t, granted.Allowed)
	assert.Equal(t, "manager-team-knowledge", granted.PolicyID)

	denied := audit.NewDecisionEvent(user, model.AccessDecision{
		Allowed:  false,
		Reason:   "No policy grants admin access to team_analytics",
		Resource: model.ResourceTeamAnalytics,
	})
	assert.Equal(t, audit.EventAccessDenied, denied.Type)
	assert.False(t, denied.Allowed)
	assert.Equal(t, "No policy grants admin access to team_analytics", denied.Reason)
	assert.False(t, denied.Timestamp.IsZero())
}

func TestService_RecordIndexesEvent(t *testing.T) {
	logger.InitTestLogger()
	repo := new(mocks.MockAuditRepository)

	var indexed audit.Event
	repo.On("IndexEvent", mock.Anything, mock.AnythingOfType("audit.Event")).
		Run(func(args mock.Arguments) {
			indexed = args.Get(1).(audit.Event)
		}).
		Return(nil)

	service := audit.NewService(repo, nil, 8, 2)
	service.Start(context.Background())

	service.Record(audit.Event{Type: audit.EventPermissionCheck, UserID: "user-1"})
	require.NoError(t, service.Close())

	repo.AssertNumberOfCalls(t, "IndexEvent", 1)
	assert.Equal(t, audit.EventPermissionCheck, indexed.Type)
	assert.NotEmpty(t, indexed.ID)
	assert.False(t, indexed.Timestamp.IsZero())
}

func TestService_RecordDecision_PublishesDenial(t *testing.T) {
	logger.InitTestLogger()
	repo := new(mocks.MockAuditRepository)
	bus := util.NewEventBus()

	received := make(chan audit.Event, 2)
	bus.Subscribe(audit.EventDeniedAccess, func(_ context.Context, event util.Event) error {
		received <- event.Payload.(audit.Event)
		return nil
	})

	service := audit.NewService(repo, bus, 8, 1)
	user := model.UserContext{UserID: "user-1", Role: model.RoleContributor}

	// Grants stay off the alert channel.
	service.RecordDecision(context.Background(), user, model.AccessDecision{
		Allowed:  true,
		Resource: model.ResourceChat,
	})

	service.RecordDecision(context.Background(), user, model.AccessDecision{
		Allowed:  false,
		Reason:   "No policy grants read access to knowledge_global",
		Resource: model.ResourceKnowledgeGlobal,
	})

	select {
	case event := <-received:
		assert.Equal(t, audit.EventAccessDenied, event.Type)
		assert.Equal(t, "user-1", event.UserID)
		assert.Equal(t, "knowledge_global", event.Resource)
	case <-time.After(time.Second):
		t.Fatal("denied decision was never published")
	}
	assert.Empty(t, received)
}

func TestService_QueryEventsDelegates(t *testing.T) {
	logger.InitTestLogger()
	repo := new(mocks.MockAuditRepository)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	want := []audit.Event{{ID: "evt-1", Type: audit.EventAccessDenied}}
	repo.On("QueryEvents", mock.Anything, from, to, "user-1", "chat").Return(want, nil)

	service := audit.NewService(repo, nil, 8, 1)
	events, err := service.QueryEvents(context.Background(), from, to, "user-1", "chat")
	require.NoError(t, err)
	assert.Equal(t, want, events)
	repo.AssertExpectations(t)
}

func TestService_RecordNeverBlocks(t *testing.T) {
	logger.InitTestLogger()
	repo := new(mocks.MockAuditRepository)
	repo.On("IndexEvent", mock.Anything, mock.AnythingOfType("audit.Event")).Return(nil)

	// One-slot buffer and no workers running: the second record must drop
	// instead of stalling.
	service := audit.NewService(repo, nil, 1, 1)
	service.Record(audit.Event{Type: audit.EventPermissionCheck, UserID: "user-1"})
	service.Record(audit.Event{Type: audit.EventPermissionCheck, UserID: "user-2"})

	service.Start(context.Background())
	require.NoError(t, service.Close())
	repo.AssertNumberOfCalls(t, "IndexEvent", 1)
}

func TestService_CloseIdempotent(t *testing.T) {
	logger.InitTestLogger()
	service := audit.NewService(new(mocks.MockAuditRepository), nil, 8, 1)
	service.Start(context.Background())
	require.NoError(t, service.Close())
	require.NoError(t, service.Close())
}
