// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/atriumhq/atrium/audit"
	"github.com/atriumhq/atrium/model"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(event audit.Event) {
	m.Called(event)
}

func (m *MockAuditService) RecordDecision(ctx context.Context, user model.UserContext, decision model.AccessDecision) {
	m.Called(ctx, user, decision)
}

func (m *MockAuditService) QueryEvents(ctx context.Context, from, to time.Time, userID, resource string) ([]audit.Event, error) {
	args := m.Called(ctx, from, to, userID, resource)
	events, _ := args.Get(0).([]audit.Event)
	return events, args.Error(1)
}

func (m *MockAuditService) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockAuditService) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) IndexEvent(ctx context.Context, event audit.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditRepository) QueryEvents(ctx context.Context, from, to time.Time, userID, resource string) ([]audit.Event, error) {
	args := m.Called(ctx, from, to, userID, resource)
	events, _ := args.Get(0).([]audit.Event)
	return events, args.Error(1)
}
