// test/mock/directory.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/atriumhq/atrium/model"
)

// MockDirectory is a mock implementation of identity.Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetEmployee(ctx context.Context, userID string) (*model.Employee, error) {
	args := m.Called(ctx, userID)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

// MockEmployeeCache is a mock implementation of identity.Cache
type MockEmployeeCache struct {
	mock.Mock
}

func (m *MockEmployeeCache) GetEmployee(ctx context.Context, userID string) (*model.Employee, error) {
	args := m.Called(ctx, userID)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

func (m *MockEmployeeCache) SetEmployee(ctx context.Context, employee model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeCache) DeleteEmployee(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmployeeStore is a mock implementation of controller.EmployeeStore
type MockEmployeeStore struct {
	mock.Mock
}

func (m *MockEmployeeStore) GetEmployee(ctx context.Context, userID string) (*model.Employee, error) {
	args := m.Called(ctx, userID)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

func (m *MockEmployeeStore) UpsertEmployee(ctx context.Context, employee model.Employee) (string, error) {
	args := m.Called(ctx, employee)
	return args.String(0), args.Error(1)
}

func (m *MockEmployeeStore) BulkUpsertEmployees(ctx context.Context, employees []model.Employee) error {
	args := m.Called(ctx, employees)
	return args.Error(0)
}

func (m *MockEmployeeStore) ListEmployees(ctx context.Context, limit, offset int) ([]*model.Employee, error) {
	args := m.Called(ctx, limit, offset)
	employees, _ := args.Get(0).([]*model.Employee)
	return employees, args.Error(1)
}
