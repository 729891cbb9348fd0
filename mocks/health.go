package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/ports"
)

// MockHealthChecker is a mock of ports.HealthChecker.
type MockHealthChecker struct {
	mock.Mock
}

// NewMockHealthChecker creates a MockHealthChecker that asserts its
// expectations when the test ends.
func NewMockHealthChecker(t testingT) *MockHealthChecker {
	m := &MockHealthChecker{}
	register(&m.Mock, t)
	return m
}

func (m *MockHealthChecker) Name() string {
	return m.Called().String(0)
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return errorAt(m.Called(ctx), 0)
}

// EXPECT returns the expectation builder.
func (m *MockHealthChecker) EXPECT() *MockHealthCheckerExpecter {
	return &MockHealthCheckerExpecter{mock: &m.Mock}
}

// MockHealthCheckerExpecter builds expectations for MockHealthChecker.
type MockHealthCheckerExpecter struct {
	mock *mock.Mock
}

func (e *MockHealthCheckerExpecter) Name() *mock.Call {
	return e.mock.On("Name")
}

func (e *MockHealthCheckerExpecter) HealthCheck(ctx any) *mock.Call {
	return e.mock.On("HealthCheck", ctx)
}

// MockHealthRegistry is a mock of ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

// NewMockHealthRegistry creates a MockHealthRegistry that asserts its
// expectations when the test ends.
func NewMockHealthRegistry(t testingT) *MockHealthRegistry {
	m := &MockHealthRegistry{}
	register(&m.Mock, t)
	return m
}

func (m *MockHealthRegistry) Register(checker ports.HealthChecker) {
	m.Called(checker)
}

func (m *MockHealthRegistry) CheckAll(ctx context.Context) map[string]error {
	ret := m.Called(ctx)
	results, _ := ret.Get(0).(map[string]error)
	return results
}

// EXPECT returns the expectation builder.
func (m *MockHealthRegistry) EXPECT() *MockHealthRegistryExpecter {
	return &MockHealthRegistryExpecter{mock: &m.Mock}
}

// MockHealthRegistryExpecter builds expectations for MockHealthRegistry.
type MockHealthRegistryExpecter struct {
	mock *mock.Mock
}

func (e *MockHealthRegistryExpecter) Register(checker any) *mock.Call {
	return e.mock.On("Register", checker)
}

func (e *MockHealthRegistryExpecter) CheckAll(ctx any) *mock.Call {
	return e.mock.On("CheckAll", ctx)
}
