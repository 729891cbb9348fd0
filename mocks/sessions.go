package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// MockSessionStore is a mock of ports.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

// NewMockSessionStore creates a MockSessionStore that asserts its
// expectations when the test ends.
func NewMockSessionStore(t testingT) *MockSessionStore {
	m := &MockSessionStore{}
	register(&m.Mock, t)
	return m
}

func (m *MockSessionStore) Save(ctx context.Context, s *user.Session, ttl time.Duration) error {
	return errorAt(m.Called(ctx, s, ttl), 0)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*user.Session, error) {
	ret := m.Called(ctx, id)
	s, _ := ret.Get(0).(*user.Session)
	return s, errorAt(ret, 1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	return errorAt(m.Called(ctx, id), 0)
}

// EXPECT returns the expectation builder.
func (m *MockSessionStore) EXPECT() *MockSessionStoreExpecter {
	return &MockSessionStoreExpecter{mock: &m.Mock}
}

// MockSessionStoreExpecter builds expectations for MockSessionStore.
type MockSessionStoreExpecter struct {
	mock *mock.Mock
}

func (e *MockSessionStoreExpecter) Save(ctx, s, ttl any) *mock.Call {
	return e.mock.On("Save", ctx, s, ttl)
}

func (e *MockSessionStoreExpecter) Get(ctx, id any) *mock.Call {
	return e.mock.On("Get", ctx, id)
}

func (e *MockSessionStoreExpecter) Delete(ctx, id any) *mock.Call {
	return e.mock.On("Delete", ctx, id)
}

// MockAuthStateBus is a mock of ports.AuthStateBus.
type MockAuthStateBus struct {
	mock.Mock
}

// NewMockAuthStateBus creates a MockAuthStateBus that asserts its
// expectations when the test ends.
func NewMockAuthStateBus(t testingT) *MockAuthStateBus {
	m := &MockAuthStateBus{}
	register(&m.Mock, t)
	return m
}

func (m *MockAuthStateBus) Publish(ctx context.Context, sessionID string, u *user.User) error {
	return errorAt(m.Called(ctx, sessionID, u), 0)
}

func (m *MockAuthStateBus) Subscribe(ctx context.Context, sessionID string, fn ports.AuthStateListener) (func(), error) {
	ret := m.Called(ctx, sessionID, fn)
	unsubscribe, _ := ret.Get(0).(func())
	return unsubscribe, errorAt(ret, 1)
}

// EXPECT returns the expectation builder.
func (m *MockAuthStateBus) EXPECT() *MockAuthStateBusExpecter {
	return &MockAuthStateBusExpecter{mock: &m.Mock}
}

// MockAuthStateBusExpecter builds expectations for MockAuthStateBus.
type MockAuthStateBusExpecter struct {
	mock *mock.Mock
}

func (e *MockAuthStateBusExpecter) Publish(ctx, sessionID, u any) *mock.Call {
	return e.mock.On("Publish", ctx, sessionID, u)
}

func (e *MockAuthStateBusExpecter) Subscribe(ctx, sessionID, fn any) *mock.Call {
	return e.mock.On("Subscribe", ctx, sessionID, fn)
}
