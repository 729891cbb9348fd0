package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

// MockAuthClient is a mock of ports.AuthClient.
type MockAuthClient struct {
	mock.Mock
}

// NewMockAuthClient creates a MockAuthClient that asserts its expectations
// when the test ends.
func NewMockAuthClient(t testingT) *MockAuthClient {
	m := &MockAuthClient{}
	register(&m.Mock, t)
	return m
}

func (m *MockAuthClient) SignUp(ctx context.Context, creds user.Credentials) (*user.Session, error) {
	ret := m.Called(ctx, creds)
	if fn, ok := ret.Get(0).(func(context.Context, user.Credentials) (*user.Session, error)); ok {
		return fn(ctx, creds)
	}
	s, _ := ret.Get(0).(*user.Session)
	return s, errorAt(ret, 1)
}

func (m *MockAuthClient) SignIn(ctx context.Context, creds user.Credentials) (*user.Session, error) {
	ret := m.Called(ctx, creds)
	if fn, ok := ret.Get(0).(func(context.Context, user.Credentials) (*user.Session, error)); ok {
		return fn(ctx, creds)
	}
	s, _ := ret.Get(0).(*user.Session)
	return s, errorAt(ret, 1)
}

func (m *MockAuthClient) Refresh(ctx context.Context, refreshToken string) (*user.Session, error) {
	ret := m.Called(ctx, refreshToken)
	s, _ := ret.Get(0).(*user.Session)
	return s, errorAt(ret, 1)
}

func (m *MockAuthClient) Lookup(ctx context.Context, idToken string) (*user.User, error) {
	ret := m.Called(ctx, idToken)
	u, _ := ret.Get(0).(*user.User)
	return u, errorAt(ret, 1)
}

func (m *MockAuthClient) SignOut(ctx context.Context, idToken string) error {
	return errorAt(m.Called(ctx, idToken), 0)
}

// EXPECT returns the expectation builder.
func (m *MockAuthClient) EXPECT() *MockAuthClientExpecter {
	return &MockAuthClientExpecter{mock: &m.Mock}
}

// MockAuthClientExpecter builds expectations for MockAuthClient.
type MockAuthClientExpecter struct {
	mock *mock.Mock
}

func (e *MockAuthClientExpecter) SignUp(ctx, creds any) *mock.Call {
	return e.mock.On("SignUp", ctx, creds)
}

func (e *MockAuthClientExpecter) SignIn(ctx, creds any) *mock.Call {
	return e.mock.On("SignIn", ctx, creds)
}

func (e *MockAuthClientExpecter) Refresh(ctx, refreshToken any) *mock.Call {
	return e.mock.On("Refresh", ctx, refreshToken)
}

func (e *MockAuthClientExpecter) Lookup(ctx, idToken any) *mock.Call {
	return e.mock.On("Lookup", ctx, idToken)
}

func (e *MockAuthClientExpecter) SignOut(ctx, idToken any) *mock.Call {
	return e.mock.On("SignOut", ctx, idToken)
}
