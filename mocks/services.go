package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// MockAccountService is a mock of ports.AccountService.
type MockAccountService struct {
	mock.Mock
}

// NewMockAccountService creates a MockAccountService that asserts its
// expectations when the test ends.
func NewMockAccountService(t testingT) *MockAccountService {
	m := &MockAccountService{}
	register(&m.Mock, t)
	return m
}

func (m *MockAccountService) SignUp(ctx context.Context, creds user.Credentials) (*ports.AuthResult, error) {
	ret := m.Called(ctx, creds)
	r, _ := ret.Get(0).(*ports.AuthResult)
	return r, errorAt(ret, 1)
}

func (m *MockAccountService) LogIn(ctx context.Context, creds user.Credentials) (*ports.AuthResult, error) {
	ret := m.Called(ctx, creds)
	r, _ := ret.Get(0).(*ports.AuthResult)
	return r, errorAt(ret, 1)
}

func (m *MockAccountService) LogOut(ctx context.Context, sessionID string) string {
	return m.Called(ctx, sessionID).String(0)
}

func (m *MockAccountService) CurrentUser(ctx context.Context, sessionID string) (*user.User, error) {
	ret := m.Called(ctx, sessionID)
	u, _ := ret.Get(0).(*user.User)
	return u, errorAt(ret, 1)
}

func (m *MockAccountService) Session(ctx context.Context, id string) (*user.Session, error) {
	ret := m.Called(ctx, id)
	s, _ := ret.Get(0).(*user.Session)
	return s, errorAt(ret, 1)
}

// EXPECT returns the expectation builder.
func (m *MockAccountService) EXPECT() *MockAccountServiceExpecter {
	return &MockAccountServiceExpecter{mock: &m.Mock}
}

// MockAccountServiceExpecter builds expectations for MockAccountService.
type MockAccountServiceExpecter struct {
	mock *mock.Mock
}

func (e *MockAccountServiceExpecter) SignUp(ctx, creds any) *mock.Call {
	return e.mock.On("SignUp", ctx, creds)
}

func (e *MockAccountServiceExpecter) LogIn(ctx, creds any) *mock.Call {
	return e.mock.On("LogIn", ctx, creds)
}

func (e *MockAccountServiceExpecter) LogOut(ctx, sessionID any) *mock.Call {
	return e.mock.On("LogOut", ctx, sessionID)
}

func (e *MockAccountServiceExpecter) CurrentUser(ctx, sessionID any) *mock.Call {
	return e.mock.On("CurrentUser", ctx, sessionID)
}

func (e *MockAccountServiceExpecter) Session(ctx, id any) *mock.Call {
	return e.mock.On("Session", ctx, id)
}

// MockTodoView is a mock of ports.TodoView.
type MockTodoView struct {
	mock.Mock
}

// NewMockTodoView creates a MockTodoView that asserts its expectations when
// the test ends.
func NewMockTodoView(t testingT) *MockTodoView {
	m := &MockTodoView{}
	register(&m.Mock, t)
	return m
}

func (m *MockTodoView) State() ports.ViewState {
	ret := m.Called()
	s, _ := ret.Get(0).(ports.ViewState)
	return s
}

func (m *MockTodoView) Refresh(ctx context.Context) error {
	return errorAt(m.Called(ctx), 0)
}

func (m *MockTodoView) SetListNameInput(name string) {
	m.Called(name)
}

func (m *MockTodoView) AddList(ctx context.Context) (*todolist.TodoList, error) {
	ret := m.Called(ctx)
	l, _ := ret.Get(0).(*todolist.TodoList)
	return l, errorAt(ret, 1)
}

func (m *MockTodoView) SetTaskInput(listID string, field task.Field, value string) error {
	return errorAt(m.Called(listID, field, value), 0)
}

func (m *MockTodoView) AddTask(ctx context.Context, listID string) (*task.Task, error) {
	ret := m.Called(ctx, listID)
	t, _ := ret.Get(0).(*task.Task)
	return t, errorAt(ret, 1)
}

func (m *MockTodoView) UpdateTaskPriority(ctx context.Context, listID, taskID string, p task.Priority) error {
	return errorAt(m.Called(ctx, listID, taskID, p), 0)
}

func (m *MockTodoView) DeleteTask(ctx context.Context, listID, taskID string) error {
	return errorAt(m.Called(ctx, listID, taskID), 0)
}

func (m *MockTodoView) MoveTask(ctx context.Context, fromListID, toListID string, t task.Task, p task.Priority) (*task.Task, error) {
	ret := m.Called(ctx, fromListID, toListID, t, p)
	moved, _ := ret.Get(0).(*task.Task)
	return moved, errorAt(ret, 1)
}

func (m *MockTodoView) BeginDrag(listID, taskID string) error {
	return errorAt(m.Called(listID, taskID), 0)
}

func (m *MockTodoView) CancelDrag() {
	m.Called()
}

func (m *MockTodoView) Drop(ctx context.Context, toListID string, p *task.Priority) (bool, error) {
	ret := m.Called(ctx, toListID, p)
	return ret.Bool(0), errorAt(ret, 1)
}

// EXPECT returns the expectation builder.
func (m *MockTodoView) EXPECT() *MockTodoViewExpecter {
	return &MockTodoViewExpecter{mock: &m.Mock}
}

// MockTodoViewExpecter builds expectations for MockTodoView.
type MockTodoViewExpecter struct {
	mock *mock.Mock
}

func (e *MockTodoViewExpecter) State() *mock.Call {
	return e.mock.On("State")
}

func (e *MockTodoViewExpecter) Refresh(ctx any) *mock.Call {
	return e.mock.On("Refresh", ctx)
}

func (e *MockTodoViewExpecter) SetListNameInput(name any) *mock.Call {
	return e.mock.On("SetListNameInput", name)
}

func (e *MockTodoViewExpecter) AddList(ctx any) *mock.Call {
	return e.mock.On("AddList", ctx)
}

func (e *MockTodoViewExpecter) SetTaskInput(listID, field, value any) *mock.Call {
	return e.mock.On("SetTaskInput", listID, field, value)
}

func (e *MockTodoViewExpecter) AddTask(ctx, listID any) *mock.Call {
	return e.mock.On("AddTask", ctx, listID)
}

func (e *MockTodoViewExpecter) UpdateTaskPriority(ctx, listID, taskID, p any) *mock.Call {
	return e.mock.On("UpdateTaskPriority", ctx, listID, taskID, p)
}

func (e *MockTodoViewExpecter) DeleteTask(ctx, listID, taskID any) *mock.Call {
	return e.mock.On("DeleteTask", ctx, listID, taskID)
}

func (e *MockTodoViewExpecter) MoveTask(ctx, fromListID, toListID, t, p any) *mock.Call {
	return e.mock.On("MoveTask", ctx, fromListID, toListID, t, p)
}

func (e *MockTodoViewExpecter) BeginDrag(listID, taskID any) *mock.Call {
	return e.mock.On("BeginDrag", listID, taskID)
}

func (e *MockTodoViewExpecter) CancelDrag() *mock.Call {
	return e.mock.On("CancelDrag")
}

func (e *MockTodoViewExpecter) Drop(ctx, toListID, p any) *mock.Call {
	return e.mock.On("Drop", ctx, toListID, p)
}

// MockTodoViews is a mock of ports.TodoViews.
type MockTodoViews struct {
	mock.Mock
}

// NewMockTodoViews creates a MockTodoViews that asserts its expectations
// when the test ends.
func NewMockTodoViews(t testingT) *MockTodoViews {
	m := &MockTodoViews{}
	register(&m.Mock, t)
	return m
}

func (m *MockTodoViews) View(ctx context.Context, s *user.Session) (ports.TodoView, error) {
	ret := m.Called(ctx, s)
	v, _ := ret.Get(0).(ports.TodoView)
	return v, errorAt(ret, 1)
}

func (m *MockTodoViews) Release(sessionID string) {
	m.Called(sessionID)
}

// EXPECT returns the expectation builder.
func (m *MockTodoViews) EXPECT() *MockTodoViewsExpecter {
	return &MockTodoViewsExpecter{mock: &m.Mock}
}

// MockTodoViewsExpecter builds expectations for MockTodoViews.
type MockTodoViewsExpecter struct {
	mock *mock.Mock
}

func (e *MockTodoViewsExpecter) View(ctx, s any) *mock.Call {
	return e.mock.On("View", ctx, s)
}

func (e *MockTodoViewsExpecter) Release(sessionID any) *mock.Call {
	return e.mock.On("Release", sessionID)
}
