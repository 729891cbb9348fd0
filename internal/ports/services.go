package ports

import (
	"context"

	"github.com/jsamuelsen11/todolists/internal/domain/drag"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

// AccountService defines the service port for sign-up, log-in and log-out.
// Implemented by the application layer; called by inbound adapters (handlers).
type AccountService interface {
	// SignUp creates a backend account and signs the new user in.
	// Returns a *domain.ValidationError for missing or malformed input and
	// a *domain.AuthError when the backend rejects the request.
	SignUp(ctx context.Context, creds user.Credentials) (*AuthResult, error)

	// LogIn signs an existing user in. Errors as for SignUp.
	LogIn(ctx context.Context, creds user.Credentials) (*AuthResult, error)

	// LogOut signs the session out and returns where to navigate next.
	// Backend failures are logged; the session is dropped regardless.
	LogOut(ctx context.Context, sessionID string) string

	// CurrentUser returns the user signed in on sessionID, or nil when
	// signed out.
	CurrentUser(ctx context.Context, sessionID string) (*user.User, error)

	// Session returns the live session with id.
	// Returns domain.ErrUnauthenticated if there is none.
	Session(ctx context.Context, id string) (*user.Session, error)
}

// AuthResult is the outcome of a successful sign-up or log-in.
type AuthResult struct {
	Session  *user.Session
	Redirect string
}

// ViewState is a point-in-time copy of a TodoView's local state.
type ViewState struct {
	User     *user.User
	Lists    []todolist.TodoList
	ListName string
	Drafts   map[string]task.Draft
	Drag     *drag.Session
}

// TodoView defines the service port for the per-session lists page.
// Operations are applied one at a time per view.
type TodoView interface {
	// State returns a copy of the view's local state.
	State() ViewState

	// Refresh refetches every list and its tasks and replaces local state.
	// On failure local state is left unchanged.
	Refresh(ctx context.Context) error

	// SetListNameInput records the pending name for a new list.
	SetListNameInput(name string)

	// AddList creates a list from the pending name and clears the input.
	AddList(ctx context.Context) (*todolist.TodoList, error)

	// SetTaskInput records one field of listID's draft.
	SetTaskInput(listID string, field task.Field, value string) error

	// AddTask creates a task in listID from its draft and resets the draft.
	AddTask(ctx context.Context, listID string) (*task.Task, error)

	// UpdateTaskPriority changes only the priority of a task.
	UpdateTaskPriority(ctx context.Context, listID, taskID string, p task.Priority) error

	// DeleteTask removes a task. A task already gone is not an error.
	DeleteTask(ctx context.Context, listID, taskID string) error

	// MoveTask relocates t from one list to another with priority p and
	// returns it under its new id.
	MoveTask(ctx context.Context, fromListID, toListID string, t task.Task, p task.Priority) (*task.Task, error)

	// BeginDrag captures the task being dragged.
	// Returns domain.ErrNotFound if the task is not in local state.
	BeginDrag(listID, taskID string) error

	// CancelDrag ends a drag without changing anything.
	CancelDrag()

	// Drop completes a drag onto toListID. A nil priority, or no drag in
	// progress, is a no-op. Reports whether anything changed.
	Drop(ctx context.Context, toListID string, p *task.Priority) (bool, error)
}

// TodoViews hands out the TodoView bound to a session.
type TodoViews interface {
	// View returns the session's view, creating and loading it on first use.
	View(ctx context.Context, s *user.Session) (TodoView, error)

	// Release tears down the session's view, if any.
	Release(sessionID string)
}
