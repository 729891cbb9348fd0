// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"maps"
	"slices"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain/drag"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// UserResponse is the signed-in account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ToUserResponse converts a user, or nil, to its response form.
func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Email: u.Email}
}

// AuthResponse is returned by sign-up and log-in.
type AuthResponse struct {
	User     *UserResponse `json:"user"`
	Redirect string        `json:"redirect"`
}

// ToAuthResponse converts a successful authentication.
func ToAuthResponse(res *ports.AuthResult) AuthResponse {
	return AuthResponse{
		User:     ToUserResponse(&res.Session.User),
		Redirect: res.Redirect,
	}
}

// RedirectResponse tells the client where to navigate.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// MeResponse carries the current user; User is null when signed out.
type MeResponse struct {
	User *UserResponse `json:"user"`
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ToTaskResponse converts a domain Task to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority.String(),
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

// ListResponse represents a single todo list and its tasks.
type ListResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedBy string         `json:"created_by"`
	CreatedAt string         `json:"created_at,omitempty"`
	Tasks     []TaskResponse `json:"tasks"`
}

// ToListResponse converts a domain TodoList. Tasks is never null.
func ToListResponse(l *todolist.TodoList) ListResponse {
	tasks := make([]TaskResponse, len(l.Tasks))
	for i := range l.Tasks {
		tasks[i] = ToTaskResponse(&l.Tasks[i])
	}
	return ListResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedBy: l.CreatedBy,
		CreatedAt: formatTime(l.CreatedAt),
		Tasks:     tasks,
	}
}

// DraftResponse is a list's pending task input.
type DraftResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// DragResponse describes a drag in progress.
type DragResponse struct {
	Task       TaskResponse `json:"task"`
	FromListID string       `json:"from_list_id"`
}

// ViewResponse is the full state of the lists page.
type ViewResponse struct {
	User     *UserResponse            `json:"user"`
	Lists    []ListResponse           `json:"lists"`
	Count    int                      `json:"count"`
	ListName string                   `json:"list_name"`
	Drafts   map[string]DraftResponse `json:"drafts"`
	Drag     *DragResponse            `json:"drag"`
}

// ToViewResponse converts a view snapshot. Lists keep view order.
func ToViewResponse(s *ports.ViewState) ViewResponse {
	lists := make([]ListResponse, len(s.Lists))
	for i := range s.Lists {
		lists[i] = ToListResponse(&s.Lists[i])
	}

	drafts := make(map[string]DraftResponse, len(s.Drafts))
	for id, d := range s.Drafts {
		drafts[id] = DraftResponse{
			Title:       d.Title,
			Description: d.Description,
			DueDate:     d.DueDate,
			Priority:    d.Priority.OrDefault().String(),
		}
	}

	return ViewResponse{
		User:     ToUserResponse(s.User),
		Lists:    lists,
		Count:    len(lists),
		ListName: s.ListName,
		Drafts:   drafts,
		Drag:     toDragResponse(s.Drag),
	}
}

func toDragResponse(d *drag.Session) *DragResponse {
	if d == nil {
		return nil
	}
	return &DragResponse{Task: ToTaskResponse(&d.Task), FromListID: d.FromListID}
}

// DropResponse reports whether a drop changed anything.
type DropResponse struct {
	Moved bool `json:"moved"`
}

// ScrollResponse is how far the page should scroll, in pixels.
type ScrollResponse struct {
	Delta int `json:"delta"`
}

// LivenessResponse reports that the process is up and how many session
// views it holds.
type LivenessResponse struct {
	Status      string `json:"status"`
	ActiveViews int    `json:"active_views"`
}

// ReadinessResponse lists every registered dependency check by name.
type ReadinessResponse struct {
	Status string          `json:"status"`
	Checks []CheckResponse `json:"checks"`
}

// CheckResponse is one dependency's result. Error is set when Status is
// "failing".
type CheckResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ToReadinessResponse sorts results by checker name. ready is false when any
// check failed.
func ToReadinessResponse(results map[string]error) (resp ReadinessResponse, ready bool) {
	ready = true
	resp.Checks = make([]CheckResponse, 0, len(results))
	for _, name := range slices.Sorted(maps.Keys(results)) {
		c := CheckResponse{Name: name, Status: "ok"}
		if err := results[name]; err != nil {
			c.Status = "failing"
			c.Error = err.Error()
			ready = false
		}
		resp.Checks = append(resp.Checks, c)
	}
	resp.Status = "ready"
	if !ready {
		resp.Status = "not_ready"
	}
	return resp, ready
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
