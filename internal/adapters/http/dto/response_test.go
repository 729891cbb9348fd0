package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/domain/drag"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

var testCreatedAt = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func TestToTaskResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToTaskResponse(&task.Task{
		ID:          "t1",
		Title:       "Dishes",
		Description: "after dinner",
		DueDate:     "2026-02-13",
		Priority:    task.PriorityHigh,
		CreatedAt:   testCreatedAt,
	})

	want := dto.TaskResponse{
		ID:          "t1",
		Title:       "Dishes",
		Description: "after dinner",
		DueDate:     "2026-02-13",
		Priority:    "high",
		CreatedAt:   "2026-02-12T15:04:05Z",
	}
	if got != want {
		t.Errorf("ToTaskResponse() = %+v, want %+v", got, want)
	}
}

func TestToTaskResponse_ZeroCreatedAtOmitted(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dto.ToTaskResponse(&task.Task{ID: "t1", Title: "Dishes", Priority: task.PriorityLow}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	_ = json.Unmarshal(data, &m)
	if _, ok := m["created_at"]; ok {
		t.Errorf("created_at present for zero time: %s", data)
	}
}

func TestToListResponse_EmptyTasksIsArray(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dto.ToListResponse(&todolist.TodoList{ID: "L1", Name: "Home", CreatedBy: "ada@example.com"}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	_ = json.Unmarshal(data, &m)
	if tasks, ok := m["tasks"].([]any); !ok || len(tasks) != 0 {
		t.Errorf("tasks = %v, want []", m["tasks"])
	}
	if m["created_by"] != "ada@example.com" {
		t.Errorf("created_by = %v", m["created_by"])
	}
}

func TestToViewResponse(t *testing.T) {
	t.Parallel()

	state := ports.ViewState{
		User: &user.User{ID: "u1", Email: "ada@example.com"},
		Lists: []todolist.TodoList{
			{ID: "L1", Name: "Home", Tasks: []task.Task{{ID: "t1", Title: "Dishes", Priority: task.PriorityLow}}},
			{ID: "L2", Name: "Work"},
		},
		ListName: "Gro",
		Drafts:   map[string]task.Draft{"L1": {Title: "Laun"}},
		Drag:     &drag.Session{Task: task.Task{ID: "t1", Title: "Dishes", Priority: task.PriorityLow}, FromListID: "L1"},
	}

	got := dto.ToViewResponse(&state)

	if got.User == nil || got.User.ID != "u1" {
		t.Errorf("User = %+v", got.User)
	}
	if got.Count != 2 || got.Lists[0].ID != "L1" || got.Lists[1].ID != "L2" {
		t.Errorf("Lists = %+v, want L1, L2 in order", got.Lists)
	}
	if got.ListName != "Gro" {
		t.Errorf("ListName = %q", got.ListName)
	}
	if d := got.Drafts["L1"]; d.Title != "Laun" || d.Priority != "low" {
		t.Errorf("Drafts[L1] = %+v, want title Laun with default priority", d)
	}
	if got.Drag == nil || got.Drag.FromListID != "L1" || got.Drag.Task.ID != "t1" {
		t.Errorf("Drag = %+v", got.Drag)
	}
}

func TestToViewResponse_SignedOut(t *testing.T) {
	t.Parallel()

	got := dto.ToViewResponse(&ports.ViewState{Lists: []todolist.TodoList{}})

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"user":null,"lists":[],"count":0,"list_name":"","drafts":{},"drag":null}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestToAuthResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToAuthResponse(&ports.AuthResult{
		Session:  &user.Session{ID: "s1", User: user.User{ID: "u1", Email: "ada@example.com"}, IDToken: "secret"},
		Redirect: "/",
	})

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"user":{"id":"u1","email":"ada@example.com"},"redirect":"/"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
