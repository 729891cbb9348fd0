package dto_test

import (
	"errors"
	"testing"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
)

func stringPtr(s string) *string { return &s }

// requireValidationField asserts err wraps ErrValidation and the resulting
// ValidationError contains the expected field key.
func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, got %v", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

type validator interface {
	Validate() error
}

func TestRequests_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       validator
		wantField string
	}{
		{name: "task input title", req: &dto.TaskInputRequest{Field: "title", Value: "Dishes"}},
		{name: "task input due date", req: &dto.TaskInputRequest{Field: "due_date", Value: "2026-03-01"}},
		{name: "task input unknown field", req: &dto.TaskInputRequest{Field: "owner"}, wantField: "field"},
		{name: "task input camelCase rejected", req: &dto.TaskInputRequest{Field: "dueDate"}, wantField: "field"},

		{name: "create task empty body", req: &dto.CreateTaskRequest{}},
		{name: "create task empty priority defaults", req: &dto.CreateTaskRequest{Priority: stringPtr("")}},
		{name: "create task bad priority", req: &dto.CreateTaskRequest{Priority: stringPtr("urgent")}, wantField: "priority"},

		{name: "priority valid", req: &dto.PriorityRequest{Priority: "high"}},
		{name: "priority empty", req: &dto.PriorityRequest{}, wantField: "priority"},
		{name: "priority unknown", req: &dto.PriorityRequest{Priority: "HIGH"}, wantField: "priority"},

		{name: "move valid", req: &dto.MoveTaskRequest{ToListID: "L2", Priority: "medium"}},
		{name: "move missing destination", req: &dto.MoveTaskRequest{Priority: "low"}, wantField: "to_list_id"},
		{name: "move missing priority", req: &dto.MoveTaskRequest{ToListID: "L2"}, wantField: "priority"},

		{name: "begin drag valid", req: &dto.BeginDragRequest{ListID: "L1", TaskID: "t1"}},
		{name: "begin drag missing task", req: &dto.BeginDragRequest{ListID: "L1"}, wantField: "task_id"},
		{name: "begin drag blank list", req: &dto.BeginDragRequest{ListID: " ", TaskID: "t1"}, wantField: "list_id"},

		{name: "drop on section", req: &dto.DropRequest{ListID: "L1", Priority: stringPtr("low")}},
		{name: "drop on list body", req: &dto.DropRequest{ListID: "L1"}},
		{name: "drop bad section", req: &dto.DropRequest{ListID: "L1", Priority: stringPtr("")}, wantField: "priority"},
		{name: "drop missing list", req: &dto.DropRequest{}, wantField: "list_id"},

		{name: "scroll valid", req: &dto.ScrollRequest{PointerY: 10, ViewportHeight: 800}},
		{name: "scroll without viewport", req: &dto.ScrollRequest{PointerY: 10}, wantField: "viewport_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			requireValidationField(t, err, tt.wantField)
		})
	}
}

func TestTaskInputRequest_DraftField(t *testing.T) {
	t.Parallel()

	tests := map[string]task.Field{
		"title":       task.FieldTitle,
		"description": task.FieldDescription,
		"due_date":    task.FieldDueDate,
		"priority":    task.FieldPriority,
	}
	for in, want := range tests {
		req := dto.TaskInputRequest{Field: in}
		if got := req.DraftField(); got != want {
			t.Errorf("DraftField(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateTaskRequest_Inputs(t *testing.T) {
	t.Parallel()

	req := dto.CreateTaskRequest{Title: stringPtr("Dishes"), Priority: stringPtr("high")}
	got := req.Inputs()

	if len(got) != 2 {
		t.Fatalf("Inputs() = %v, want 2 entries", got)
	}
	if got[0] != (dto.TaskInputRequest{Field: "title", Value: "Dishes"}) {
		t.Errorf("Inputs()[0] = %+v", got[0])
	}
	if got[1] != (dto.TaskInputRequest{Field: "priority", Value: "high"}) {
		t.Errorf("Inputs()[1] = %+v", got[1])
	}

	if empty := (&dto.CreateTaskRequest{}).Inputs(); len(empty) != 0 {
		t.Errorf("Inputs() of empty request = %v, want none", empty)
	}
}

func TestDropRequest_DropPriority(t *testing.T) {
	t.Parallel()

	if p := (&dto.DropRequest{ListID: "L1"}).DropPriority(); p != nil {
		t.Errorf("DropPriority() = %v, want nil", *p)
	}
	p := (&dto.DropRequest{ListID: "L1", Priority: stringPtr("medium")}).DropPriority()
	if p == nil || *p != task.PriorityMedium {
		t.Errorf("DropPriority() = %v, want medium", p)
	}
}

func TestCredentialsRequest_Credentials(t *testing.T) {
	t.Parallel()

	req := dto.CredentialsRequest{Email: "ada@example.com", Password: "secret1"}
	creds := req.Credentials()
	if creds.Email != req.Email || creds.Password != req.Password {
		t.Errorf("Credentials() = %+v", creds)
	}
}
