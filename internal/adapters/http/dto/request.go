package dto

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
)

const msgRequired = domain.MsgRequired

// draftFields maps request field names to draft inputs.
var draftFields = map[string]task.Field{
	"title":       task.FieldTitle,
	"description": task.FieldDescription,
	"due_date":    task.FieldDueDate,
	"priority":    task.FieldPriority,
}

// CredentialsRequest is the JSON body of sign-up and log-in. It is checked
// by the account service, not here.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials converts the request to domain credentials.
func (r *CredentialsRequest) Credentials() user.Credentials {
	return user.Credentials{Email: r.Email, Password: r.Password}
}

// CreateListRequest is the JSON body for adding a list. A nil Name keeps
// the name already typed into the view's input.
type CreateListRequest struct {
	Name *string `json:"name,omitempty"`
}

// TaskInputRequest sets one field of a list's task draft.
type TaskInputRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Validate checks that Field names a draft input.
func (r *TaskInputRequest) Validate() error {
	if _, ok := draftFields[r.Field]; !ok {
		return &domain.ValidationError{Fields: map[string]string{
			"field": fmt.Sprintf("must be one of title, description, due_date, priority, got %q", r.Field),
		}}
	}
	return nil
}

// DraftField returns the draft input Field names.
func (r *TaskInputRequest) DraftField() task.Field {
	return draftFields[r.Field]
}

// CreateTaskRequest is the JSON body for adding a task. Set fields are
// written to the list's draft before the task is created from it; nil
// fields keep the draft's current value.
type CreateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// Validate checks that a provided priority is known.
func (r *CreateTaskRequest) Validate() error {
	if r.Priority != nil && !task.Priority(*r.Priority).OrDefault().IsValid() {
		return &domain.ValidationError{Fields: map[string]string{
			"priority": fmt.Sprintf("invalid: %q", *r.Priority),
		}}
	}
	return nil
}

// Inputs returns the provided fields as draft inputs, in a fixed order.
func (r *CreateTaskRequest) Inputs() []TaskInputRequest {
	var out []TaskInputRequest
	add := func(field string, v *string) {
		if v != nil {
			out = append(out, TaskInputRequest{Field: field, Value: *v})
		}
	}
	add("title", r.Title)
	add("description", r.Description)
	add("due_date", r.DueDate)
	add("priority", r.Priority)
	return out
}

// PriorityRequest is the JSON body for changing a task's priority.
type PriorityRequest struct {
	Priority string `json:"priority"`
}

// Validate checks that Priority is known.
func (r *PriorityRequest) Validate() error {
	if !task.Priority(r.Priority).IsValid() {
		return &domain.ValidationError{Fields: map[string]string{
			"priority": fmt.Sprintf("invalid: %q", r.Priority),
		}}
	}
	return nil
}

// MoveTaskRequest is the JSON body for moving a task to another list.
type MoveTaskRequest struct {
	ToListID string `json:"to_list_id"`
	Priority string `json:"priority"`
}

// Validate checks the destination and priority.
func (r *MoveTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ToListID) == "" {
		fields["to_list_id"] = msgRequired
	}
	if !task.Priority(r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// BeginDragRequest names the task picked up by a drag.
type BeginDragRequest struct {
	ListID string `json:"list_id"`
	TaskID string `json:"task_id"`
}

// Validate checks that both ids are present.
func (r *BeginDragRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ListID) == "" {
		fields["list_id"] = msgRequired
	}
	if strings.TrimSpace(r.TaskID) == "" {
		fields["task_id"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// DropRequest ends a drag over a list. Priority is the section the task was
// dropped on; nil means the list body outside any section.
type DropRequest struct {
	ListID   string  `json:"list_id"`
	Priority *string `json:"priority,omitempty"`
}

// Validate checks the target list and a provided priority.
func (r *DropRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ListID) == "" {
		fields["list_id"] = msgRequired
	}
	if r.Priority != nil && !task.Priority(*r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// DropPriority returns the drop section as a domain priority, or nil.
func (r *DropRequest) DropPriority() *task.Priority {
	if r.Priority == nil {
		return nil
	}
	p := task.Priority(*r.Priority)
	return &p
}

// ScrollRequest reports the pointer position during a drag.
type ScrollRequest struct {
	PointerY       int `json:"pointer_y"`
	ViewportHeight int `json:"viewport_height"`
}

// Validate checks that the viewport has a size.
func (r *ScrollRequest) Validate() error {
	if r.ViewportHeight <= 0 {
		return &domain.ValidationError{Fields: map[string]string{
			"viewport_height": fmt.Sprintf("must be positive, got %d", r.ViewportHeight),
		}}
	}
	return nil
}
