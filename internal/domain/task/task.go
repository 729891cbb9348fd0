// Package task defines a single to-do item and the per-list draft used to
// compose a new one.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
)

// Task is an item within a list. DueDate is kept as the YYYY-MM-DD string the
// date input produced and may be empty.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     string
	Priority    Priority
	CreatedAt   time.Time
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if !t.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", t.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Field names a Draft input.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldDueDate     Field = "dueDate"
	FieldPriority    Field = "priority"
)

// Draft is the pending input for a list's "Add task" form.
type Draft struct {
	Title       string
	Description string
	DueDate     string
	Priority    Priority
}

// EmptyDraft returns the state a draft is reset to after a task is added.
func EmptyDraft() Draft {
	return Draft{Priority: DefaultPriority}
}

// Set updates a single draft field. An unknown field or an invalid priority
// yields a *domain.ValidationError and leaves the draft unchanged.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldDescription:
		d.Description = value
	case FieldDueDate:
		d.DueDate = value
	case FieldPriority:
		p := Priority(value).OrDefault()
		if !p.IsValid() {
			return &domain.ValidationError{Fields: map[string]string{
				string(field): fmt.Sprintf("invalid: %q", value),
			}}
		}
		d.Priority = p
	default:
		return &domain.ValidationError{Fields: map[string]string{
			"field": fmt.Sprintf("unknown: %q", field),
		}}
	}
	return nil
}

// Task builds the task the draft describes, stamped with createdAt.
func (d *Draft) Task(createdAt time.Time) Task {
	return Task{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority.OrDefault(),
		CreatedAt:   createdAt,
	}
}
