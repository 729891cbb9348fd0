// Package todolist defines a named, user-owned collection of tasks.
package todolist

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
)

// TodoList is a named collection of tasks owned by one user. Tasks is
// populated by the view's refresh; the backend stores tasks in a child
// collection, not on the list document.
type TodoList struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	Tasks     []task.Task
}

// Validate checks business rules for the TodoList entity.
func (l *TodoList) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": domain.MsgRequired}}
	}
	return nil
}

// FindTask returns the index of the task with id, or -1.
func (l *TodoList) FindTask(id string) int {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the index of the list with id in lists, or -1.
func Find(lists []TodoList, id string) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}
