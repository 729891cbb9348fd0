package app

import (
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// Stored field names.
const (
	fieldName        = "name"
	fieldCreatedBy   = "createdBy"
	fieldCreatedAt   = "createdAt"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDueDate     = "dueDate"
	fieldPriority    = "priority"
)

func listFields(l *todolist.TodoList) ports.Fields {
	return ports.Fields{
		fieldName:      l.Name,
		fieldCreatedBy: l.CreatedBy,
		fieldCreatedAt: l.CreatedAt,
	}
}

func listFromDocument(doc ports.Document) todolist.TodoList {
	return todolist.TodoList{
		ID:        doc.ID,
		Name:      doc.Fields.String(fieldName),
		CreatedBy: doc.Fields.String(fieldCreatedBy),
		CreatedAt: doc.Fields.Time(fieldCreatedAt),
		Tasks:     []task.Task{},
	}
}

func taskFields(t *task.Task) ports.Fields {
	return ports.Fields{
		fieldTitle:       t.Title,
		fieldDescription: t.Description,
		fieldDueDate:     t.DueDate,
		fieldPriority:    t.Priority.String(),
		fieldCreatedAt:   t.CreatedAt,
	}
}

// taskFromDocument decodes a stored task. Documents written without a
// priority read back as the default.
func taskFromDocument(doc ports.Document) task.Task {
	return task.Task{
		ID:          doc.ID,
		Title:       doc.Fields.String(fieldTitle),
		Description: doc.Fields.String(fieldDescription),
		DueDate:     doc.Fields.String(fieldDueDate),
		Priority:    task.Priority(doc.Fields.String(fieldPriority)).OrDefault(),
		CreatedAt:   doc.Fields.Time(fieldCreatedAt),
	}
}
