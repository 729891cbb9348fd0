package app

import (
	"context"
	"errors"
	"fmt"

	appctx "github.com/jsamuelsen11/todolists/internal/app/context"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// move relocates one task between two task collections. The copy is
// written before the original is removed, so a failure never loses the
// task; both commit paths also guarantee it is never left in both lists.
type move struct {
	from   string
	to     string
	taskID string
	task   *task.Task
	store  ports.DocumentStore
}

// commitBatch writes the copy and deletes the original in one atomic batch.
func (m *move) commitBatch(ctx context.Context, batch ports.BatchWriter) error {
	m.task.ID = newDocumentID()
	ids, err := batch.Commit(ctx, []ports.Write{
		{Op: ports.WriteCreate, Collection: m.to, ID: m.task.ID, Fields: taskFields(m.task)},
		{Op: ports.WriteDelete, Collection: m.from, ID: m.taskID},
	})
	if err != nil {
		return &domain.StoreError{Op: "commit", Path: m.to, Err: err}
	}
	if len(ids) > 0 && ids[0] != "" {
		m.task.ID = ids[0]
	}
	return nil
}

// commitSteps runs create then delete as a unit of work: if the delete
// fails, the copy is deleted again.
func (m *move) commitSteps(ctx context.Context) error {
	rc := appctx.New(ctx)

	create := &createTaskAction{store: m.store, collection: m.to, task: m.task}
	if err := rc.Stage("task:"+m.to+":copy", m.task, create); err != nil {
		return err
	}
	remove := &deleteTaskAction{store: m.store, collection: m.from, id: m.taskID}
	if err := rc.AddAction(remove); err != nil {
		return err
	}

	if err := rc.Commit(ctx); err != nil {
		var serr *domain.StoreError
		if errors.As(err, &serr) {
			return serr
		}
		return &domain.StoreError{Op: "move", Path: m.from, Err: err}
	}
	return nil
}

// createTaskAction creates a task document and records its id on task.
type createTaskAction struct {
	store      ports.DocumentStore
	collection string
	task       *task.Task
}

func (a *createTaskAction) Execute(ctx context.Context) error {
	id, err := a.store.Create(ctx, a.collection, taskFields(a.task))
	if err != nil {
		return &domain.StoreError{Op: "create", Path: a.collection, Err: err}
	}
	a.task.ID = id
	return nil
}

func (a *createTaskAction) Rollback(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.collection, a.task.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return &domain.StoreError{Op: "delete", Path: a.collection, Err: err}
	}
	return nil
}

func (a *createTaskAction) Description() string {
	return fmt.Sprintf("create task %q in %s", a.task.Title, a.collection)
}

// deleteTaskAction deletes a task document. It is the last step of a move
// and is never rolled back.
type deleteTaskAction struct {
	store      ports.DocumentStore
	collection string
	id         string
}

func (a *deleteTaskAction) Execute(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.collection, a.id); err != nil {
		return &domain.StoreError{Op: "delete", Path: a.collection, Err: err}
	}
	return nil
}

func (a *deleteTaskAction) Rollback(context.Context) error { return nil }

func (a *deleteTaskAction) Description() string {
	return fmt.Sprintf("delete task %s from %s", a.id, a.collection)
}
