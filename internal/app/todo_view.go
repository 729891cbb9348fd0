package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	appctx "github.com/jsamuelsen11/todolists/internal/app/context"
	"github.com/jsamuelsen11/todolists/internal/app/fanout"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/docpath"
	"github.com/jsamuelsen11/todolists/internal/domain/drag"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// RefreshPolicy controls how local state follows a successful write.
type RefreshPolicy string

const (
	// RefreshFull refetches every list and task after each write.
	RefreshFull RefreshPolicy = "full"
	// RefreshPatch applies the write to local state without refetching.
	RefreshPatch RefreshPolicy = "patch"
)

// IsValid returns true if the policy is one of the defined constants.
func (p RefreshPolicy) IsValid() bool {
	return p == RefreshFull || p == RefreshPatch
}

// ViewConfig tunes every TodoView created by Views.
type ViewConfig struct {
	RefreshPolicy    RefreshPolicy
	FetchConcurrency int
	// CallbackTimeout bounds the refresh run by an auth-state change that
	// arrives outside any request.
	CallbackTimeout time.Duration
	// AtomicMove moves tasks with a single batch write when the store
	// supports it.
	AtomicMove bool
}

// ViewRecorder receives view measurements.
type ViewRecorder interface {
	RecordRefresh(ctx context.Context, elapsed time.Duration, err error)
	RecordMove(ctx context.Context, atomic bool, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordRefresh(context.Context, time.Duration, error) {}
func (nopRecorder) RecordMove(context.Context, bool, error)             {}

// Compile-time check that TodoView implements ports.TodoView.
var _ ports.TodoView = (*TodoView)(nil)

// viewState is the local state of a TodoView.
type viewState struct {
	user     *user.User
	lists    []todolist.TodoList
	listName string
	drafts   map[string]task.Draft
	drag     *drag.Session
}

func emptyState() viewState {
	return viewState{
		lists:  []todolist.TodoList{},
		drafts: make(map[string]task.Draft),
	}
}

// TodoView implements ports.TodoView for one session. Operations hold opMu
// so they apply one at a time, in arrival order.
type TodoView struct {
	sessionID string
	store     ports.DocumentStore
	batch     ports.BatchWriter
	cfg       ViewConfig
	logger    *slog.Logger
	recorder  ViewRecorder
	now       func() time.Time

	opMu    sync.Mutex
	state   *appctx.SafeRef[viewState]
	session *appctx.SafeRef[*user.Session]

	startOnce   sync.Once
	startErr    error
	unsubscribe func()
	closeOnce   sync.Once
	lastUsed    atomic.Int64
}

func newTodoView(sessionID string, store ports.DocumentStore, cfg ViewConfig, recorder ViewRecorder, logger *slog.Logger) *TodoView {
	v := &TodoView{
		sessionID: sessionID,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		recorder:  recorder,
		now:       time.Now,
		state:     appctx.NewRef(emptyState()),
		session:   appctx.NewRef[*user.Session](nil),
	}
	if cfg.AtomicMove {
		v.batch, _ = store.(ports.BatchWriter)
	}
	v.touch()
	return v
}

// start subscribes to auth-state changes, then delivers current unless a
// change already arrived. Only the first call does any work.
func (v *TodoView) start(ctx context.Context, bus ports.AuthStateBus, current *user.User, base context.Context) error {
	v.startOnce.Do(func() {
		var notified atomic.Bool
		unsubscribe, err := bus.Subscribe(ctx, v.sessionID, func(u *user.User) {
			notified.Store(true)
			cbCtx, cancel := context.WithTimeout(base, v.cfg.CallbackTimeout)
			defer cancel()
			v.onAuthState(cbCtx, u)
		})
		if err != nil {
			v.startErr = fmt.Errorf("subscribing to auth state: %w", err)
			return
		}
		v.unsubscribe = unsubscribe

		if !notified.Load() {
			v.onAuthState(ctx, current)
		}
	})
	return v.startErr
}

// Close releases the auth-state subscription.
func (v *TodoView) Close() {
	v.closeOnce.Do(func() {
		if v.unsubscribe != nil {
			v.unsubscribe()
		}
	})
}

func (v *TodoView) touch() {
	v.lastUsed.Store(v.now().UnixNano())
}

func (v *TodoView) idleSince() time.Time {
	return time.Unix(0, v.lastUsed.Load())
}

// bind records the latest tokens for the session so backend calls made
// outside a request still authenticate.
func (v *TodoView) bind(s *user.Session) {
	v.session.Set(s)
	v.touch()
}

// authed returns ctx carrying the bound session unless it already has one.
func (v *TodoView) authed(ctx context.Context) context.Context {
	if user.SessionFromContext(ctx) != nil {
		return ctx
	}
	if s := v.session.Get(); s != nil {
		return user.WithSession(ctx, s)
	}
	return ctx
}

func (v *TodoView) onAuthState(ctx context.Context, u *user.User) {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	if u == nil {
		v.logger.InfoContext(ctx, "signed out, clearing view", slog.String("operation", "onAuthState"))
		v.state.Set(emptyState())
		return
	}

	signedIn := *u
	v.state.Update(func(s *viewState) { s.user = &signedIn })
	if err := v.refreshLocked(ctx); err != nil {
		v.logger.WarnContext(ctx, "initial load failed", slog.String("operation", "onAuthState"), slog.Any("error", err))
	}
}

// State returns a deep copy of the local state.
func (v *TodoView) State() ports.ViewState {
	return appctx.View(v.state, func(s *viewState) ports.ViewState {
		out := ports.ViewState{
			ListName: s.listName,
			Lists:    make([]todolist.TodoList, len(s.lists)),
			Drafts:   maps.Clone(s.drafts),
		}
		if s.user != nil {
			u := *s.user
			out.User = &u
		}
		for i := range s.lists {
			out.Lists[i] = s.lists[i]
			out.Lists[i].Tasks = slices.Clone(s.lists[i].Tasks)
		}
		if s.drag != nil {
			d := *s.drag
			out.Drag = &d
		}
		return out
	})
}

func (v *TodoView) currentUser() (*user.User, error) {
	u := v.state.Get().user
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

// Refresh refetches every list and its tasks.
func (v *TodoView) Refresh(ctx context.Context) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()
	return v.refreshLocked(ctx)
}

func (v *TodoView) refreshLocked(ctx context.Context) error {
	u, err := v.currentUser()
	if err != nil {
		return err
	}
	ctx = v.authed(ctx)

	start := v.now()
	lists, err := v.fetchLists(ctx, u.ID)
	v.recorder.RecordRefresh(ctx, v.now().Sub(start), err)
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to fetch lists",
			slog.String("operation", "Refresh"),
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
		return err
	}

	v.state.Update(func(s *viewState) { s.lists = lists })
	return nil
}

func (v *TodoView) fetchLists(ctx context.Context, uid string) ([]todolist.TodoList, error) {
	listsPath := docpath.Lists(uid)
	docs, err := v.store.List(ctx, listsPath)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Path: listsPath, Err: err}
	}

	lists := make([]todolist.TodoList, len(docs))
	for i, doc := range docs {
		lists[i] = listFromDocument(doc)
	}

	tasks, err := fanout.All(ctx, v.cfg.FetchConcurrency, lists, func(ctx context.Context, l todolist.TodoList) ([]task.Task, error) {
		tasksPath := docpath.Tasks(uid, l.ID)
		docs, err := v.store.List(ctx, tasksPath)
		if err != nil {
			return nil, &domain.StoreError{Op: "list", Path: tasksPath, Err: err}
		}
		out := make([]task.Task, len(docs))
		for i, doc := range docs {
			out[i] = taskFromDocument(doc)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	for i := range lists {
		lists[i].Tasks = tasks[i]
	}
	return lists, nil
}

// afterWrite brings local state up to date after a successful write: a
// refetch under RefreshFull, patch otherwise. Refetch failures are logged;
// the write itself already succeeded.
func (v *TodoView) afterWrite(ctx context.Context, op string, patch func(*viewState)) {
	if v.cfg.RefreshPolicy != RefreshPatch {
		if err := v.refreshLocked(ctx); err != nil {
			v.logger.WarnContext(ctx, "refresh after write failed",
				slog.String("operation", op),
				slog.Any("error", err),
			)
		}
		return
	}
	v.state.Update(patch)
}

// SetListNameInput records the pending name for a new list.
func (v *TodoView) SetListNameInput(name string) {
	v.state.Update(func(s *viewState) { s.listName = name })
}

// AddList creates a list named by the pending input.
func (v *TodoView) AddList(ctx context.Context) (*todolist.TodoList, error) {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	list := todolist.TodoList{Name: strings.TrimSpace(v.state.Get().listName)}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	u, err := v.currentUser()
	if err != nil {
		return nil, err
	}

	list.CreatedBy = u.Email
	list.CreatedAt = v.now().UTC()
	list.Tasks = []task.Task{}

	path := docpath.Lists(u.ID)
	id, err := v.store.Create(v.authed(ctx), path, listFields(&list))
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to create list",
			slog.String("operation", "AddList"),
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
		return nil, &domain.StoreError{Op: "create", Path: path, Err: err}
	}
	list.ID = id

	v.state.Update(func(s *viewState) { s.listName = "" })
	v.afterWrite(ctx, "AddList", func(s *viewState) {
		s.lists = append(s.lists, list)
	})
	return &list, nil
}

// SetTaskInput records one field of a list's draft.
func (v *TodoView) SetTaskInput(listID string, field task.Field, value string) error {
	var err error
	v.state.Update(func(s *viewState) {
		d, ok := s.drafts[listID]
		if !ok {
			d = task.EmptyDraft()
		}
		if err = d.Set(field, value); err == nil {
			s.drafts[listID] = d
		}
	})
	return err
}

// AddTask creates a task in listID from the list's draft.
func (v *TodoView) AddTask(ctx context.Context, listID string) (*task.Task, error) {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	var listKnown bool
	draft := appctx.View(v.state, func(s *viewState) task.Draft {
		listKnown = todolist.Find(s.lists, listID) >= 0
		if d, ok := s.drafts[listID]; ok {
			return d
		}
		return task.EmptyDraft()
	})
	t := draft.Task(v.now().UTC())
	if err := t.Validate(); err != nil {
		return nil, err
	}
	u, err := v.currentUser()
	if err != nil {
		return nil, err
	}
	if !listKnown {
		return nil, fmt.Errorf("list %s: %w", listID, domain.ErrNotFound)
	}

	path := docpath.Tasks(u.ID, listID)
	id, err := v.store.Create(v.authed(ctx), path, taskFields(&t))
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to create task",
			slog.String("operation", "AddTask"),
			slog.String("list_id", listID),
			slog.Any("error", err),
		)
		return nil, &domain.StoreError{Op: "create", Path: path, Err: err}
	}
	t.ID = id

	v.state.Update(func(s *viewState) { s.drafts[listID] = task.EmptyDraft() })
	v.afterWrite(ctx, "AddTask", func(s *viewState) {
		if i := todolist.Find(s.lists, listID); i >= 0 {
			s.lists[i].Tasks = append(s.lists[i].Tasks, t)
		}
	})
	return &t, nil
}

// UpdateTaskPriority changes only the priority of a task.
func (v *TodoView) UpdateTaskPriority(ctx context.Context, listID, taskID string, p task.Priority) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()
	return v.updatePriorityLocked(ctx, listID, taskID, p)
}

func (v *TodoView) updatePriorityLocked(ctx context.Context, listID, taskID string, p task.Priority) error {
	if !p.IsValid() {
		return invalidPriority(p)
	}
	u, err := v.currentUser()
	if err != nil {
		return err
	}

	path := docpath.Tasks(u.ID, listID)
	fields := ports.Fields{fieldPriority: p.String()}
	if err := v.store.Update(v.authed(ctx), path, taskID, fields); err != nil {
		v.logger.ErrorContext(ctx, "failed to update task priority",
			slog.String("operation", "UpdateTaskPriority"),
			slog.String("list_id", listID),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return &domain.StoreError{Op: "update", Path: path, Err: err}
	}

	v.afterWrite(ctx, "UpdateTaskPriority", func(s *viewState) {
		if i := todolist.Find(s.lists, listID); i >= 0 {
			if j := s.lists[i].FindTask(taskID); j >= 0 {
				s.lists[i].Tasks[j].Priority = p
			}
		}
	})
	return nil
}

// DeleteTask removes a task. A task that is already gone is logged and
// treated as deleted.
func (v *TodoView) DeleteTask(ctx context.Context, listID, taskID string) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	u, err := v.currentUser()
	if err != nil {
		return err
	}

	path := docpath.Tasks(u.ID, listID)
	err = v.store.Delete(v.authed(ctx), path, taskID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		v.logger.WarnContext(ctx, "task already deleted",
			slog.String("operation", "DeleteTask"),
			slog.String("list_id", listID),
			slog.String("task_id", taskID),
		)
	case err != nil:
		v.logger.ErrorContext(ctx, "failed to delete task",
			slog.String("operation", "DeleteTask"),
			slog.String("list_id", listID),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return &domain.StoreError{Op: "delete", Path: path, Err: err}
	}

	v.afterWrite(ctx, "DeleteTask", func(s *viewState) {
		removeTask(s, listID, taskID)
	})
	return nil
}

// MoveTask copies t into toListID with priority p and deletes the original.
// Local state is always patched: the task leaves the source list and is
// appended to the destination under its new id.
func (v *TodoView) MoveTask(ctx context.Context, fromListID, toListID string, t task.Task, p task.Priority) (*task.Task, error) {
	v.opMu.Lock()
	defer v.opMu.Unlock()
	return v.moveLocked(ctx, fromListID, toListID, t, p)
}

func (v *TodoView) moveLocked(ctx context.Context, fromListID, toListID string, t task.Task, p task.Priority) (*task.Task, error) {
	if !p.IsValid() {
		return nil, invalidPriority(p)
	}
	u, err := v.currentUser()
	if err != nil {
		return nil, err
	}
	if !v.hasList(toListID) {
		return nil, fmt.Errorf("list %s: %w", toListID, domain.ErrNotFound)
	}

	moved := t
	moved.ID = ""
	moved.Priority = p

	m := &move{
		from:   docpath.Tasks(u.ID, fromListID),
		to:     docpath.Tasks(u.ID, toListID),
		taskID: t.ID,
		task:   &moved,
		store:  v.store,
	}

	ctx = v.authed(ctx)
	atomicMove := v.batch != nil
	if atomicMove {
		err = m.commitBatch(ctx, v.batch)
	} else {
		err = m.commitSteps(ctx)
	}
	v.recorder.RecordMove(ctx, atomicMove, err)
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to move task",
			slog.String("operation", "MoveTask"),
			slog.String("task_id", t.ID),
			slog.String("from_list_id", fromListID),
			slog.String("to_list_id", toListID),
			slog.Bool("atomic", atomicMove),
			slog.Any("error", err),
		)
		return nil, err
	}

	v.state.Update(func(s *viewState) {
		removeTask(s, fromListID, t.ID)
		if i := todolist.Find(s.lists, toListID); i >= 0 {
			s.lists[i].Tasks = append(s.lists[i].Tasks, moved)
		}
	})
	return &moved, nil
}

// BeginDrag captures the task being dragged from listID.
func (v *TodoView) BeginDrag(listID, taskID string) error {
	var err error
	v.state.Update(func(s *viewState) {
		i := todolist.Find(s.lists, listID)
		j := -1
		if i >= 0 {
			j = s.lists[i].FindTask(taskID)
		}
		if j < 0 {
			err = fmt.Errorf("task %s in list %s: %w", taskID, listID, domain.ErrNotFound)
			return
		}
		s.drag = &drag.Session{Task: s.lists[i].Tasks[j], FromListID: listID}
	})
	return err
}

// CancelDrag ends the drag without changes.
func (v *TodoView) CancelDrag() {
	v.state.Update(func(s *viewState) { s.drag = nil })
}

// Drop completes the drag onto toListID. Dropping onto the source list
// changes the priority; dropping onto another list moves the task. The
// drag ends whatever the outcome.
func (v *TodoView) Drop(ctx context.Context, toListID string, p *task.Priority) (bool, error) {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	var d *drag.Session
	v.state.Update(func(s *viewState) {
		d, s.drag = s.drag, nil
	})
	if d == nil || p == nil {
		return false, nil
	}

	if d.FromListID == toListID {
		if err := v.updatePriorityLocked(ctx, toListID, d.Task.ID, *p); err != nil {
			return false, err
		}
		return true, nil
	}
	if _, err := v.moveLocked(ctx, d.FromListID, toListID, d.Task, *p); err != nil {
		return false, err
	}
	return true, nil
}

func (v *TodoView) hasList(listID string) bool {
	return appctx.View(v.state, func(s *viewState) bool {
		return todolist.Find(s.lists, listID) >= 0
	})
}

func removeTask(s *viewState, listID, taskID string) {
	i := todolist.Find(s.lists, listID)
	if i < 0 {
		return
	}
	if j := s.lists[i].FindTask(taskID); j >= 0 {
		s.lists[i].Tasks = slices.Delete(slices.Clone(s.lists[i].Tasks), j, j+1)
	}
}

func invalidPriority(p task.Priority) error {
	return &domain.ValidationError{Fields: map[string]string{
		"priority": fmt.Sprintf("invalid: %q", p),
	}}
}

// newDocumentID names documents created inside a batch, where the store
// cannot assign ids.
func newDocumentID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
