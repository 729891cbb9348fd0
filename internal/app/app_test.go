package app

import (
	"log/slog"
	"time"

	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/domain/user"
	"github.com/jsamuelsen11/todolists/internal/ports"
	"github.com/jsamuelsen11/todolists/mocks"
)

var testNow = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testUser() *user.User {
	return &user.User{ID: "u1", Email: "ada@example.com"}
}

// batchStore is a document store that also supports atomic batches.
type batchStore struct {
	*mocks.MockDocumentStore
	*mocks.MockBatchWriter
}

// signedInView returns a view signed in as testUser holding lists.
func signedInView(store ports.DocumentStore, cfg ViewConfig, lists ...todolist.TodoList) *TodoView {
	if cfg.FetchConcurrency == 0 {
		cfg.FetchConcurrency = 2
	}
	if cfg.RefreshPolicy == "" {
		cfg.RefreshPolicy = RefreshFull
	}
	v := newTodoView("sess-1", store, cfg, nopRecorder{}, discardLogger())
	v.now = func() time.Time { return testNow }
	if lists == nil {
		lists = []todolist.TodoList{}
	}
	v.state.Update(func(s *viewState) {
		s.user = testUser()
		s.lists = lists
	})
	return v
}

func sampleLists() []todolist.TodoList {
	return []todolist.TodoList{
		{
			ID:   "L1",
			Name: "Home",
			Tasks: []task.Task{
				{ID: "t1", Title: "Dishes", Priority: task.PriorityLow},
				{ID: "t2", Title: "Laundry", Priority: task.PriorityMedium},
			},
		},
		{ID: "L2", Name: "Work", Tasks: []task.Task{}},
	}
}
