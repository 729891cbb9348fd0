package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/mocks"
)

func TestBeginDrag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       dto.BeginDragRequest
		viewErr    error
		callsView  bool
		wantStatus int
	}{
		{
			name:       "picked up",
			body:       dto.BeginDragRequest{ListID: "L1", TaskID: "t1"},
			callsView:  true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unknown task",
			body:       dto.BeginDragRequest{ListID: "L1", TaskID: "nope"},
			viewErr:    domain.ErrNotFound,
			callsView:  true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing ids",
			body:       dto.BeginDragRequest{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			views := mocks.NewMockTodoViews(t)
			if tt.callsView {
				view := mocks.NewMockTodoView(t)
				view.EXPECT().BeginDrag(tt.body.ListID, tt.body.TaskID).Return(tt.viewErr)
				views = newViews(t, view)
			}
			h := handlers.NewDragHandler(views)

			rec := httptest.NewRecorder()
			h.BeginDrag(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/drag", jsonBody(t, tt.body))))

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestCancelDrag(t *testing.T) {
	t.Parallel()

	view := mocks.NewMockTodoView(t)
	view.EXPECT().CancelDrag().Return()
	h := handlers.NewDragHandler(newViews(t, view))

	rec := httptest.NewRecorder()
	h.CancelDrag(rec, withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/drag", nil)))

	requireStatus(t, rec, http.StatusNoContent)
}

func TestDrop(t *testing.T) {
	t.Parallel()

	t.Run("on a section", func(t *testing.T) {
		t.Parallel()

		view := mocks.NewMockTodoView(t)
		view.EXPECT().Drop(mock.Anything, "L2", mock.MatchedBy(func(p *task.Priority) bool {
			return p != nil && *p == task.PriorityLow
		})).Return(true, nil)
		h := handlers.NewDragHandler(newViews(t, view))

		low := "low"
		body := jsonBody(t, dto.DropRequest{ListID: "L2", Priority: &low})
		rec := httptest.NewRecorder()
		h.Drop(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/drop", body)))

		requireStatus(t, rec, http.StatusOK)
		if resp := decodeJSON[dto.DropResponse](t, rec); !resp.Moved {
			t.Error("moved = false, want true")
		}
	})

	t.Run("outside sections", func(t *testing.T) {
		t.Parallel()

		view := mocks.NewMockTodoView(t)
		view.EXPECT().Drop(mock.Anything, "L2", (*task.Priority)(nil)).Return(false, nil)
		h := handlers.NewDragHandler(newViews(t, view))

		body := jsonBody(t, dto.DropRequest{ListID: "L2"})
		rec := httptest.NewRecorder()
		h.Drop(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/drop", body)))

		requireStatus(t, rec, http.StatusOK)
		if resp := decodeJSON[dto.DropResponse](t, rec); resp.Moved {
			t.Error("moved = true, want false")
		}
	})
}

func TestScroll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       dto.ScrollRequest
		wantStatus int
		wantDelta  int
	}{
		{name: "near top", body: dto.ScrollRequest{PointerY: 40, ViewportHeight: 800}, wantStatus: http.StatusOK, wantDelta: -10},
		{name: "near bottom", body: dto.ScrollRequest{PointerY: 750, ViewportHeight: 800}, wantStatus: http.StatusOK, wantDelta: 10},
		{name: "middle", body: dto.ScrollRequest{PointerY: 400, ViewportHeight: 800}, wantStatus: http.StatusOK, wantDelta: 0},
		{name: "no viewport", body: dto.ScrollRequest{PointerY: 10}, wantStatus: http.StatusBadRequest},
	}

	h := handlers.NewDragHandler(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.Scroll(rec, httptest.NewRequest(http.MethodPost, "/api/v1/drag/scroll", jsonBody(t, tt.body)))

			requireStatus(t, rec, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}
			if resp := decodeJSON[dto.ScrollResponse](t, rec); resp.Delta != tt.wantDelta {
				t.Errorf("delta = %d, want %d", resp.Delta, tt.wantDelta)
			}
		})
	}
}
