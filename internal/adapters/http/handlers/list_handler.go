package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/domain"
	"github.com/jsamuelsen11/todolists/internal/domain/task"
	"github.com/jsamuelsen11/todolists/internal/domain/todolist"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// ListHandler handles the lists page: lists, drafts and task mutations.
// Every route requires a session.
type ListHandler struct {
	viewSource
}

// NewListHandler creates a ListHandler backed by views.
func NewListHandler(views ports.TodoViews) *ListHandler {
	return &ListHandler{viewSource{views: views}}
}

// GetLists handles GET /api/v1/lists. With ?refresh=true the view refetches
// from the backend first.
func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		if err := v.Refresh(r.Context()); err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}
	}

	state := v.State()
	writeJSON(w, http.StatusOK, dto.ToViewResponse(&state))
}

// CreateList handles POST /api/v1/lists.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateListRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	if req.Name != nil {
		v.SetListNameInput(*req.Name)
	}

	l, err := v.AddList(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ToListResponse(l))
}

// SetTaskInput handles PUT /api/v1/lists/{listId}/draft.
func (h *ListHandler) SetTaskInput(w http.ResponseWriter, r *http.Request) {
	listID, err := pathParam(r, paramListID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.TaskInputRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	if err := v.SetTaskInput(listID, req.DraftField(), req.Value); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTask handles POST /api/v1/lists/{listId}/tasks.
func (h *ListHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	listID, err := pathParam(r, paramListID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	for _, in := range req.Inputs() {
		if err := v.SetTaskInput(listID, in.DraftField(), in.Value); err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}
	}

	t, err := v.AddTask(r.Context(), listID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(t))
}

// UpdatePriority handles PATCH /api/v1/lists/{listId}/tasks/{taskId}/priority.
func (h *ListHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	listID, taskID, err := taskParams(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.PriorityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	if err := v.UpdateTaskPriority(r.Context(), listID, taskID, task.Priority(req.Priority)); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /api/v1/lists/{listId}/tasks/{taskId}.
func (h *ListHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	listID, taskID, err := taskParams(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	if err := v.DeleteTask(r.Context(), listID, taskID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTask handles POST /api/v1/lists/{listId}/tasks/{taskId}/move. The
// task is taken from the view's current state.
func (h *ListHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	listID, taskID, err := taskParams(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.MoveTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	t, err := findTask(v.State(), listID, taskID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	moved, err := v.MoveTask(r.Context(), listID, req.ToListID, t, task.Priority(req.Priority))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToTaskResponse(moved))
}

func taskParams(r *http.Request) (listID, taskID string, err error) {
	if listID, err = pathParam(r, paramListID); err != nil {
		return "", "", err
	}
	if taskID, err = pathParam(r, paramTaskID); err != nil {
		return "", "", err
	}
	return listID, taskID, nil
}

func findTask(state ports.ViewState, listID, taskID string) (task.Task, error) {
	li := todolist.Find(state.Lists, listID)
	if li < 0 {
		return task.Task{}, domain.ErrNotFound
	}
	ti := state.Lists[li].FindTask(taskID)
	if ti < 0 {
		return task.Task{}, domain.ErrNotFound
	}
	return state.Lists[li].Tasks[ti], nil
}
