package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/domain/drag"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// DragHandler handles drag-and-drop between lists.
type DragHandler struct {
	viewSource
}

// NewDragHandler creates a DragHandler backed by views.
func NewDragHandler(views ports.TodoViews) *DragHandler {
	return &DragHandler{viewSource{views: views}}
}

// BeginDrag handles POST /api/v1/drag.
func (h *DragHandler) BeginDrag(w http.ResponseWriter, r *http.Request) {
	var req dto.BeginDragRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	if err := v.BeginDrag(req.ListID, req.TaskID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelDrag handles DELETE /api/v1/drag.
func (h *DragHandler) CancelDrag(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	v.CancelDrag()
	w.WriteHeader(http.StatusNoContent)
}

// Drop handles POST /api/v1/drop. A drop with no drag in progress, or on a
// list body outside any priority section, reports moved=false.
func (h *DragHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req dto.DropRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}
	moved, err := v.Drop(r.Context(), req.ListID, req.DropPriority())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.DropResponse{Moved: moved})
}

// Scroll handles POST /api/v1/drag/scroll: how far to scroll the page while
// the pointer is near an edge.
func (h *DragHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req dto.ScrollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, dto.ScrollResponse{
		Delta: drag.AutoScroll(req.PointerY, req.ViewportHeight),
	})
}
