// Package drag models the in-progress drag of a task between lists and the
// edge auto-scroll rule applied while dragging.
package drag

import "github.com/jsamuelsen11/todolists/internal/domain/task"

// Auto-scroll tuning, in pixels.
const (
	ScrollThreshold = 100
	ScrollStep      = 10
)

// Session is the task being dragged and the list it was picked up from.
// Task is a snapshot taken when the drag began.
type Session struct {
	Task       task.Task
	FromListID string
}

// AutoScroll returns the vertical scroll delta for a pointer at pointerY in
// a viewport of viewportHeight: scroll up near the top edge, down near the
// bottom edge, otherwise stay put. The top edge wins when both apply.
func AutoScroll(pointerY, viewportHeight int) int {
	switch {
	case pointerY < ScrollThreshold:
		return -ScrollStep
	case viewportHeight-pointerY < ScrollThreshold:
		return ScrollStep
	default:
		return 0
	}
}
