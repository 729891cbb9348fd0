package task

// Priority ranks a task within its list. The UI renders one drop zone per
// priority, so it doubles as the drag-and-drop target inside a list.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned to new tasks and to reset drafts.
const DefaultPriority = PriorityLow

// Priorities lists every priority in display order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is one of the defined constants.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}

// OrDefault returns p, or DefaultPriority when p is empty.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return DefaultPriority
	}
	return p
}
