package inventory

import "errors"

// Placement and equip failures. All of them are expected, recoverable
// conditions; none leaves any container partially mutated.
var (
	ErrOutOfBounds       = errors.New("inventory: footprint out of bounds")
	ErrOverlap           = errors.New("inventory: cells occupied by another item")
	ErrCategoryMismatch  = errors.New("inventory: category mismatch")
	ErrNoRelocationSpace = errors.New("inventory: no grid space to relocate occupant")
	ErrNoSpace           = errors.New("inventory: no space available for footprint")
	ErrNotHeld           = errors.New("inventory: item not held by container")
	ErrAlreadyHeld       = errors.New("inventory: item already held by a container")
	ErrEmptySlot         = errors.New("inventory: equipment slot is empty")
	ErrNotDragging       = errors.New("inventory: no drag in progress")
	ErrDragActive        = errors.New("inventory: drag in progress")
)
