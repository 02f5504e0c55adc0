package inventory

// Location addresses a position inside a container: an anchor cell for a
// Grid, a category for Equipment.
type Location struct {
	Anchor   Point    `json:"anchor"`
	Category Category `json:"category,omitempty"`
}

// Container is implemented by Grid and Equipment. The unexported methods are
// the protocol a Drag uses to provisionally remove, project, validate,
// commit and restore an item.
type Container interface {
	// ContainerID returns the id given at construction.
	ContainerID() string
	// Holds reports whether the item is currently owned by the container.
	Holds(item *ItemHandle) bool

	locate(item *ItemHandle) (Location, bool)
	detach(item *ItemHandle)
	attach(item *ItemHandle, loc Location)
	project(item *ItemHandle, pos, grab Position) (Location, bool)
	evaluate(item *ItemHandle, loc Location) error
	commit(item *ItemHandle, loc Location) error
}
