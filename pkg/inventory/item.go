package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemHandle is a movable reference to a placed item. It pairs a copy of the
// catalog descriptor with the item's current placement. Only containers
// mutate the placement.
type ItemHandle struct {
	instance string
	desc     ItemDescriptor
	anchor   Point
	owner    Container
}

// NewItem creates a handle for a fresh item instance. The handle is not held
// by any container until it is placed, inserted or equipped.
func NewItem(desc ItemDescriptor) *ItemHandle {
	desc.Footprint = desc.Footprint.normalized()
	return &ItemHandle{
		instance: uuid.NewString(),
		desc:     desc,
	}
}

// Instance returns the unique id of this item instance.
func (h *ItemHandle) Instance() string { return h.instance }

// ID returns the catalog id.
func (h *ItemHandle) ID() ItemID { return h.desc.ID }

// Descriptor returns a copy of the catalog descriptor.
func (h *ItemHandle) Descriptor() ItemDescriptor { return h.desc }

func (h *ItemHandle) Footprint() Footprint { return h.desc.Footprint }

func (h *ItemHandle) Category() Category { return h.desc.Category }

// Anchor returns the top-left cell of the item's last grid placement.
// It is only meaningful while the item is held by a Grid.
func (h *ItemHandle) Anchor() Point { return h.anchor }

// Owner returns the container currently holding the item, or nil when the
// item is in flight or was never placed.
func (h *ItemHandle) Owner() Container { return h.owner }

func (h *ItemHandle) String() string {
	return fmt.Sprintf("%s[%s %s]", h.desc.ID, h.desc.Footprint, shortID(h.instance))
}

func shortID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
