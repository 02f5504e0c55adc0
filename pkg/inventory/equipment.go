package inventory

import (
	"github.com/sirupsen/logrus"
)

// Equipment holds at most one item per equipment category. Items displaced
// by a swap are relocated into the attached Grid.
type Equipment struct {
	id       string
	grid     *Grid
	slots    map[Category]*EquipmentSlot
	order    []Category
	layout   SlotLayout
	listener Listener
	log      logrus.FieldLogger
}

// NewEquipment creates one slot for each distinct category given, in order.
// With no categories every equippable category gets a slot. grid receives
// occupants displaced by swaps and may be nil, in which case swaps fail.
func NewEquipment(id string, grid *Grid, categories []Category, opts ...Option) *Equipment {
	if len(categories) == 0 {
		categories = EquipmentCategories()
	}
	s := buildSettings(opts...)
	e := &Equipment{
		id:       id,
		grid:     grid,
		slots:    make(map[Category]*EquipmentSlot, len(categories)),
		layout:   s.layout,
		listener: s.listener,
		log:      s.log.WithField("equipment", id),
	}
	for _, c := range categories {
		if c == CategoryNone {
			continue
		}
		if _, dup := e.slots[c]; dup {
			continue
		}
		e.slots[c] = &EquipmentSlot{Category: c}
		e.order = append(e.order, c)
	}
	return e
}

// ContainerID implements Container.
func (e *Equipment) ContainerID() string { return e.id }

// Categories returns the slot categories in construction order.
func (e *Equipment) Categories() []Category {
	out := make([]Category, len(e.order))
	copy(out, e.order)
	return out
}

// Slot returns the slot for category c or nil.
func (e *Equipment) Slot(c Category) *EquipmentSlot { return e.slots[c] }

// Equipped returns the item in category c's slot or nil.
func (e *Equipment) Equipped(c Category) *ItemHandle {
	if sl := e.slots[c]; sl != nil {
		return sl.item
	}
	return nil
}

// Layout returns the pointer hit areas of the slots.
func (e *Equipment) Layout() SlotLayout { return e.layout }

// Holds implements Container.
func (e *Equipment) Holds(item *ItemHandle) bool {
	return item != nil && item.owner == e
}

// MatchesCategory is the type gate for drops: the item's category must
// equal the slot's category exactly.
func (e *Equipment) MatchesCategory(item *ItemHandle, slot *EquipmentSlot) bool {
	if item == nil || slot == nil {
		return false
	}
	return item.Category() != CategoryNone && item.Category() == slot.Category
}

// Equip binds item to the slot of its category. The item leaves whichever
// container held it. An occupant is first relocated into the grid with
// FindFirstFit; the cells of item itself count as free for that search when
// item comes from the same grid. When no space exists ErrNoRelocationSpace is
// returned and nothing changes.
func (e *Equipment) Equip(item *ItemHandle) error {
	if item == nil {
		return ErrNotHeld
	}
	slot := e.slots[item.Category()]
	if !e.MatchesCategory(item, slot) {
		return ErrCategoryMismatch
	}
	if slot.item == item {
		return nil
	}

	occupant := slot.item
	var dest Point
	if occupant != nil {
		if e.grid == nil {
			return ErrNoRelocationSpace
		}
		var ignore *ItemHandle
		if e.grid.Holds(item) {
			ignore = item
		}
		p, ok := e.grid.findFit(ignore, occupant.Footprint())
		if !ok {
			e.log.WithFields(logrus.Fields{"item": item.ID(), "occupant": occupant.ID()}).Debug("swap rejected, grid full")
			return ErrNoRelocationSpace
		}
		dest = p
	}

	if item.owner != nil {
		item.owner.detach(item)
	}
	if occupant != nil {
		e.unbind(slot)
		e.grid.Place(occupant, dest)
	}
	e.bind(slot, item)
	return nil
}

// QuickEquip attempts Equip and reports whether it succeeded. It is the first
// step of the "equip, otherwise stash in the grid" pickup chain.
func (e *Equipment) QuickEquip(item *ItemHandle) bool {
	if item == nil {
		return false
	}
	if err := e.Equip(item); err != nil {
		e.log.WithField("item", item.ID()).WithError(err).Debug("quick equip declined")
		return false
	}
	return true
}

// Unequip clears category c's slot and returns the item for the caller to
// place elsewhere. Destination capacity is the caller's concern.
func (e *Equipment) Unequip(c Category) *ItemHandle {
	slot := e.slots[c]
	if slot == nil || slot.item == nil {
		return nil
	}
	item := slot.item
	e.unbind(slot)
	return item
}

// UnequipToGrid moves the item in category c's slot into the grid, rejecting
// the request before touching the slot when the grid has no room.
func (e *Equipment) UnequipToGrid(c Category) error {
	item := e.Equipped(c)
	if item == nil {
		return ErrEmptySlot
	}
	if e.grid == nil {
		return ErrNoSpace
	}
	p, ok := e.grid.FindFirstFit(item.Footprint())
	if !ok {
		return ErrNoSpace
	}
	e.Unequip(c)
	e.grid.Place(item, p)
	return nil
}

// Items returns the equipped items in slot order.
func (e *Equipment) Items() []*ItemHandle {
	var out []*ItemHandle
	for _, c := range e.order {
		if it := e.slots[c].item; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Clear empties every slot without notifying the listener.
func (e *Equipment) Clear() {
	for _, sl := range e.slots {
		if sl.item != nil && sl.item.owner == e {
			sl.item.owner = nil
		}
		sl.item = nil
	}
}

// SlotAt returns the category whose hit area contains pos.
func (e *Equipment) SlotAt(pos Position) (Category, bool) {
	for _, c := range e.order {
		if r, ok := e.layout[c]; ok && r.Contains(pos) {
			return c, true
		}
	}
	return CategoryNone, false
}

func (e *Equipment) bind(slot *EquipmentSlot, item *ItemHandle) {
	slot.item = item
	item.owner = e
	e.log.WithFields(logrus.Fields{"item": item.ID(), "slot": slot.Category}).Debug("item equipped")
	e.listener.Equipped(slot.Category, item)
}

func (e *Equipment) unbind(slot *EquipmentSlot) {
	item := slot.item
	slot.item = nil
	if item.owner == e {
		item.owner = nil
	}
	e.log.WithFields(logrus.Fields{"item": item.ID(), "slot": slot.Category}).Debug("item unequipped")
	e.listener.Unequipped(slot.Category, item)
}

func (e *Equipment) locate(item *ItemHandle) (Location, bool) {
	if !e.Holds(item) {
		return Location{}, false
	}
	for _, c := range e.order {
		if e.slots[c].item == item {
			return Location{Category: c}, true
		}
	}
	return Location{}, false
}

func (e *Equipment) detach(item *ItemHandle) {
	loc, ok := e.locate(item)
	if !ok {
		return
	}
	e.unbind(e.slots[loc.Category])
}

func (e *Equipment) attach(item *ItemHandle, loc Location) {
	if slot := e.slots[loc.Category]; slot != nil {
		e.bind(slot, item)
	}
}

func (e *Equipment) project(_ *ItemHandle, pos, _ Position) (Location, bool) {
	c, ok := e.SlotAt(pos)
	if !ok {
		return Location{}, false
	}
	return Location{Category: c}, true
}

func (e *Equipment) evaluate(item *ItemHandle, loc Location) error {
	slot := e.slots[loc.Category]
	if !e.MatchesCategory(item, slot) {
		return ErrCategoryMismatch
	}
	if occ := slot.item; occ != nil && occ != item {
		if e.grid == nil {
			return ErrNoRelocationSpace
		}
		var ignore *ItemHandle
		if e.grid.Holds(item) {
			ignore = item
		}
		if _, ok := e.grid.findFit(ignore, occ.Footprint()); !ok {
			return ErrNoRelocationSpace
		}
	}
	return nil
}

func (e *Equipment) commit(item *ItemHandle, loc Location) error {
	if err := e.evaluate(item, loc); err != nil {
		return err
	}
	return e.Equip(item)
}
