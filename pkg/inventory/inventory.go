package inventory

import (
	"github.com/sirupsen/logrus"
)

// Pointer is the host's input state for one frame.
type Pointer struct {
	Pos  Position `json:"pos"`
	Down bool     `json:"down"`
}

// TickResult reports what a Tick did.
type TickResult struct {
	// Item is the dragged item, if any drag was active during the tick.
	Item *ItemHandle
	// Validity is the OnMove verdict; Same when nothing was recomputed.
	Validity Validity
	// State is the drag state after the tick; DragIdle when no drag was
	// involved.
	State DragState
}

// Inventory bundles a grid, an equipment set and at most one active drag,
// and drives them from per-frame pointer input.
type Inventory struct {
	grid      *Grid
	equipment *Equipment
	drag      *Drag
	down      bool
	opts      []Option
	log       logrus.FieldLogger
}

// New creates an inventory with a width x height grid and one equipment slot
// per category. Options apply to the grid, the equipment set and every drag.
func New(id string, width, height int, categories []Category, opts ...Option) *Inventory {
	s := buildSettings(opts...)
	grid := NewGrid(id+"/grid", width, height, opts...)
	return &Inventory{
		grid:      grid,
		equipment: NewEquipment(id+"/equipment", grid, categories, opts...),
		opts:      opts,
		log:       s.log.WithField("inventory", id),
	}
}

func (inv *Inventory) Grid() *Grid { return inv.grid }

func (inv *Inventory) Equipment() *Equipment { return inv.equipment }

// Drag returns the drag in progress or nil.
func (inv *Inventory) Drag() *Drag { return inv.drag }

// Dragging reports whether a drag is in progress.
func (inv *Inventory) Dragging() bool { return inv.drag != nil }

// Tick advances the drag protocol by one frame. A press over an item starts
// a drag, a held pointer moves the candidate, and a release resolves it.
func (inv *Inventory) Tick(p Pointer) TickResult {
	pressed := p.Down && !inv.down
	inv.down = p.Down

	if inv.drag == nil {
		if !pressed {
			return TickResult{Validity: Same, State: DragIdle}
		}
		origin, item, grab := inv.itemAt(p.Pos)
		if item == nil {
			return TickResult{Validity: Impossible, State: DragIdle}
		}
		opts := append(append([]Option(nil), inv.opts...), WithGrabOffset(grab))
		d, err := BeginDrag(item, origin, opts...)
		if err != nil {
			inv.log.WithError(err).Warn("begin drag failed")
			return TickResult{Validity: Impossible, State: DragIdle}
		}
		inv.drag = d
		return TickResult{Item: item, Validity: d.OnMove(origin, p.Pos), State: d.State()}
	}

	d := inv.drag
	v := d.OnMove(inv.containerAt(p.Pos), p.Pos)
	if p.Down {
		return TickResult{Item: d.Item(), Validity: v, State: d.State()}
	}
	state, _ := d.EndDrag()
	inv.drag = nil
	return TickResult{Item: d.Item(), Validity: v, State: state}
}

// Close cancels a drag in progress, returning the item to its origin. Hosts
// call it when the inventory UI closes or input is lost mid-drag.
func (inv *Inventory) Close() {
	inv.down = false
	if inv.drag == nil {
		return
	}
	inv.drag.Cancel()
	inv.drag = nil
}

// itemAt hit-tests pos and returns the container and item under it with the
// grab offset in cell units.
func (inv *Inventory) itemAt(pos Position) (Container, *ItemHandle, Position) {
	m := inv.grid.metric
	if m.Contains(pos, inv.grid.width, inv.grid.height) {
		item := inv.grid.At(m.Cell(pos))
		if item == nil {
			return nil, nil, Position{}
		}
		x, y := m.local(pos)
		return inv.grid, item, Position{X: x - float64(item.anchor.X), Y: y - float64(item.anchor.Y)}
	}
	if c, ok := inv.equipment.SlotAt(pos); ok {
		item := inv.equipment.Equipped(c)
		if item == nil {
			return nil, nil, Position{}
		}
		fp := item.Footprint()
		return inv.equipment, item, Position{X: float64(fp.W) / 2, Y: float64(fp.H) / 2}
	}
	return nil, nil, Position{}
}

func (inv *Inventory) containerAt(pos Position) Container {
	if inv.grid.metric.Contains(pos, inv.grid.width, inv.grid.height) {
		return inv.grid
	}
	if _, ok := inv.equipment.SlotAt(pos); ok {
		return inv.equipment
	}
	return nil
}

// Pickup hands a new item from the world to the inventory: equip it when its
// slot accepts it, otherwise insert it into the grid.
func (inv *Inventory) Pickup(desc ItemDescriptor) (*ItemHandle, error) {
	if inv.drag != nil {
		return nil, ErrDragActive
	}
	item := NewItem(desc)
	if desc.Equippable() && inv.equipment.Slot(desc.Category) != nil && inv.equipment.Equipped(desc.Category) == nil {
		if inv.equipment.QuickEquip(item) {
			return item, nil
		}
	}
	if err := inv.grid.Insert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Equip equips an item held by this inventory.
func (inv *Inventory) Equip(item *ItemHandle) error {
	if inv.drag != nil {
		return ErrDragActive
	}
	return inv.equipment.Equip(item)
}

// Unequip moves an equipped item into the grid.
func (inv *Inventory) Unequip(c Category) error {
	if inv.drag != nil {
		return ErrDragActive
	}
	return inv.equipment.UnequipToGrid(c)
}

// Discard removes an item from whichever container holds it and hands it
// back to the caller.
func (inv *Inventory) Discard(item *ItemHandle) error {
	if inv.drag != nil {
		return ErrDragActive
	}
	if item == nil || item.owner == nil || (item.owner != Container(inv.grid) && item.owner != Container(inv.equipment)) {
		return ErrNotHeld
	}
	item.owner.detach(item)
	return nil
}

// Find returns the held item with the given instance id.
func (inv *Inventory) Find(instance string) *ItemHandle {
	for _, it := range inv.grid.Items() {
		if it.instance == instance {
			return it
		}
	}
	for _, it := range inv.equipment.Items() {
		if it.instance == instance {
			return it
		}
	}
	return nil
}

// Snapshot returns the save data for the current contents.
func (inv *Inventory) Snapshot() SaveData {
	return snapshot(inv.grid, inv.equipment)
}

// Restore replaces the contents with data. Items that are unknown to catalog
// or no longer fit are logged and reported, not treated as errors.
func (inv *Inventory) Restore(data SaveData, catalog Catalog) (RestoreReport, error) {
	if inv.drag != nil {
		return RestoreReport{}, ErrDragActive
	}
	rep := restore(inv.grid, inv.equipment, data, catalog)
	if len(rep.Skipped) > 0 {
		inv.log.WithFields(logrus.Fields{"loaded": rep.Loaded, "skipped": len(rep.Skipped)}).Warn("restore skipped items")
	}
	return rep, nil
}
