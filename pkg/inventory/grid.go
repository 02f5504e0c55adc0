package inventory

import (
	"github.com/sirupsen/logrus"
)

// Placement is one distinct item in a grid together with the linear index of
// its anchor cell (row*width + col).
type Placement struct {
	Item  *ItemHandle
	Index int
}

// Grid is a width x height array of cells holding rectangular items. Every
// cell covered by an item references the same handle; the top-left cell is
// the item's anchor.
type Grid struct {
	id       string
	width    int
	height   int
	slots    []GridSlot
	metric   Metric
	listener Listener
	log      logrus.FieldLogger
}

// NewGrid creates an empty grid. Dimensions below one are raised to one.
func NewGrid(id string, width, height int, opts ...Option) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := buildSettings(opts...)
	g := &Grid{
		id:       id,
		width:    width,
		height:   height,
		slots:    make([]GridSlot, width*height),
		metric:   s.metric,
		listener: s.listener,
		log:      s.log.WithField("grid", id),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sl := &g.slots[row*width+col]
			sl.Col, sl.Row = col, row
		}
	}
	return g
}

// ContainerID implements Container.
func (g *Grid) ContainerID() string { return g.id }

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Metric returns the pixel geometry used for pointer projection.
func (g *Grid) Metric() Metric { return g.metric }

// Index linearizes a cell coordinate.
func (g *Grid) Index(p Point) int { return p.Y*g.width + p.X }

// PointAt decodes a linear index. ok is false when the index is outside the
// grid.
func (g *Grid) PointAt(index int) (Point, bool) {
	if index < 0 || index >= len(g.slots) {
		return Point{}, false
	}
	return Point{X: index % g.width, Y: index / g.width}, true
}

func (g *Grid) inBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Slot returns the cell at (col,row) or nil when out of bounds.
func (g *Grid) Slot(col, row int) *GridSlot {
	p := Point{X: col, Y: row}
	if !g.inBounds(p) {
		return nil
	}
	return &g.slots[g.Index(p)]
}

// At returns the item covering cell p, or nil.
func (g *Grid) At(p Point) *ItemHandle {
	if !g.inBounds(p) {
		return nil
	}
	return g.slots[g.Index(p)].item
}

// Holds implements Container.
func (g *Grid) Holds(item *ItemHandle) bool {
	return item != nil && item.owner == g
}

// check validates a footprint at anchor. Cells referencing self do not block.
func (g *Grid) check(self *ItemHandle, fp Footprint, anchor Point) error {
	fp = fp.normalized()
	if anchor.X < 0 || anchor.Y < 0 || anchor.X+fp.W > g.width || anchor.Y+fp.H > g.height {
		return ErrOutOfBounds
	}
	for y := anchor.Y; y < anchor.Y+fp.H; y++ {
		for x := anchor.X; x < anchor.X+fp.W; x++ {
			if occ := g.slots[y*g.width+x].item; occ != nil && occ != self {
				return ErrOverlap
			}
		}
	}
	return nil
}

// CanPlace reports whether a footprint fits at anchor: inside the grid and
// not covering any occupied cell.
func (g *Grid) CanPlace(fp Footprint, anchor Point) bool {
	return g.check(nil, fp, anchor) == nil
}

// CanPlaceItem is CanPlace for a specific item; cells the item itself
// occupies are not treated as blocking.
func (g *Grid) CanPlaceItem(item *ItemHandle, anchor Point) bool {
	return g.Check(item, anchor) == nil
}

// Check returns ErrOutOfBounds or ErrOverlap when item cannot be placed at
// anchor.
func (g *Grid) Check(item *ItemHandle, anchor Point) error {
	return g.check(item, item.Footprint(), anchor)
}

// FindFirstFit scans anchors in row-major order and returns the first one
// where the footprint fits.
func (g *Grid) FindFirstFit(fp Footprint) (Point, bool) {
	return g.findFit(nil, fp)
}

func (g *Grid) findFit(ignore *ItemHandle, fp Footprint) (Point, bool) {
	fp = fp.normalized()
	for y := 0; y+fp.H <= g.height; y++ {
		for x := 0; x+fp.W <= g.width; x++ {
			p := Point{X: x, Y: y}
			if g.check(ignore, fp, p) == nil {
				return p, true
			}
		}
	}
	return Point{}, false
}

// Place marks every cell of the item's footprint at anchor as referencing
// item. It performs no validation: callers must have verified the placement
// with CanPlace or Check, and Place panics on an out of bounds footprint.
func (g *Grid) Place(item *ItemHandle, anchor Point) {
	fp := item.Footprint()
	for y := anchor.Y; y < anchor.Y+fp.H; y++ {
		for x := anchor.X; x < anchor.X+fp.W; x++ {
			g.slots[y*g.width+x].item = item
		}
	}
	item.anchor = anchor
	item.owner = g
	g.log.WithFields(logrus.Fields{"item": item.ID(), "anchor": anchor}).Debug("item placed")
	g.listener.ItemPlaced(item, anchor)
}

// Remove clears every cell covered by item. The item keeps its descriptor
// and last anchor but is no longer held by the grid.
func (g *Grid) Remove(item *ItemHandle) {
	if !g.Holds(item) {
		return
	}
	fp := item.Footprint()
	for y := item.anchor.Y; y < item.anchor.Y+fp.H; y++ {
		for x := item.anchor.X; x < item.anchor.X+fp.W; x++ {
			if sl := &g.slots[y*g.width+x]; sl.item == item {
				sl.item = nil
			}
		}
	}
	item.owner = nil
	g.log.WithField("item", item.ID()).Debug("item removed")
	g.listener.ItemRemoved(item)
}

// Insert places an unowned item at the first free position.
func (g *Grid) Insert(item *ItemHandle) error {
	if item.owner != nil {
		return ErrAlreadyHeld
	}
	p, ok := g.FindFirstFit(item.Footprint())
	if !ok {
		return ErrNoSpace
	}
	g.Place(item, p)
	return nil
}

// AllItems returns one entry per distinct item, ordered by anchor index.
func (g *Grid) AllItems() []Placement {
	var out []Placement
	for i := range g.slots {
		sl := &g.slots[i]
		if sl.item != nil && sl.item.anchor == sl.Point() {
			out = append(out, Placement{Item: sl.item, Index: i})
		}
	}
	return out
}

// Items returns the distinct items held, ordered by anchor index.
func (g *Grid) Items() []*ItemHandle {
	placements := g.AllItems()
	out := make([]*ItemHandle, 0, len(placements))
	for _, pl := range placements {
		out = append(out, pl.Item)
	}
	return out
}

// Free returns the number of unoccupied cells.
func (g *Grid) Free() int {
	n := 0
	for i := range g.slots {
		if g.slots[i].item == nil {
			n++
		}
	}
	return n
}

// LoadItemToSlot creates an item from desc and places it with its anchor at
// the linear slot index. It is used when restoring save data; a false result
// means the item did not fit and nothing was changed.
func (g *Grid) LoadItemToSlot(desc ItemDescriptor, index int) (*ItemHandle, bool) {
	p, ok := g.PointAt(index)
	if !ok {
		g.log.WithFields(logrus.Fields{"item": desc.ID, "index": index}).Warn("slot index outside grid")
		return nil, false
	}
	item := NewItem(desc)
	if err := g.Check(item, p); err != nil {
		g.log.WithFields(logrus.Fields{"item": desc.ID, "index": index}).WithError(err).Warn("item does not fit saved slot")
		return nil, false
	}
	g.Place(item, p)
	return item, true
}

// Clear drops every item reference without notifying the listener.
func (g *Grid) Clear() {
	for i := range g.slots {
		if it := g.slots[i].item; it != nil && it.owner == g {
			it.owner = nil
		}
		g.slots[i].item = nil
	}
}

func (g *Grid) locate(item *ItemHandle) (Location, bool) {
	if !g.Holds(item) {
		return Location{}, false
	}
	return Location{Anchor: item.anchor}, true
}

func (g *Grid) detach(item *ItemHandle) { g.Remove(item) }

func (g *Grid) attach(item *ItemHandle, loc Location) { g.Place(item, loc.Anchor) }

func (g *Grid) project(_ *ItemHandle, pos, grab Position) (Location, bool) {
	if !g.metric.Contains(pos, g.width, g.height) {
		return Location{}, false
	}
	return Location{Anchor: g.metric.Anchor(pos, grab)}, true
}

func (g *Grid) evaluate(item *ItemHandle, loc Location) error {
	return g.Check(item, loc.Anchor)
}

func (g *Grid) commit(item *ItemHandle, loc Location) error {
	if err := g.Check(item, loc.Anchor); err != nil {
		return err
	}
	g.Place(item, loc.Anchor)
	return nil
}
