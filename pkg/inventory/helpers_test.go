package inventory

import "testing"

func item(id string, w, h int, c Category) *ItemHandle {
	return NewItem(ItemDescriptor{ID: ItemID(id), Footprint: Footprint{W: w, H: h}, Category: c})
}

// checkCells asserts that every cell references at most one item and that
// the cells referencing an item are exactly its footprint at its anchor.
func checkCells(t *testing.T, g *Grid) {
	t.Helper()
	counts := make(map[*ItemHandle]int)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			it := g.At(Point{X: col, Y: row})
			if it == nil {
				continue
			}
			counts[it]++
			a, fp := it.Anchor(), it.Footprint()
			if col < a.X || row < a.Y || col >= a.X+fp.W || row >= a.Y+fp.H {
				t.Fatalf("cell (%d,%d) references %s outside its footprint", col, row, it)
			}
			if it.Owner() != Container(g) {
				t.Fatalf("cell (%d,%d) references %s not owned by grid", col, row, it)
			}
		}
	}
	for it, n := range counts {
		if n != it.Footprint().Area() {
			t.Fatalf("%s covers %d cells, want %d", it, n, it.Footprint().Area())
		}
	}
}

// occupancy captures the item referenced by each cell.
func occupancy(g *Grid) []*ItemHandle {
	out := make([]*ItemHandle, 0, g.Width()*g.Height())
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			out = append(out, g.At(Point{X: col, Y: row}))
		}
	}
	return out
}

type recorder struct {
	events []string
	valid  []Validity
}

func (r *recorder) ItemPlaced(it *ItemHandle, a Point) {
	r.events = append(r.events, "placed "+string(it.ID())+" "+a.String())
}

func (r *recorder) ItemRemoved(it *ItemHandle) {
	r.events = append(r.events, "removed "+string(it.ID()))
}

func (r *recorder) Equipped(c Category, it *ItemHandle) {
	r.events = append(r.events, "equipped "+c.String()+" "+string(it.ID()))
}

func (r *recorder) Unequipped(c Category, it *ItemHandle) {
	r.events = append(r.events, "unequipped "+c.String()+" "+string(it.ID()))
}

func (r *recorder) DragValidityChanged(v Validity) {
	r.valid = append(r.valid, v)
}
