package inventory

// Slot holds at most one item reference.
type Slot struct {
	item *ItemHandle
}

// Occupied reports whether an item references this slot.
func (s *Slot) Occupied() bool { return s.item != nil }

// Item returns the referenced item or nil.
func (s *Slot) Item() *ItemHandle { return s.item }

// GridSlot is one cell of a Grid.
type GridSlot struct {
	Slot
	Col int
	Row int
}

// Point returns the cell coordinate.
func (s *GridSlot) Point() Point { return Point{X: s.Col, Y: s.Row} }

// EquipmentSlot is the single socket for one equipment category.
type EquipmentSlot struct {
	Slot
	Category Category
}
