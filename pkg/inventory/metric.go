package inventory

import "math"

// Position is a pointer position in presentation units (pixels).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Metric maps presentation positions onto grid cells. The zero value is a
// grid whose cells are one unit wide starting at the origin.
type Metric struct {
	OriginX  float64 `json:"originX" yaml:"origin_x"`
	OriginY  float64 `json:"originY" yaml:"origin_y"`
	CellSize float64 `json:"cellSize" yaml:"cell_size"`
}

func (m Metric) size() float64 {
	if m.CellSize <= 0 {
		return 1
	}
	return m.CellSize
}

// local converts a position into fractional cell units.
func (m Metric) local(pos Position) (float64, float64) {
	cs := m.size()
	return (pos.X - m.OriginX) / cs, (pos.Y - m.OriginY) / cs
}

// Cell returns the cell under pos. The result may lie outside the grid.
func (m Metric) Cell(pos Position) Point {
	x, y := m.local(pos)
	return Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// Center returns the position at the centre of cell p.
func (m Metric) Center(p Point) Position {
	cs := m.size()
	return Position{
		X: m.OriginX + (float64(p.X)+0.5)*cs,
		Y: m.OriginY + (float64(p.Y)+0.5)*cs,
	}
}

// Contains reports whether pos lies over a width x height grid.
func (m Metric) Contains(pos Position, width, height int) bool {
	x, y := m.local(pos)
	return x >= 0 && y >= 0 && x < float64(width) && y < float64(height)
}

// Anchor returns the nearest anchor cell for an item held at grab (cell
// units from its top-left corner) while the pointer is at pos.
func (m Metric) Anchor(pos, grab Position) Point {
	x, y := m.local(pos)
	return Point{
		X: int(math.Floor(x - grab.X + 0.5)),
		Y: int(math.Floor(y - grab.Y + 0.5)),
	}
}

// Rect is an axis-aligned hit area in presentation units.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Contains reports whether pos lies inside r.
func (r Rect) Contains(pos Position) bool {
	return pos.X >= r.X && pos.Y >= r.Y && pos.X < r.X+r.W && pos.Y < r.Y+r.H
}

// SlotLayout places equipment slots in presentation space.
type SlotLayout map[Category]Rect
