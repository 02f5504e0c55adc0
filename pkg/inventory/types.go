// Package inventory implements placement of variably sized items inside a
// fixed size grid, a set of category constrained equipment slots, and the
// drag transaction that moves items between them.
//
// The package is single-threaded: a Grid, an Equipment set and the
// Drag moving between them are owned by one host loop that calls into them
// once per frame. Only the Registry is safe for concurrent use.
package inventory

import (
	"fmt"
	"strings"
)

// ItemID identifies an item definition in the catalog. The inventory never
// interprets this value.
type ItemID string

// RegistryID is a numeric handle suitable for compact storage.
// IDs start at 1.
type RegistryID int64

// Point is a grid coordinate with origin at the top-left cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Footprint is the width x height rectangle of cells an item occupies.
type Footprint struct {
	W int `json:"w" yaml:"width"`
	H int `json:"h" yaml:"height"`
}

// normalized clamps degenerate dimensions to a single cell.
func (f Footprint) normalized() Footprint {
	if f.W <= 0 {
		f.W = 1
	}
	if f.H <= 0 {
		f.H = 1
	}
	return f
}

// Area returns the number of cells covered.
func (f Footprint) Area() int {
	n := f.normalized()
	return n.W * n.H
}

func (f Footprint) String() string { return fmt.Sprintf("%dx%d", f.W, f.H) }

// Category is the equipment category of an item. Each category maps to
// exactly one equipment slot.
type Category int

const (
	// CategoryNone marks items that cannot be equipped.
	CategoryNone Category = iota
	CategoryHead
	CategoryChest
	CategoryHands
	CategoryFeet
	CategoryBelt
	CategoryAmulet
	CategoryRing
	CategoryMainHand
	CategoryOffHand
)

var categoryNames = [...]string{
	CategoryNone:     "none",
	CategoryHead:     "head",
	CategoryChest:    "chest",
	CategoryHands:    "hands",
	CategoryFeet:     "feet",
	CategoryBelt:     "belt",
	CategoryAmulet:   "amulet",
	CategoryRing:     "ring",
	CategoryMainHand: "main_hand",
	CategoryOffHand:  "off_hand",
}

// String returns the canonical lower-case name used in configs and saves.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory resolves a category name. Matching ignores case and accepts
// '-' in place of '_'.
func ParseCategory(s string) (Category, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "" {
		return CategoryNone, nil
	}
	for i, name := range categoryNames {
		if name == key {
			return Category(i), nil
		}
	}
	return CategoryNone, fmt.Errorf("inventory: unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("inventory: invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// EquipmentCategories lists every equippable category in slot order.
func EquipmentCategories() []Category {
	out := make([]Category, 0, len(categoryNames)-1)
	for i := 1; i < len(categoryNames); i++ {
		out = append(out, Category(i))
	}
	return out
}

// ItemDescriptor is the catalog's read-only description of an item. It is
// treated as an immutable value: handles keep their own copy.
type ItemDescriptor struct {
	ID        ItemID    `json:"id" yaml:"id"`
	Name      string    `json:"name,omitempty" yaml:"name"`
	Footprint Footprint `json:"footprint" yaml:"footprint"`
	Category  Category  `json:"category" yaml:"category"`
}

// Equippable reports whether the item has an equipment category.
func (d ItemDescriptor) Equippable() bool { return d.Category != CategoryNone }
