package inventory

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"ring":      CategoryRing,
		"Main-Hand": CategoryMainHand,
		" off_hand": CategoryOffHand,
		"":          CategoryNone,
		"none":      CategoryNone,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseCategory("tail"); err == nil {
		t.Fatalf("unknown category accepted")
	}
}

func TestCategoryJSONMapKeys(t *testing.T) {
	in := map[Category]ItemID{CategoryRing: "gold-ring", CategoryHead: "iron-helm"}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if want := map[string]string{"ring": "gold-ring", "head": "iron-helm"}; !reflect.DeepEqual(raw, want) {
		t.Fatalf("encoded %s", b)
	}

	var out map[Category]ItemID
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("got %v, want %v", out, in)
	}
}

func TestFootprintNormalization(t *testing.T) {
	it := NewItem(ItemDescriptor{ID: "flat", Footprint: Footprint{W: 0, H: -2}})
	if it.Footprint() != (Footprint{W: 1, H: 1}) {
		t.Fatalf("footprint %v, want 1x1", it.Footprint())
	}
	if a := (Footprint{W: 3, H: 2}).Area(); a != 6 {
		t.Fatalf("area %d, want 6", a)
	}
}

func TestNewItemInstancesAreUnique(t *testing.T) {
	d := ItemDescriptor{ID: "potion"}
	a, b := NewItem(d), NewItem(d)
	if a.Instance() == b.Instance() {
		t.Fatalf("duplicate instance %s", a.Instance())
	}
	if !reflect.DeepEqual(a.Descriptor(), b.Descriptor()) {
		t.Fatalf("descriptors differ")
	}
}

func TestMetric(t *testing.T) {
	m := Metric{OriginX: 100, OriginY: 50, CellSize: 32}
	if c := m.Cell(Position{X: 100 + 3*32 + 1, Y: 55}); c != (Point{3, 0}) {
		t.Fatalf("Cell = %v, want (3,0)", c)
	}
	if c := m.Center(Point{2, 1}); c != (Position{X: 180, Y: 98}) {
		t.Fatalf("Center = %v", c)
	}
	if !m.Contains(Position{X: 100, Y: 50}, 10, 4) {
		t.Fatalf("origin not contained")
	}
	if m.Contains(Position{X: 99, Y: 50}, 10, 4) || m.Contains(Position{X: 100 + 320, Y: 60}, 10, 4) {
		t.Fatalf("position outside grid contained")
	}

	grab := Position{X: 0.5, Y: 0.5}
	if a := m.Anchor(m.Center(Point{4, 2}), grab); a != (Point{4, 2}) {
		t.Fatalf("Anchor at centre = %v", a)
	}
	// a quarter cell off centre still snaps to the same cell
	if a := m.Anchor(Position{X: 100 + 4.25*32, Y: 50 + 2.75*32}, grab); a != (Point{4, 2}) {
		t.Fatalf("Anchor off centre = %v", a)
	}
	if a := m.Anchor(Position{X: 100, Y: 50 + 16}, Position{X: 1.5, Y: 0.5}); a != (Point{-1, 0}) {
		t.Fatalf("Anchor with wide grab = %v", a)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	if !r.Contains(Position{X: 10, Y: 14.9}) {
		t.Fatalf("inner edge not contained")
	}
	if r.Contains(Position{X: 15, Y: 12}) {
		t.Fatalf("outer edge contained")
	}
}
