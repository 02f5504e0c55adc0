package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/gridstash/internal/network"
	"github.com/gravitas-games/gridstash/internal/store"
	"github.com/gravitas-games/gridstash/pkg/inventory"
)

func newTestStash(t *testing.T, st store.Store) (*Stash, *recordSender) {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore()
	}
	rec := &recordSender{}
	s, err := NewStash("42", testConfig(t).Inventory, inventory.SampleCatalog(), st, rec, quietLogger())
	require.NoError(t, err)
	return s, rec
}

func TestStashPickupForwardsEvents(t *testing.T) {
	s, rec := newTestStash(t, nil)

	ring, err := s.Pickup("gold-ring")
	require.NoError(t, err)
	potion, err := s.Pickup("healing-potion")
	require.NoError(t, err)
	assert.Equal(t, []string{network.MsgTypeEquipped, network.MsgTypeItemPlaced}, rec.types())

	eq := rec.msgs[0].Payload.(network.EquippedPayload)
	assert.Equal(t, "ring", eq.Category)
	assert.Equal(t, ring.Instance(), eq.Item.Instance)

	placed := rec.msgs[1].Payload.(network.ItemPlacedPayload)
	assert.Equal(t, potion.Instance(), placed.Item.Instance)
	assert.Equal(t, 0, placed.Item.X)
	assert.Equal(t, 0, placed.Item.Y)

	// 1x3 does not fit a 4x2 grid and main_hand has no slot here.
	_, err = s.Pickup("short-sword")
	assert.ErrorIs(t, err, inventory.ErrNoSpace)
	assert.Equal(t, "no_space", errorCode(err))

	_, err = s.Pickup("dragon-egg")
	assert.Equal(t, "unknown_item", errorCode(err))
}

func TestStashPointerDragWithinGrid(t *testing.T) {
	s, rec := newTestStash(t, nil)
	potion, err := s.Pickup("healing-potion")
	require.NoError(t, err)
	rec.reset()

	s.Pointer(network.PointerPayload{X: 5, Y: 5, Down: true})
	st := s.State()
	require.NotNil(t, st.Dragging)
	assert.Equal(t, potion.Instance(), st.Dragging.Item)
	assert.Empty(t, st.Grid)

	s.Pointer(network.PointerPayload{X: 25, Y: 5, Down: true})
	res := s.Pointer(network.PointerPayload{X: 25, Y: 5, Down: false})
	assert.Equal(t, inventory.DragCommitted, res.State)

	assert.Equal(t, []string{
		network.MsgTypeItemRemoved,
		network.MsgTypeDragValidity,
		network.MsgTypeItemPlaced,
		network.MsgTypeDragResult,
	}, rec.types())
	assert.Equal(t, "possible", rec.msgs[1].Payload.(network.DragValidityPayload).Validity)
	assert.Equal(t, "committed", rec.last().Payload.(network.DragResultPayload).State)

	assert.Equal(t, inventory.Point{X: 2, Y: 0}, potion.Anchor())
	st = s.State()
	assert.Nil(t, st.Dragging)
	require.Len(t, st.Grid, 1)
	assert.Equal(t, 2, st.Grid[0].X)
}

func TestStashPointerSwapIntoRingSlot(t *testing.T) {
	s, rec := newTestStash(t, nil)
	first, err := s.Pickup("gold-ring")
	require.NoError(t, err)
	_, err = s.Pickup("healing-potion")
	require.NoError(t, err)
	second, err := s.Pickup("gold-ring")
	require.NoError(t, err)
	require.Equal(t, inventory.Point{X: 1, Y: 0}, second.Anchor())
	rec.reset()

	s.Pointer(network.PointerPayload{X: 15, Y: 5, Down: true})
	s.Pointer(network.PointerPayload{X: 105, Y: 35, Down: true})
	res := s.Pointer(network.PointerPayload{X: 105, Y: 35, Down: false})
	require.Equal(t, inventory.DragCommitted, res.State)

	assert.Equal(t, []string{
		network.MsgTypeItemRemoved,
		network.MsgTypeDragValidity,
		network.MsgTypeUnequipped,
		network.MsgTypeItemPlaced,
		network.MsgTypeEquipped,
		network.MsgTypeDragResult,
	}, rec.types())

	st := s.State()
	assert.Equal(t, second.Instance(), st.Equipment["ring"].Instance)
	assert.Equal(t, inventory.Point{X: 1, Y: 0}, first.Anchor())
	assert.Len(t, st.Grid, 2)
}

func TestStashRejectsWrongSlot(t *testing.T) {
	s, rec := newTestStash(t, nil)
	potion, err := s.Pickup("healing-potion")
	require.NoError(t, err)
	rec.reset()

	s.Pointer(network.PointerPayload{X: 5, Y: 5, Down: true})
	s.Pointer(network.PointerPayload{X: 105, Y: 5, Down: true})
	res := s.Pointer(network.PointerPayload{X: 105, Y: 5, Down: false})
	assert.Equal(t, inventory.DragRolledBack, res.State)
	assert.Equal(t, "impossible", rec.msgs[1].Payload.(network.DragValidityPayload).Validity)
	assert.Equal(t, inventory.Point{X: 0, Y: 0}, potion.Anchor())
	assert.Equal(t, "rolled_back", rec.last().Payload.(network.DragResultPayload).State)

	err = s.Equip(potion.Instance())
	assert.Equal(t, "category_mismatch", errorCode(err))
}

func TestStashForwardsOnlyValidityChanges(t *testing.T) {
	s, rec := newTestStash(t, nil)
	_, err := s.Pickup("healing-potion")
	require.NoError(t, err)
	rec.reset()

	s.Pointer(network.PointerPayload{X: 5, Y: 5, Down: true})
	s.Pointer(network.PointerPayload{X: 5, Y: 5, Down: true})
	s.Pointer(network.PointerPayload{X: 6, Y: 6, Down: true})
	assert.Equal(t, []string{network.MsgTypeItemRemoved}, rec.types())

	// Each new candidate is reported once, however many frames it is held.
	for i := 0; i < 3; i++ {
		s.Pointer(network.PointerPayload{X: 25, Y: 5, Down: true})
	}
	for i := 0; i < 3; i++ {
		s.Pointer(network.PointerPayload{X: 500, Y: 500, Down: true})
	}
	assert.Equal(t, []string{
		network.MsgTypeItemRemoved,
		network.MsgTypeDragValidity,
		network.MsgTypeDragValidity,
	}, rec.types())
	assert.Equal(t, "possible", rec.msgs[1].Payload.(network.DragValidityPayload).Validity)
	assert.Equal(t, "impossible", rec.msgs[2].Payload.(network.DragValidityPayload).Validity)
	assert.Equal(t, "impossible", s.State().Dragging.Validity)
}

func TestStashRequestsByInstance(t *testing.T) {
	s, _ := newTestStash(t, nil)
	ring, err := s.Pickup("gold-ring")
	require.NoError(t, err)

	require.NoError(t, s.Unequip("ring"))
	assert.Empty(t, s.State().Equipment)
	assert.Equal(t, "empty_slot", errorCode(s.Unequip("ring")))
	assert.Equal(t, "invalid_request", errorCode(s.Unequip("tail")))

	require.NoError(t, s.Equip(ring.Instance()))
	assert.Equal(t, ring.Instance(), s.State().Equipment["ring"].Instance)

	require.NoError(t, s.Discard(ring.Instance()))
	assert.Empty(t, s.State().Equipment)
	assert.Equal(t, "not_held", errorCode(s.Discard(ring.Instance())))
	assert.Equal(t, "not_held", errorCode(s.Equip("missing")))
}

func TestStashRejectsRequestsMidDrag(t *testing.T) {
	s, _ := newTestStash(t, nil)
	_, err := s.Pickup("healing-potion")
	require.NoError(t, err)

	s.Pointer(network.PointerPayload{X: 5, Y: 5, Down: true})
	_, err = s.Pickup("gold-ring")
	assert.Equal(t, "drag_active", errorCode(err))
}

func TestStashSaveCancelsDragAndLoadIsQuiet(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s, _ := newTestStash(t, st)
	_, err := s.Pickup("gold-ring")
	require.NoError(t, err)
	_, err = s.Pickup("healing-potion")
	require.NoError(t, err)

	s.Pointer(network.PointerPayload{X: 5, Y: 5, Down: true})
	s.Pointer(network.PointerPayload{X: 35, Y: 15, Down: true})
	require.NoError(t, s.Save(ctx))
	assert.False(t, s.Inventory().Dragging())

	data, ok, err := st.Load(ctx, "42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []inventory.SlotRecord{{Item: "healing-potion", Index: 0}}, data.Grid)
	assert.Equal(t, inventory.ItemID("gold-ring"), data.Equipment[inventory.CategoryRing])

	fresh, rec := newTestStash(t, st)
	rep, err := fresh.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Loaded)
	assert.Empty(t, rec.msgs)
	assert.Len(t, fresh.State().Grid, 1)

	_, err = fresh.Pickup("healing-potion")
	require.NoError(t, err)
	assert.Equal(t, []string{network.MsgTypeItemPlaced}, rec.types())
}

func TestStashLoadWithoutSave(t *testing.T) {
	s, _ := newTestStash(t, nil)
	rep, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Loaded)
	st := s.State()
	assert.Equal(t, 4, st.Width)
	assert.Equal(t, 2, st.Height)
	assert.Empty(t, st.Grid)
}

func TestCatalogAndLayoutPayloads(t *testing.T) {
	entries := catalogEntries(inventory.SampleCatalog())
	require.NotEmpty(t, entries)
	assert.Equal(t, "iron-helm", entries[0].ID)
	assert.Equal(t, "head", entries[0].Category)

	lp := layoutPayload(testConfig(t).Inventory)
	assert.Equal(t, 10.0, lp.CellSize)
	assert.Equal(t, network.Rect{X: 100, Y: 30, W: 10, H: 10}, lp.Slots["ring"])
}
