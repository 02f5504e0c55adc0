package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/gridstash/internal/config"
	"github.com/gravitas-games/gridstash/internal/network"
	"github.com/gravitas-games/gridstash/internal/store"
	"github.com/gravitas-games/gridstash/pkg/inventory"
)

var (
	errUnknownItem     = errors.New("unknown item")
	errUnknownInstance = errors.New("item not held")
)

// Sender delivers server messages to one client.
type Sender interface {
	SendMessage(msg *network.ServerMessage)
}

// Stash is one player's live inventory. It is driven from a single goroutine
// (the connection's read pump) and forwards inventory events to its Sender.
type Stash struct {
	owner   string
	inv     *inventory.Inventory
	catalog *inventory.Registry
	store   store.Store
	out     Sender
	log     logrus.FieldLogger

	// muted suppresses event forwarding while a save is being restored.
	muted bool
}

// NewStash creates an empty inventory for owner shaped by cfg.
func NewStash(owner string, cfg config.InventoryConfig, catalog *inventory.Registry, st store.Store, out Sender, log logrus.FieldLogger) (*Stash, error) {
	cats, err := cfg.Categories()
	if err != nil {
		return nil, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	s := &Stash{
		owner:   owner,
		catalog: catalog,
		store:   st,
		out:     out,
		log:     log.WithField("stash", owner),
	}
	s.inv = inventory.New(owner, cfg.GridWidth, cfg.GridHeight, cats,
		inventory.WithListener(s),
		inventory.WithLogger(s.log),
		inventory.WithMetric(cfg.Metric),
		inventory.WithSlotLayout(layout),
	)
	return s, nil
}

// Inventory exposes the underlying inventory.
func (s *Stash) Inventory() *inventory.Inventory { return s.inv }

// Owner returns the save key.
func (s *Stash) Owner() string { return s.owner }

// Load restores the saved inventory, if any. Events raised while restoring
// are not forwarded; clients receive the result as a full state.
func (s *Stash) Load(ctx context.Context) (inventory.RestoreReport, error) {
	data, ok, err := s.store.Load(ctx, s.owner)
	if err != nil {
		return inventory.RestoreReport{}, err
	}
	if !ok {
		s.log.Debug("no saved inventory")
		return inventory.RestoreReport{}, nil
	}
	s.muted = true
	defer func() { s.muted = false }()
	rep, err := s.inv.Restore(data, s.catalog)
	if err != nil {
		return rep, err
	}
	s.log.WithFields(logrus.Fields{"loaded": rep.Loaded, "skipped": len(rep.Skipped)}).Info("inventory restored")
	return rep, nil
}

// Save cancels any drag in flight and writes the inventory to the store.
func (s *Stash) Save(ctx context.Context) error {
	s.inv.Close()
	if err := s.store.Save(ctx, s.owner, s.inv.Snapshot()); err != nil {
		return err
	}
	s.log.Debug("inventory saved")
	return nil
}

// Pointer feeds one frame of pointer input.
func (s *Stash) Pointer(p network.PointerPayload) inventory.TickResult {
	res := s.inv.Tick(inventory.Pointer{Pos: inventory.Position{X: p.X, Y: p.Y}, Down: p.Down})
	if res.Item != nil && (res.State == inventory.DragCommitted || res.State == inventory.DragRolledBack) {
		s.send(network.MsgTypeDragResult, network.DragResultPayload{
			Item:  res.Item.Instance(),
			State: res.State.String(),
		})
	}
	return res
}

// Equip equips a held item by instance id.
func (s *Stash) Equip(instance string) error {
	item := s.inv.Find(instance)
	if item == nil {
		return errUnknownInstance
	}
	return s.inv.Equip(item)
}

// Unequip moves the item in the named slot into the grid.
func (s *Stash) Unequip(category string) error {
	c, err := inventory.ParseCategory(category)
	if err != nil {
		return err
	}
	return s.inv.Unequip(c)
}

// Pickup creates a new item from the catalog and stores it.
func (s *Stash) Pickup(id string) (*inventory.ItemHandle, error) {
	desc, ok := s.catalog.Lookup(inventory.ItemID(id))
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownItem, id)
	}
	return s.inv.Pickup(desc)
}

// Discard drops a held item.
func (s *Stash) Discard(instance string) error {
	item := s.inv.Find(instance)
	if item == nil {
		return errUnknownInstance
	}
	return s.inv.Discard(item)
}

// State returns the full client view of the inventory.
func (s *Stash) State() network.StatePayload {
	g := s.inv.Grid()
	st := network.StatePayload{
		Width:     g.Width(),
		Height:    g.Height(),
		Grid:      make([]network.ItemState, 0),
		Equipment: make(map[string]network.ItemState),
	}
	for _, pl := range g.AllItems() {
		st.Grid = append(st.Grid, itemState(pl.Item))
	}
	eq := s.inv.Equipment()
	for _, c := range eq.Categories() {
		if it := eq.Equipped(c); it != nil {
			st.Equipment[c.String()] = itemState(it)
		}
	}
	if d := s.inv.Drag(); d != nil {
		st.Dragging = &network.DragPayload{Item: d.Item().Instance(), Validity: d.Validity().String()}
	}
	return st
}

// ItemPlaced implements inventory.Listener.
func (s *Stash) ItemPlaced(item *inventory.ItemHandle, _ inventory.Point) {
	s.send(network.MsgTypeItemPlaced, network.ItemPlacedPayload{Item: itemState(item)})
}

// ItemRemoved implements inventory.Listener.
func (s *Stash) ItemRemoved(item *inventory.ItemHandle) {
	s.send(network.MsgTypeItemRemoved, network.ItemRemovedPayload{Instance: item.Instance()})
}

// Equipped implements inventory.Listener.
func (s *Stash) Equipped(c inventory.Category, item *inventory.ItemHandle) {
	s.send(network.MsgTypeEquipped, network.EquippedPayload{Category: c.String(), Item: itemState(item)})
}

// Unequipped implements inventory.Listener.
func (s *Stash) Unequipped(c inventory.Category, item *inventory.ItemHandle) {
	s.send(network.MsgTypeUnequipped, network.UnequippedPayload{Category: c.String(), Instance: item.Instance()})
}

// DragValidityChanged implements inventory.Listener. Same carries no new
// information for the client and is not forwarded.
func (s *Stash) DragValidityChanged(v inventory.Validity) {
	if v == inventory.Same {
		return
	}
	s.send(network.MsgTypeDragValidity, network.DragValidityPayload{Validity: v.String()})
}

func (s *Stash) send(msgType string, payload interface{}) {
	if s.muted || s.out == nil {
		return
	}
	s.out.SendMessage(&network.ServerMessage{Type: msgType, Payload: payload})
}

func itemState(it *inventory.ItemHandle) network.ItemState {
	fp := it.Footprint()
	a := it.Anchor()
	return network.ItemState{
		Instance: it.Instance(),
		ItemID:   string(it.ID()),
		X:        a.X,
		Y:        a.Y,
		Width:    fp.W,
		Height:   fp.H,
		Category: it.Category().String(),
	}
}

// errorCode maps inventory failures onto client error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, inventory.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, inventory.ErrOverlap):
		return "overlap"
	case errors.Is(err, inventory.ErrCategoryMismatch):
		return "category_mismatch"
	case errors.Is(err, inventory.ErrNoRelocationSpace):
		return "no_relocation_space"
	case errors.Is(err, inventory.ErrNoSpace):
		return "no_space"
	case errors.Is(err, inventory.ErrEmptySlot):
		return "empty_slot"
	case errors.Is(err, inventory.ErrDragActive):
		return "drag_active"
	case errors.Is(err, inventory.ErrNotHeld), errors.Is(err, errUnknownInstance):
		return "not_held"
	case errors.Is(err, errUnknownItem):
		return "unknown_item"
	default:
		return "invalid_request"
	}
}

func catalogEntries(reg *inventory.Registry) []network.CatalogEntry {
	descs := reg.Export()
	out := make([]network.CatalogEntry, 0, len(descs))
	for _, d := range descs {
		out = append(out, network.CatalogEntry{
			ID:       string(d.ID),
			Name:     d.Name,
			Width:    d.Footprint.W,
			Height:   d.Footprint.H,
			Category: d.Category.String(),
		})
	}
	return out
}

func layoutPayload(cfg config.InventoryConfig) network.LayoutPayload {
	lp := network.LayoutPayload{
		OriginX:  cfg.Metric.OriginX,
		OriginY:  cfg.Metric.OriginY,
		CellSize: cfg.Metric.CellSize,
		Slots:    make(map[string]network.Rect, len(cfg.Slots)),
	}
	for name, r := range cfg.Slots {
		lp.Slots[name] = network.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
	}
	return lp
}
