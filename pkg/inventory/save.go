package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// SlotRecord is one grid item in save data. Index is row*width + col of the
// item's anchor in a grid of the saved width.
type SlotRecord struct {
	Item  ItemID `json:"item"`
	Index int    `json:"index"`
}

// SaveData is the persisted form of an inventory.
type SaveData struct {
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Grid      []SlotRecord        `json:"grid"`
	Equipment map[Category]ItemID `json:"equipment,omitempty"`
}

// SkippedRecord describes a saved item that could not be restored.
type SkippedRecord struct {
	Item     ItemID
	Index    int
	Category Category
	Err      error
}

// RestoreReport summarizes a Restore.
type RestoreReport struct {
	Loaded  int
	Skipped []SkippedRecord
}

var (
	errUnknownItem = errors.New("inventory: item not in catalog")
	errNoSlot      = errors.New("inventory: no slot for category")
	errNoFit       = errors.New("inventory: saved item does not fit")
)

// snapshot builds save data from the grid's AllItems and the equipment slots.
func snapshot(g *Grid, e *Equipment) SaveData {
	data := SaveData{Width: g.width, Height: g.height, Grid: []SlotRecord{}}
	for _, pl := range g.AllItems() {
		data.Grid = append(data.Grid, SlotRecord{Item: pl.Item.ID(), Index: pl.Index})
	}
	if e != nil {
		for _, c := range e.order {
			if it := e.slots[c].item; it != nil {
				if data.Equipment == nil {
					data.Equipment = make(map[Category]ItemID)
				}
				data.Equipment[c] = it.ID()
			}
		}
	}
	return data
}

// restore clears both containers and reloads them from data. Saved indices
// are re-linearized when the saved width differs from the grid's width.
func restore(g *Grid, e *Equipment, data SaveData, catalog Catalog) RestoreReport {
	var rep RestoreReport
	g.Clear()
	if e != nil {
		e.Clear()
	}

	for _, rec := range data.Grid {
		desc, ok := catalog.Lookup(rec.Item)
		if !ok {
			g.log.WithField("item", rec.Item).Warn("saved item missing from catalog")
			rep.Skipped = append(rep.Skipped, SkippedRecord{Item: rec.Item, Index: rec.Index, Err: errUnknownItem})
			continue
		}
		index := rec.Index
		if data.Width > 0 && data.Width != g.width && index >= 0 {
			index = g.Index(Point{X: index % data.Width, Y: index / data.Width})
			if index%g.width != rec.Index%data.Width {
				index = -1
			}
		}
		if _, ok := g.LoadItemToSlot(desc, index); !ok {
			rep.Skipped = append(rep.Skipped, SkippedRecord{Item: rec.Item, Index: rec.Index, Err: errNoFit})
			continue
		}
		rep.Loaded++
	}

	if e == nil {
		return rep
	}
	cats := make([]Category, 0, len(data.Equipment))
	for c := range data.Equipment {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, c := range cats {
		id := data.Equipment[c]
		desc, ok := catalog.Lookup(id)
		if !ok {
			e.log.WithField("item", id).Warn("saved item missing from catalog")
			rep.Skipped = append(rep.Skipped, SkippedRecord{Item: id, Category: c, Err: errUnknownItem})
			continue
		}
		slot := e.slots[c]
		if slot == nil {
			e.log.WithFields(logrus.Fields{"item": id, "slot": c}).Warn("saved slot not configured")
			rep.Skipped = append(rep.Skipped, SkippedRecord{Item: id, Category: c, Err: errNoSlot})
			continue
		}
		item := NewItem(desc)
		if !e.MatchesCategory(item, slot) {
			e.log.WithFields(logrus.Fields{"item": id, "slot": c}).Warn("saved item does not match slot")
			rep.Skipped = append(rep.Skipped, SkippedRecord{Item: id, Category: c, Err: ErrCategoryMismatch})
			continue
		}
		e.bind(slot, item)
		rep.Loaded++
	}
	return rep
}

// MarshalSaveData encodes save data as JSON.
func MarshalSaveData(data SaveData) ([]byte, error) {
	return json.Marshal(data)
}

// UnmarshalSaveData decodes JSON produced by MarshalSaveData.
func UnmarshalSaveData(b []byte) (SaveData, error) {
	var data SaveData
	if err := json.Unmarshal(b, &data); err != nil {
		return SaveData{}, err
	}
	return data, nil
}

type storageSlotRecord struct {
	Item  RegistryID `json:"i"`
	Index int        `json:"s"`
}

type storageSaveData struct {
	Width     int                     `json:"w"`
	Height    int                     `json:"h"`
	Grid      []storageSlotRecord     `json:"g"`
	Equipment map[Category]RegistryID `json:"e,omitempty"`
}

// MarshalSaveDataForStorage encodes save data using numeric registry ids
// instead of item ids. Every item must be registered.
func MarshalSaveDataForStorage(data SaveData, reg *Registry) ([]byte, error) {
	if reg == nil {
		return nil, errors.New("inventory: registry required for storage serialization")
	}
	out := storageSaveData{
		Width:  data.Width,
		Height: data.Height,
		Grid:   make([]storageSlotRecord, 0, len(data.Grid)),
	}
	for _, rec := range data.Grid {
		id, ok := reg.RegistryID(rec.Item)
		if !ok {
			return nil, fmt.Errorf("item not found in registry: %s", rec.Item)
		}
		out.Grid = append(out.Grid, storageSlotRecord{Item: id, Index: rec.Index})
	}
	for c, item := range data.Equipment {
		id, ok := reg.RegistryID(item)
		if !ok {
			return nil, fmt.Errorf("item not found in registry: %s", item)
		}
		if out.Equipment == nil {
			out.Equipment = make(map[Category]RegistryID, len(data.Equipment))
		}
		out.Equipment[c] = id
	}
	return json.Marshal(out)
}

// UnmarshalSaveDataFromStorage decodes data written by
// MarshalSaveDataForStorage.
func UnmarshalSaveDataFromStorage(b []byte, reg *Registry) (SaveData, error) {
	if reg == nil {
		return SaveData{}, errors.New("inventory: registry required for storage deserialization")
	}
	var in storageSaveData
	if err := json.Unmarshal(b, &in); err != nil {
		return SaveData{}, err
	}
	data := SaveData{Width: in.Width, Height: in.Height, Grid: make([]SlotRecord, 0, len(in.Grid))}
	for _, rec := range in.Grid {
		desc, ok := reg.LookupByRegistryID(rec.Item)
		if !ok {
			return SaveData{}, fmt.Errorf("registry id not found: %d", rec.Item)
		}
		data.Grid = append(data.Grid, SlotRecord{Item: desc.ID, Index: rec.Index})
	}
	for c, id := range in.Equipment {
		desc, ok := reg.LookupByRegistryID(id)
		if !ok {
			return SaveData{}, fmt.Errorf("registry id not found: %d", id)
		}
		if data.Equipment == nil {
			data.Equipment = make(map[Category]ItemID, len(in.Equipment))
		}
		data.Equipment[c] = desc.ID
	}
	return data, nil
}
