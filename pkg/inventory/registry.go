package inventory

import (
	"errors"
	"sort"
	"sync"
)

// Catalog resolves item descriptors by id. Registry implements it; hosts
// may supply their own.
type Catalog interface {
	Lookup(id ItemID) (ItemDescriptor, bool)
}

// Registry stores item descriptors keyed by ItemID and provides numeric
// handles for compact storage. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	items  map[ItemID]registryEntry
	byID   map[RegistryID]ItemID
	nextID RegistryID
}

type registryEntry struct {
	desc      ItemDescriptor
	numericID RegistryID
}

// NewRegistry constructs a registry seeded with descs. Invalid or duplicate
// seeds are ignored.
func NewRegistry(descs ...ItemDescriptor) *Registry {
	r := &Registry{
		items: make(map[ItemID]registryEntry, len(descs)),
		byID:  make(map[RegistryID]ItemID, len(descs)),
	}
	for _, d := range descs {
		_ = r.Register(d)
	}
	return r
}

// Register inserts or updates a descriptor, assigning the next free numeric
// id to new items.
func (r *Registry) Register(desc ItemDescriptor) error {
	return r.RegisterWithID(desc, 0)
}

// RegisterWithID inserts or updates a descriptor with an explicit numeric id.
// A zero id keeps the existing id or assigns the next free one.
func (r *Registry) RegisterWithID(desc ItemDescriptor, id RegistryID) error {
	if desc.ID == "" {
		return errors.New("inventory: item descriptor missing id")
	}
	if id < 0 {
		return errors.New("inventory: numeric id must be positive")
	}
	desc.Footprint = desc.Footprint.normalized()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[ItemID]registryEntry)
	}
	if r.byID == nil {
		r.byID = make(map[RegistryID]ItemID)
	}

	if existing, ok := r.items[desc.ID]; ok {
		if id == 0 {
			id = existing.numericID
		} else if id != existing.numericID {
			return errors.New("inventory: numeric id mismatch for existing item")
		}
	}
	if id == 0 {
		r.nextID++
		id = r.nextID
	} else {
		if owner, collision := r.byID[id]; collision && owner != desc.ID {
			return errors.New("inventory: numeric id already assigned to another item")
		}
		if id > r.nextID {
			r.nextID = id
		}
	}

	r.items[desc.ID] = registryEntry{desc: desc, numericID: id}
	r.byID[id] = desc.ID
	return nil
}

// Lookup implements Catalog.
func (r *Registry) Lookup(id ItemID) (ItemDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	return e.desc, ok
}

// RegistryID returns the numeric id of an item.
func (r *Registry) RegistryID(id ItemID) (RegistryID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return 0, false
	}
	return e.numericID, true
}

// LookupByRegistryID resolves a numeric id.
func (r *Registry) LookupByRegistryID(id RegistryID) (ItemDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.byID[id]
	if !ok {
		return ItemDescriptor{}, false
	}
	e, ok := r.items[key]
	return e.desc, ok
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Export copies the registry contents sorted by numeric id, suitable for
// sending to clients.
func (r *Registry) Export() []ItemDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.items) == 0 {
		return nil
	}
	entries := make([]registryEntry, 0, len(r.items))
	for _, e := range r.items {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].numericID < entries[j].numericID })
	out := make([]ItemDescriptor, len(entries))
	for i, e := range entries {
		out[i] = e.desc
	}
	return out
}
