package inventory

// Listener receives state changes for presentation. Calls are synchronous
// and happen after the container state has been updated.
type Listener interface {
	ItemPlaced(item *ItemHandle, anchor Point)
	ItemRemoved(item *ItemHandle)
	Equipped(category Category, item *ItemHandle)
	Unequipped(category Category, item *ItemHandle)
	DragValidityChanged(v Validity)
}

// ListenerFuncs adapts optional callbacks to a Listener. Nil fields are
// ignored.
type ListenerFuncs struct {
	OnItemPlaced          func(item *ItemHandle, anchor Point)
	OnItemRemoved         func(item *ItemHandle)
	OnEquipped            func(category Category, item *ItemHandle)
	OnUnequipped          func(category Category, item *ItemHandle)
	OnDragValidityChanged func(v Validity)
}

func (f ListenerFuncs) ItemPlaced(item *ItemHandle, anchor Point) {
	if f.OnItemPlaced != nil {
		f.OnItemPlaced(item, anchor)
	}
}

func (f ListenerFuncs) ItemRemoved(item *ItemHandle) {
	if f.OnItemRemoved != nil {
		f.OnItemRemoved(item)
	}
}

func (f ListenerFuncs) Equipped(category Category, item *ItemHandle) {
	if f.OnEquipped != nil {
		f.OnEquipped(category, item)
	}
}

func (f ListenerFuncs) Unequipped(category Category, item *ItemHandle) {
	if f.OnUnequipped != nil {
		f.OnUnequipped(category, item)
	}
}

func (f ListenerFuncs) DragValidityChanged(v Validity) {
	if f.OnDragValidityChanged != nil {
		f.OnDragValidityChanged(v)
	}
}

// NopListener discards every notification.
type NopListener struct{}

func (NopListener) ItemPlaced(*ItemHandle, Point) {}
func (NopListener) ItemRemoved(*ItemHandle) {}
func (NopListener) Equipped(Category, *ItemHandle) {}
func (NopListener) Unequipped(Category, *ItemHandle) {}
func (NopListener) DragValidityChanged(Validity) {}
