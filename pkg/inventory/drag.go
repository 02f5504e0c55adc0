package inventory

import (
	"github.com/sirupsen/logrus"
)

// Validity is the per-tick verdict on the current drop candidate.
type Validity int

const (
	// Impossible means dropping now would roll the item back.
	Impossible Validity = iota
	// Possible means dropping now would commit to the candidate.
	Possible
	// Same means the candidate did not change since the previous tick.
	Same
)

func (v Validity) String() string {
	switch v {
	case Impossible:
		return "impossible"
	case Possible:
		return "possible"
	case Same:
		return "same"
	default:
		return "unknown"
	}
}

// DragState is the lifecycle state of a Drag.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragCommitted
	DragRolledBack
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragCommitted:
		return "committed"
	case DragRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Drag moves one item out of its origin container and either commits it to a
// new location or restores it exactly where it was. While dragging, the item
// is held by no container and is reachable only through the Drag.
type Drag struct {
	state DragState
	item  *ItemHandle

	origin    Container
	originLoc Location

	target    Container
	targetLoc Location
	validity  Validity
	reason    error

	grab     Position
	listener Listener
	log      logrus.FieldLogger
}

// BeginDrag provisionally removes item from origin and starts tracking it.
// The origin location is the initial candidate, so releasing without moving
// puts the item back in place.
func BeginDrag(item *ItemHandle, origin Container, opts ...Option) (*Drag, error) {
	if item == nil || origin == nil {
		return nil, ErrNotHeld
	}
	loc, ok := origin.locate(item)
	if !ok {
		return nil, ErrNotHeld
	}
	s := buildSettings(opts...)
	grab := Position{X: 0.5, Y: 0.5}
	if s.grab != nil {
		grab = *s.grab
	}
	d := &Drag{
		state:     DragDragging,
		item:      item,
		origin:    origin,
		originLoc: loc,
		target:    origin,
		targetLoc: loc,
		validity:  Possible,
		grab:      grab,
		listener:  s.listener,
		log: s.log.WithFields(logrus.Fields{
			"item":   item.ID(),
			"origin": origin.ContainerID(),
		}),
	}
	origin.detach(item)
	d.log.Debug("drag started")
	return d, nil
}

func (d *Drag) State() DragState { return d.state }

// Item returns the dragged item.
func (d *Drag) Item() *ItemHandle { return d.item }

// Origin returns the container the item was lifted from and its location there.
func (d *Drag) Origin() (Container, Location) { return d.origin, d.originLoc }

// Candidate returns the current drop target, nil when the pointer is outside
// every container.
func (d *Drag) Candidate() (Container, Location) { return d.target, d.targetLoc }

// Validity returns the last computed verdict. It is never Same.
func (d *Drag) Validity() Validity { return d.validity }

// Err returns why the current candidate is impossible, or why the last
// commit failed.
func (d *Drag) Err() error { return d.reason }

// OnMove recomputes the drop candidate for a pointer at pos over target.
// A nil target means the pointer is outside every container. Same is
// returned when the projected candidate equals the previous one.
func (d *Drag) OnMove(target Container, pos Position) Validity {
	if d.state != DragDragging {
		return Impossible
	}
	var loc Location
	if target != nil {
		var ok bool
		if loc, ok = target.project(d.item, pos, d.grab); !ok {
			target = nil
			loc = Location{}
		}
	}
	if target == d.target && loc == d.targetLoc {
		d.listener.DragValidityChanged(Same)
		return Same
	}

	d.target, d.targetLoc = target, loc
	d.validity, d.reason = Impossible, nil
	if target != nil {
		if err := target.evaluate(d.item, loc); err != nil {
			d.reason = err
		} else {
			d.validity = Possible
		}
	}
	d.listener.DragValidityChanged(d.validity)
	return d.validity
}

// EndDrag resolves the transaction. A Possible candidate is committed;
// otherwise, or if the commit is refused, the item is restored to its origin.
// Either way the item ends owned by exactly one container.
func (d *Drag) EndDrag() (DragState, error) {
	if d.state != DragDragging {
		return d.state, ErrNotDragging
	}
	if d.validity == Possible && d.target != nil {
		err := d.target.commit(d.item, d.targetLoc)
		if err == nil {
			d.state = DragCommitted
			d.log.WithField("target", d.target.ContainerID()).Debug("drag committed")
			return d.state, nil
		}
		d.reason = err
		d.log.WithError(err).Debug("commit refused")
	}
	d.rollback()
	return d.state, nil
}

// Cancel abandons the transaction and restores the item to its origin.
// It is a no-op once the drag has resolved.
func (d *Drag) Cancel() DragState {
	if d.state == DragDragging {
		d.rollback()
	}
	return d.state
}

func (d *Drag) rollback() {
	d.origin.attach(d.item, d.originLoc)
	d.state = DragRolledBack
	d.log.Debug("drag rolled back")
}
