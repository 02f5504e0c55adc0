package inventory

import (
	"io"

	"github.com/sirupsen/logrus"
)

type settings struct {
	listener Listener
	log      logrus.FieldLogger
	metric   Metric
	layout   SlotLayout
	grab     *Position
}

// Option configures grids, equipment sets, drags and inventories.
type Option func(*settings)

// WithListener attaches the presentation listener that receives placement,
// equip and drag validity notifications.
func WithListener(l Listener) Option {
	return func(s *settings) {
		if l != nil {
			s.listener = l
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetric sets the pixel geometry of a grid.
func WithMetric(m Metric) Option {
	return func(s *settings) {
		s.metric = m
	}
}

// WithSlotLayout sets the pointer hit areas of equipment slots.
func WithSlotLayout(l SlotLayout) Option {
	return func(s *settings) {
		s.layout = l
	}
}

// WithGrabOffset sets where, in cell units relative to the item's top-left
// corner, the pointer holds a dragged item. The default is the centre of the
// anchor cell.
func WithGrabOffset(p Position) Option {
	return func(s *settings) {
		s.grab = &p
	}
}

func buildSettings(opts ...Option) settings {
	s := settings{
		listener: NopListener{},
		log:      discardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
