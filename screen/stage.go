package screen

import (
	"slices"
	"sync/atomic"

	"github.com/grindlemire/go-motion/internal/debug"
)

const (
	defaultRowHeight = 1
	defaultWidth     = 40
)

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithClock sets the clock the stage's timeline reads.
func WithClock(c Clock) StageOption {
	return func(s *Stage) {
		s.timeline = NewTimeline(c)
	}
}

// WithRowHeight sets the height of each row in cells. Values below 1 are
// ignored.
func WithRowHeight(h int) StageOption {
	return func(s *Stage) {
		if h > 0 {
			s.rowHeight = h
		}
	}
}

// WithWidth sets the width of each row in cells. Values below 1 are ignored.
func WithWidth(w int) StageOption {
	return func(s *Stage) {
		if w > 0 {
			s.width = w
		}
	}
}

// Stage is a column of keyed rows. It lays the rows out top to bottom,
// plays their animations on a Timeline and brackets every render pass with
// before/after hooks.
type Stage struct {
	elements  *RefMap[string]
	order     []string
	timeline  *Timeline
	rowHeight int
	width     int

	beforeUpdate []func()
	afterUpdate  []func()

	dirty atomic.Bool
}

// NewStage creates an empty stage.
func NewStage(opts ...StageOption) *Stage {
	s := &Stage{
		elements:  NewRefMap[string](),
		timeline:  NewTimeline(nil),
		rowHeight: defaultRowHeight,
		width:     defaultWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeline returns the stage's timeline.
func (s *Stage) Timeline() *Timeline {
	return s.timeline
}

// RowHeight returns the height of a row in cells.
func (s *Stage) RowHeight() int {
	return s.rowHeight
}

// Width returns the width of a row in cells.
func (s *Stage) Width() int {
	return s.width
}

// Element returns the element for key, creating it on first use.
func (s *Stage) Element(key string) *Element {
	if el := s.elements.Get(key); el != nil {
		return el
	}
	el := newElement(key, s.timeline)
	s.elements.Put(key, el)
	return el
}

// Lookup returns the element for key without creating it, or nil.
func (s *Stage) Lookup(key string) *Element {
	return s.elements.Get(key)
}

// Order returns the keys in layout order.
func (s *Stage) Order() []string {
	return slices.Clone(s.order)
}

// Len returns the number of elements on the stage.
func (s *Stage) Len() int {
	return s.elements.Len()
}

// Layout places keys as consecutive rows from the top, creating elements
// as needed. Elements whose key is not listed leave the stage and have
// their animations cancelled.
func (s *Stage) Layout(keys []string) {
	listed := make(map[string]bool, len(keys))
	for i, key := range keys {
		listed[key] = true
		s.Element(key).SetRect(NewRect(0, i*s.rowHeight, s.width, s.rowHeight))
	}
	for key := range s.elements.All() {
		if !listed[key] {
			s.remove(key)
		}
	}
	s.order = slices.Clone(keys)
	s.MarkDirty()
}

func (s *Stage) remove(key string) {
	if el := s.elements.Delete(key); el != nil {
		el.cancelAll()
		debug.Log("Stage: removed %q", key)
	}
}

// OnBeforeUpdate registers fn to run at the start of every Pass.
func (s *Stage) OnBeforeUpdate(fn func()) {
	s.beforeUpdate = append(s.beforeUpdate, fn)
}

// OnAfterUpdate registers fn to run at the end of every Pass.
func (s *Stage) OnAfterUpdate(fn func()) {
	s.afterUpdate = append(s.afterUpdate, fn)
}

// Pass runs one render pass: the before hooks, mutate, then the after
// hooks. It marks the stage dirty.
func (s *Stage) Pass(mutate func() error) error {
	for _, fn := range s.beforeUpdate {
		fn()
	}
	if mutate != nil {
		if err := mutate(); err != nil {
			return err
		}
	}
	for _, fn := range s.afterUpdate {
		fn()
	}
	s.MarkDirty()
	return nil
}

// Tick advances the timeline one frame and returns the number of players
// still running. The stage is marked dirty whenever something moved.
func (s *Stage) Tick() int {
	if s.timeline.Active() == 0 {
		return 0
	}
	s.MarkDirty()
	return s.timeline.Tick()
}

// Idle reports whether no animation is running.
func (s *Stage) Idle() bool {
	return s.timeline.Active() == 0
}

// MarkDirty marks the stage as needing a repaint. Safe from any goroutine.
func (s *Stage) MarkDirty() {
	s.dirty.Store(true)
}

// CheckAndClearDirty returns true if the stage was dirty and clears the
// flag.
func (s *Stage) CheckAndClearDirty() bool {
	return s.dirty.Swap(false)
}
