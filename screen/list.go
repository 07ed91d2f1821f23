package screen

import (
	"fmt"

	motion "github.com/grindlemire/go-motion"
	"github.com/grindlemire/go-motion/internal/debug"
)

// Row is one list item: a keyed row carries an identity across updates,
// an unkeyed row is only positional.
type Row = motion.Item[string, string]

// KeyedRow returns a row identified by key showing text.
func KeyedRow(key, text string) Row {
	return motion.Keyed(key, text)
}

// UnkeyedRow returns a row without identity showing text.
func UnkeyedRow(text string) Row {
	return motion.Unkeyed[string](text)
}

// ListOption configures a List.
type ListOption func(*List)

// WithEnterTarget sets the target present rows animate to.
func WithEnterTarget(t *motion.Target) ListOption {
	return func(l *List) {
		l.enter = t
	}
}

// WithExitTarget sets the target removed rows animate to before they
// leave the stage.
func WithExitTarget(t *motion.Target) ListOption {
	return func(l *List) {
		l.exit = t
	}
}

// WithDefaultOptions sets the timing every row's node falls back to.
func WithDefaultOptions(o motion.Options) ListOption {
	return func(l *List) {
		l.defaults = o
	}
}

// List animates a keyed list of rows on a Stage. New rows fade in, rows
// that change position glide to their new row, removed rows fade out in
// place and leave once their exit animation finished.
type List struct {
	stage    *Stage
	presence *motion.AnimPresence[string, string]
	nodes    *motion.NodeSet[string]
	rows     []Row

	enter    *motion.Target
	exit     *motion.Target
	defaults motion.Options

	needsPass bool
}

// NewList binds a list to stage. The stage's before/after hooks drive the
// list's nodes.
func NewList(stage *Stage, opts ...ListOption) *List {
	l := &List{stage: stage}
	for _, opt := range opts {
		opt(l)
	}
	if l.enter == nil {
		l.enter = motion.NewTarget(motion.WithOpacity(1))
	}
	if l.exit == nil {
		l.exit = motion.NewTarget(motion.WithOpacity(0))
	}
	l.presence = motion.NewAnimPresence[string, string](motion.OnChange(func() {
		l.needsPass = true
		stage.MarkDirty()
	}))
	l.nodes = motion.NewNodeSet(func(_ string, n *motion.Node) {
		n.SetDefaultOptions(l.defaults)
	})

	stage.OnBeforeUpdate(func() {
		l.nodes.Each(func(_ string, n *motion.Node) { n.BeforeUpdate() })
	})
	stage.OnAfterUpdate(func() {
		l.nodes.Each(func(_ string, n *motion.Node) { n.AfterUpdate() })
		l.presence.EndPass()
	})
	return l
}

// Set replaces the rows and runs a render pass. Passing the same slice
// again is not a change. Duplicate keys are rejected and leave the list
// as it was.
func (l *List) Set(rows []Row) error {
	if err := l.stage.Pass(func() error { return l.update(rows) }); err != nil {
		return fmt.Errorf("set list: %w", err)
	}
	l.rows = rows
	return nil
}

// Rows returns the rows last passed to Set.
func (l *List) Rows() []Row {
	return l.rows
}

// Refresh runs a render pass over the current rows. Call it when
// NeedsPass reports that a removal settled.
func (l *List) Refresh() error {
	return l.Set(l.rows)
}

// NeedsPass reports whether a row left the list since the last pass, so
// the remaining rows must be laid out again.
func (l *List) NeedsPass() bool {
	return l.needsPass
}

// Keys returns the keys currently on screen, exiting ones included.
func (l *List) Keys() []string {
	return l.presence.Keys()
}

// Entries returns the tracked rows in render order.
func (l *List) Entries() []motion.Entry[string, string] {
	return l.presence.Entries()
}

// Node returns the animation controller for key, or nil.
func (l *List) Node(key string) *motion.Node {
	return l.nodes.Get(key)
}

func (l *List) update(rows []Row) error {
	l.needsPass = false
	if err := l.presence.Sync(rows); err != nil {
		return err
	}

	entries := l.presence.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = stageKey(e, i)
	}
	l.stage.Layout(keys)

	for i, e := range entries {
		el := l.stage.Element(keys[i])
		el.SetText(e.Value)
		if !e.Keyed {
			continue
		}
		n := l.nodes.Node(e.Key)
		n.Attach(el)
		if !n.Mounted() {
			if err := n.Mount(l.enter); err != nil {
				return err
			}
		}
		e.Child.Context().Consume().Drive(n, l.enter, l.exit)
	}
	if swept := l.nodes.Sweep(); len(swept) > 0 {
		debug.Log("List: swept %v", swept)
	}
	return nil
}

// stageKey names the stage element of an entry. Unkeyed rows are keyed by
// position and never collide with a string key that is valid text.
func stageKey(e motion.Entry[string, string], i int) string {
	if e.Keyed {
		return e.Key
	}
	return fmt.Sprintf("\x00unkeyed-%d", i)
}
