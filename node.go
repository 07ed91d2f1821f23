package motion

import "github.com/grindlemire/go-motion/internal/debug"

// slot identifies an exclusive animation channel on a Node. Starting an
// animation in an occupied slot replaces the previous one.
type slot int

const (
	slotLayout slot = iota
	slotEnter
	slotProperty // slotProperty + Property
)

func propertySlot(p Property) slot {
	return slotProperty + slot(p)
}

func (s slot) String() string {
	switch s {
	case slotLayout:
		return "layout"
	case slotEnter:
		return "enter"
	}
	return Property(s - slotProperty).String()
}

// flight is one in-flight animation owned by a Node.
type flight struct {
	anim Animation
	slot slot
	done bool
}

// Node is the animation controller for one visual element. It snapshots
// layout around each render pass, turns target changes into property
// animations, plays a fade-in on the first update after mounting and
// glides the element when its layout position moves.
//
// A Node is driven from the host's render loop and is not safe for
// concurrent use.
//
// Per render pass the host calls:
//
//	node.BeforeUpdate()  // before any layout-affecting mutation
//	// ... mutate and lay out ...
//	node.AfterUpdate()   // after the mutation is committed
type Node struct {
	element Element
	mounted bool
	entered bool

	snapshot    Position
	hasSnapshot bool

	defaults Options
	target   *Target

	// opacityOwned is set once AnimateTo animates opacity after mounting;
	// from then on the entrance fade no longer commits its final value.
	opacityOwned bool

	slots    map[slot]*flight
	inFlight map[*flight]struct{}

	onFinished func()
}

// NewNode creates an unmounted, unattached Node.
func NewNode() *Node {
	return &Node{
		slots:    make(map[slot]*flight),
		inFlight: make(map[*flight]struct{}),
	}
}

// Attach binds the node to a host element. It may be called again when the
// host hands out a new handle; the node keeps its identity and state.
func (n *Node) Attach(el Element) {
	n.element = el
}

// Element returns the attached element, or nil.
func (n *Node) Element() Element {
	return n.element
}

// Mounted reports whether the node is mounted.
func (n *Node) Mounted() bool {
	return n.mounted
}

// InFlight returns the number of animations currently running.
func (n *Node) InFlight() int {
	return len(n.inFlight)
}

// SetDefaultOptions sets the timing used when neither a call nor its target
// specify one.
func (n *Node) SetDefaultOptions(o Options) {
	n.defaults = o
}

// Mount transitions the node to mounted and applies initial's values as the
// element's resting style without animating. initial may be nil.
//
// Mount returns an error matching ErrInvariantViolation if no element is
// attached. Mounting a mounted node is a no-op.
func (n *Node) Mount(initial *Target) error {
	if n.element == nil {
		return invariant("Mount", "no element attached")
	}
	if n.mounted {
		return nil
	}
	n.mounted = true
	n.entered = false
	n.hasSnapshot = false
	n.opacityOwned = false

	if initial != nil {
		style := n.element.Computed()
		for _, p := range Properties {
			if initial.Has(p) {
				style = style.With(p, initial.values)
			}
		}
		n.element.SetStyle(style)
	}
	n.target = initial
	debug.Log("Node.Mount: mounted (initial=%v)", initial != nil)
	return nil
}

// BeforeUpdate captures the element's layout position. Call it once per
// render pass before any layout-affecting mutation.
func (n *Node) BeforeUpdate() {
	if n.element == nil || !n.mounted {
		return
	}
	n.snapshot = n.element.MeasurePosition()
	n.hasSnapshot = true
}

// AfterUpdate runs once per render pass after the host commits its
// mutations. On the first pass after mounting it plays a fade-in. If the
// element moved since BeforeUpdate it starts a layout correction that
// glides the element from its old position to the new one. Finally it
// fires the finished-animating callback if nothing is in flight.
func (n *Node) AfterUpdate() {
	if n.element == nil || !n.mounted {
		return
	}

	if !n.entered {
		n.entered = true
		n.fadeIn()
	}

	if n.hasSnapshot {
		n.hasSnapshot = false
		pos := n.element.MeasurePosition()
		if pos != n.snapshot {
			n.correctLayout(n.snapshot, pos)
		}
	}

	n.checkFinished()
}

// AnimateTo requests target. Nothing happens if target is the same pointer
// as the last request. Otherwise every property target requests with a
// value different from the previous target's animates from its current
// value to the new one; other properties are left alone.
//
// opts override the target's own timing; only the first is used.
//
// On an unmounted node the target is recorded but nothing animates.
func (n *Node) AnimateTo(target *Target, opts ...Options) {
	if target == nil || target == n.target {
		return
	}
	prev := n.target
	n.target = target
	if n.element == nil || !n.mounted {
		debug.Log("Node.AnimateTo: not mounted, recording target only")
		return
	}

	var call Options
	if len(opts) > 0 {
		call = opts[0]
	}
	timing := call.merge(target.timing).merge(n.defaults).merge(globalOptions())

	for _, p := range Properties {
		if target.differs(prev, p) {
			n.animateProperty(p, target.values, timing)
		}
	}
}

// SetFinishedAnimatingCallback registers fn to be called once, the next
// time the node has no animations in flight: either when an animation
// settles or at the next AfterUpdate, whichever comes first. A nil fn
// clears the registration. Registering replaces any previous callback.
func (n *Node) SetFinishedAnimatingCallback(fn func()) {
	n.onFinished = fn
}

// Unmount cancels every running animation, clears the node's runtime state
// and transitions to unmounted. The finished-animating callback is dropped
// without firing. Unmounting an unmounted node is a no-op.
//
// The attached element and default options are kept.
func (n *Node) Unmount() {
	if !n.mounted {
		return
	}
	n.mounted = false
	n.onFinished = nil

	flights := make([]*flight, 0, len(n.inFlight))
	for f := range n.inFlight {
		flights = append(flights, f)
	}
	for _, f := range flights {
		f.anim.Cancel()
		n.settle(f, false)
	}

	n.slots = make(map[slot]*flight)
	n.inFlight = make(map[*flight]struct{})
	n.entered = false
	n.hasSnapshot = false
	n.opacityOwned = false
	n.target = nil
	debug.Log("Node.Unmount: cancelled %d animations", len(flights))
}

func (n *Node) fadeIn() {
	timing := n.defaults.merge(globalOptions())
	n.start(slotEnter, Keyframes{
		Property: PropertyOpacity,
		From:     Style{Opacity: 0},
		To:       Style{Opacity: 1},
	}, Timing{
		Duration:  timing.Duration,
		Easing:    timing.Easing,
		Composite: CompositeReplace,
		Fill:      FillBoth,
	})
}

// correctLayout starts an additive offset animation from the inverse of the
// layout delta to zero. Any remaining offset of a correction still in
// flight is folded into the new starting point.
func (n *Node) correctLayout(prev, cur Position) {
	from := Offset{
		X: float64(prev.Left - cur.Left),
		Y: float64(prev.Top - cur.Top),
	}
	if old, ok := n.slots[slotLayout]; ok {
		from = from.Add(old.anim.Value().Offset)
	}
	timing := n.defaults.merge(globalOptions())
	debug.Log("Node.correctLayout: delta=(%v,%v)", from.X, from.Y)
	n.start(slotLayout, Keyframes{
		Property: PropertyOffset,
		From:     Style{Offset: from},
		To:       Style{},
	}, Timing{
		Duration:  timing.Duration,
		Easing:    timing.Easing,
		Composite: CompositeAdd,
		Fill:      FillBoth,
	})
}

func (n *Node) animateProperty(p Property, values Style, timing Options) {
	from := n.element.Computed()
	if p == PropertyOpacity {
		// An explicit opacity request takes over from the entrance fade.
		n.opacityOwned = true
		if f, ok := n.slots[slotEnter]; ok {
			defer n.cancel(f)
		}
	}
	n.start(propertySlot(p), Keyframes{
		Property: p,
		From:     from.Get(p),
		To:       values.Get(p),
	}, Timing{
		Duration:  timing.Duration,
		Easing:    timing.Easing,
		Composite: CompositeReplace,
		Fill:      FillBoth,
	})
}

// start plays kf in slot s. The new animation is registered before the
// slot's previous occupant is cancelled, so replacing never empties the
// in-flight set on the way.
func (n *Node) start(s slot, kf Keyframes, timing Timing) {
	prev := n.slots[s]

	anim, err := n.element.Animate(kf, timing)
	if err != nil {
		// A rejected request is a cancellation of that one animation.
		debug.Log("Node.start: host rejected %s animation: %v", s, err)
		n.checkFinished()
		return
	}

	f := &flight{anim: anim, slot: s}
	n.slots[s] = f
	n.inFlight[f] = struct{}{}
	anim.OnFinish(func() { n.settle(f, true) })
	anim.OnCancel(func() { n.settle(f, false) })

	if prev != nil {
		n.cancel(prev)
	}
}

func (n *Node) cancel(f *flight) {
	f.anim.Cancel()
	n.settle(f, false)
}

// settle is the single removal path for every animation, finished or
// cancelled. It is idempotent per flight. A finished animation commits its
// final value as resting style before its effect is dropped, except an
// entrance fade whose opacity has since been claimed by AnimateTo.
func (n *Node) settle(f *flight, finished bool) {
	if f.done {
		return
	}
	f.done = true
	if finished {
		if f.slot != slotEnter || !n.opacityOwned {
			f.anim.CommitStyles()
		}
		f.anim.Cancel()
	}
	delete(n.inFlight, f)
	if n.slots[f.slot] == f {
		delete(n.slots, f.slot)
	}
	n.checkFinished()
}

func (n *Node) checkFinished() {
	if !n.mounted || n.onFinished == nil || len(n.inFlight) > 0 {
		return
	}
	fn := n.onFinished
	n.onFinished = nil
	fn()
}
