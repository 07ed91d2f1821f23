package motion

import "time"

// Position is a layout snapshot: the on-screen cell coordinates of an
// element's top-left corner at a point in time.
type Position struct {
	Top  int
	Left int
}

// Offset is a visual displacement in cells, applied on top of an element's
// laid-out position. Fractional values are rounded by the host at paint time.
type Offset struct {
	X, Y float64
}

// Add returns o shifted by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Lerp interpolates between o and to by t.
func (o Offset) Lerp(to Offset, t float64) Offset {
	return Offset{X: o.X + (to.X-o.X)*t, Y: o.Y + (to.Y-o.Y)*t}
}

// Style holds the animatable visual properties of an element.
type Style struct {
	Offset  Offset
	Opacity float64
}

// DefaultStyle is the resting style of a freshly created element.
func DefaultStyle() Style {
	return Style{Opacity: 1}
}

// Get returns the value of property p as a one-property Style.
func (s Style) Get(p Property) Style {
	var out Style
	switch p {
	case PropertyOffset:
		out.Offset = s.Offset
	case PropertyOpacity:
		out.Opacity = s.Opacity
	}
	return out
}

// With returns s with property p copied from other.
func (s Style) With(p Property, other Style) Style {
	switch p {
	case PropertyOffset:
		s.Offset = other.Offset
	case PropertyOpacity:
		s.Opacity = other.Opacity
	}
	return s
}

// Composite specifies how an animation's value combines with the values
// underneath it.
type Composite int

const (
	// CompositeReplace overrides the underlying value (default).
	CompositeReplace Composite = iota
	// CompositeAdd adds to the underlying value.
	CompositeAdd
)

// Fill specifies whether an animation's effect persists outside its
// active interval.
type Fill int

const (
	// FillNone applies the effect only while the animation is running.
	FillNone Fill = iota
	// FillBoth holds the first keyframe before start and the last after end.
	FillBoth
)

// Keyframes describes a two-keyframe animation of a single property.
// Only the field of From/To selected by Property is read.
type Keyframes struct {
	Property Property
	From     Style
	To       Style
}

// Timing configures how the host plays a set of keyframes.
type Timing struct {
	Duration  time.Duration
	Easing    Easing
	Composite Composite
	Fill      Fill
}

// Element is the host's handle to one on-screen item. Implementations are
// driven from the render loop and are not safe for concurrent use.
type Element interface {
	// MeasurePosition returns the element's current laid-out position,
	// excluding any animated offset.
	MeasurePosition() Position

	// Animate starts playing keyframes and returns a handle immediately.
	// A non-nil error means the host rejected the request.
	Animate(kf Keyframes, timing Timing) (Animation, error)

	// Computed returns the element's current style: its resting style
	// overlaid with every running replace-composited animation. Additive
	// animations are excluded, so a redirect that starts from this value
	// does not absorb a layout correction running on top of it.
	Computed() Style

	// SetStyle sets the element's resting style without animating.
	SetStyle(s Style)
}

// Animation is a running animation owned by a single Node.
//
// Each handle emits at most one of its finish and cancel events, and emits
// it at most once. Handlers registered after the event fired are not called.
type Animation interface {
	// OnFinish registers fn to run when the animation completes naturally.
	OnFinish(fn func())

	// OnCancel registers fn to run when the animation is cancelled.
	OnCancel(fn func())

	// Cancel stops the animation and removes its effect. On a finished
	// animation it only drops the lingering fill effect and emits no event;
	// on a cancelled one it is a no-op.
	Cancel()

	// Value returns the animation's current sampled value. Only the field
	// of the animated property is meaningful.
	Value() Style

	// CommitStyles writes the animation's current value into the element's
	// resting style.
	CommitStyles()
}
