package motion

import "time"

// Property identifies an animatable property.
type Property int

const (
	// PropertyOffset is the element's visual displacement from its layout position.
	PropertyOffset Property = iota
	// PropertyOpacity is the element's opacity in [0, 1].
	PropertyOpacity

	numProperties
)

// Properties lists every animatable property in a stable order.
var Properties = [...]Property{PropertyOffset, PropertyOpacity}

func (p Property) String() string {
	switch p {
	case PropertyOffset:
		return "offset"
	case PropertyOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Global defaults used when neither the call, the target, nor the node
// specify timing.
const (
	DefaultDuration = 200 * time.Millisecond
	DefaultEasing   = EaseOut
)

// Options holds animation timing. Zero fields inherit from the next level:
// per-call options, then the target's timing, then the node defaults, then
// DefaultDuration and DefaultEasing.
type Options struct {
	Duration time.Duration
	Easing   Easing
}

// merge fills zero fields of o from fallback.
func (o Options) merge(fallback Options) Options {
	if o.Duration <= 0 {
		o.Duration = fallback.Duration
	}
	if o.Easing == "" {
		o.Easing = fallback.Easing
	}
	return o
}

func globalOptions() Options {
	return Options{Duration: DefaultDuration, Easing: DefaultEasing}
}

// Target is a requested set of property values plus optional timing.
//
// Targets are immutable once built and always passed as *Target: a node
// detects "the caller asked for something new" by pointer identity, so two
// value-equal targets built separately count as distinct requests.
type Target struct {
	values Style
	set    [numProperties]bool
	timing Options
}

// TargetOption configures a Target under construction.
type TargetOption func(*Target)

// NewTarget builds a target from the given options.
//
// Example:
//
//	exit := motion.NewTarget(motion.WithOpacity(0), motion.WithDuration(300*time.Millisecond))
func NewTarget(opts ...TargetOption) *Target {
	t := &Target{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithOffset requests a position offset.
func WithOffset(x, y float64) TargetOption {
	return func(t *Target) {
		t.values.Offset = Offset{X: x, Y: y}
		t.set[PropertyOffset] = true
	}
}

// WithOpacity requests an opacity, clamped to [0, 1].
func WithOpacity(v float64) TargetOption {
	return func(t *Target) {
		t.values.Opacity = clamp01(v)
		t.set[PropertyOpacity] = true
	}
}

// WithTiming sets the target's own timing options.
func WithTiming(o Options) TargetOption {
	return func(t *Target) {
		t.timing = o
	}
}

// WithDuration sets only the target's duration.
func WithDuration(d time.Duration) TargetOption {
	return func(t *Target) {
		t.timing.Duration = d
	}
}

// WithEasing sets only the target's easing.
func WithEasing(e Easing) TargetOption {
	return func(t *Target) {
		t.timing.Easing = e
	}
}

// Has reports whether the target requests property p.
func (t *Target) Has(p Property) bool {
	if t == nil || p < 0 || p >= numProperties {
		return false
	}
	return t.set[p]
}

// Values returns the requested values. Fields for unrequested properties
// are zero.
func (t *Target) Values() Style {
	if t == nil {
		return Style{}
	}
	return t.values
}

// Timing returns the target's own timing options.
func (t *Target) Timing() Options {
	if t == nil {
		return Options{}
	}
	return t.timing
}

// differs reports whether t requests p with a value different from prev's.
// A property prev did not request always counts as different.
func (t *Target) differs(prev *Target, p Property) bool {
	if !t.Has(p) {
		return false
	}
	if !prev.Has(p) {
		return true
	}
	switch p {
	case PropertyOffset:
		return t.values.Offset != prev.values.Offset
	case PropertyOpacity:
		return t.values.Opacity != prev.values.Opacity
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
