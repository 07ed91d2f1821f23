package motion

import (
	"testing"
	"time"
)

func TestNewTarget(t *testing.T) {
	target := NewTarget(WithOffset(1, -2), WithOpacity(1.7), WithDuration(time.Second), WithEasing(Linear))

	if !target.Has(PropertyOffset) || !target.Has(PropertyOpacity) {
		t.Error("both properties should be requested")
	}
	if got := target.Values(); got != (Style{Offset: Offset{X: 1, Y: -2}, Opacity: 1}) {
		t.Errorf("Values() = %+v, want offset {1 -2} and clamped opacity 1", got)
	}
	if got := target.Timing(); got != (Options{Duration: time.Second, Easing: Linear}) {
		t.Errorf("Timing() = %+v", got)
	}
}

func TestTarget_NilIsEmpty(t *testing.T) {
	var target *Target
	if target.Has(PropertyOpacity) || target.Values() != (Style{}) || target.Timing() != (Options{}) {
		t.Error("a nil target should request nothing")
	}
	if NewTarget().Has(Property(7)) {
		t.Error("Has() of an unknown property should be false")
	}
}

func TestTarget_Differs(t *testing.T) {
	type tc struct {
		prev *Target
		next *Target
		p    Property
		want bool
	}

	tests := map[string]tc{
		"first request":         {prev: nil, next: NewTarget(WithOpacity(1)), p: PropertyOpacity, want: true},
		"same value":            {prev: NewTarget(WithOpacity(1)), next: NewTarget(WithOpacity(1)), p: PropertyOpacity, want: false},
		"new value":             {prev: NewTarget(WithOpacity(1)), next: NewTarget(WithOpacity(0)), p: PropertyOpacity, want: true},
		"newly requested":       {prev: NewTarget(WithOpacity(1)), next: NewTarget(WithOffset(0, 0)), p: PropertyOffset, want: true},
		"no longer requested":   {prev: NewTarget(WithOffset(0, 0)), next: NewTarget(WithOpacity(1)), p: PropertyOffset, want: false},
		"offset moved":          {prev: NewTarget(WithOffset(1, 0)), next: NewTarget(WithOffset(1, 1)), p: PropertyOffset, want: true},
		"timing only unchanged": {prev: NewTarget(WithOpacity(1)), next: NewTarget(WithOpacity(1), WithDuration(time.Second)), p: PropertyOpacity, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.next.differs(tt.prev, tt.p); got != tt.want {
				t.Errorf("differs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptions_Merge(t *testing.T) {
	call := Options{Easing: Linear}
	target := Options{Duration: time.Second, Easing: EaseIn}

	got := call.merge(target).merge(globalOptions())

	if got != (Options{Duration: time.Second, Easing: Linear}) {
		t.Errorf("merge() = %+v", got)
	}
	if got := (Options{}).merge(globalOptions()); got != (Options{Duration: DefaultDuration, Easing: DefaultEasing}) {
		t.Errorf("empty merge() = %+v, want the global defaults", got)
	}
}

func TestStyle_GetWith(t *testing.T) {
	s := Style{Offset: Offset{X: 3}, Opacity: 0.4}

	if got := s.Get(PropertyOpacity); got != (Style{Opacity: 0.4}) {
		t.Errorf("Get(opacity) = %+v", got)
	}
	if got := DefaultStyle().With(PropertyOffset, s); got != (Style{Offset: Offset{X: 3}, Opacity: 1}) {
		t.Errorf("With(offset) = %+v", got)
	}
	if got := (Offset{X: 1, Y: 1}).Lerp(Offset{X: 3, Y: -1}, 0.5); got != (Offset{X: 2}) {
		t.Errorf("Lerp() = %+v, want {2 0}", got)
	}
}

func TestProperty_String(t *testing.T) {
	if PropertyOffset.String() != "offset" || PropertyOpacity.String() != "opacity" || Property(9).String() != "unknown" {
		t.Error("unexpected property names")
	}
}
