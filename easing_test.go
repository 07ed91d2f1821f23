package motion

import (
	"math"
	"testing"
)

func TestParseEasing_Curves(t *testing.T) {
	type tc struct {
		easing Easing
		at     float64
		want   float64
	}

	tests := map[string]tc{
		"linear midpoint":          {easing: Linear, at: 0.3, want: 0.3},
		"ease-in-out symmetric":    {easing: EaseInOut, at: 0.5, want: 0.5},
		"bezier linear equivalent": {easing: CubicBezier(0.25, 0.25, 0.75, 0.75), at: 0.4, want: 0.4},
		"step-start jumps":         {easing: StepStart, at: 0.01, want: 1},
		"step-end holds":           {easing: StepEnd, at: 0.99, want: 0},
		"steps end":                {easing: Steps(4, false), at: 0.6, want: 0.5},
		"steps start":              {easing: Steps(4, true), at: 0.6, want: 0.75},
		"steps jump-end keyword":   {easing: "steps(2, jump-end)", at: 0.5, want: 0.5},
		"steps default position":   {easing: "steps(2)", at: 0.25, want: 0},
		"whitespace is trimmed":    {easing: "  linear ", at: 0.7, want: 0.7},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fn, err := ParseEasing(tt.easing)
			if err != nil {
				t.Fatalf("ParseEasing(%q) error = %v", tt.easing, err)
			}
			if got := fn(tt.at); math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("%q(%v) = %v, want %v", tt.easing, tt.at, got, tt.want)
			}
		})
	}
}

func TestParseEasing_Endpoints(t *testing.T) {
	for _, e := range []Easing{Linear, Ease, EaseIn, EaseOut, EaseInOut, CubicBezier(0.2, -0.5, 0.8, 1.5)} {
		fn, err := ParseEasing(e)
		if err != nil {
			t.Fatalf("ParseEasing(%q) error = %v", e, err)
		}
		if fn(0) != 0 || fn(1) != 1 {
			t.Errorf("%q endpoints = (%v, %v), want (0, 1)", e, fn(0), fn(1))
		}
	}
}

func TestParseEasing_EaseOutIsFrontLoaded(t *testing.T) {
	fn, err := ParseEasing(EaseOut)
	if err != nil {
		t.Fatalf("ParseEasing() error = %v", err)
	}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		x := float64(i) / 10
		y := fn(x)
		if y < prev {
			t.Fatalf("ease-out not monotonic at %v: %v < %v", x, y, prev)
		}
		if i < 10 && y <= x {
			t.Errorf("ease-out(%v) = %v, want above the diagonal", x, y)
		}
		prev = y
	}
}

func TestParseEasing_Rejects(t *testing.T) {
	tests := []Easing{
		"",
		"bouncy",
		"cubic-bezier(1, 2, 3)",
		"cubic-bezier(a, 0, 1, 1)",
		"cubic-bezier(1.5, 0, 0.5, 1)",
		"steps(0)",
		"steps(two)",
		"steps(2, middle)",
		"steps(1, 2, 3)",
		"wobble(1)",
		"(1)",
	}

	for _, e := range tests {
		t.Run(string(e), func(t *testing.T) {
			if _, err := ParseEasing(e); err == nil {
				t.Errorf("ParseEasing(%q) error = nil, want an error", e)
			}
		})
	}
}

func TestEasing_FuncFallsBackToLinear(t *testing.T) {
	fn := Easing("nonsense").Func()
	if got := fn(0.42); got != 0.42 {
		t.Errorf("fallback(0.42) = %v, want 0.42", got)
	}
	if got := EaseIn.Func()(0.5); got >= 0.5 {
		t.Errorf("ease-in(0.5) = %v, want below 0.5", got)
	}
}
