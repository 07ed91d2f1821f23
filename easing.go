package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing is a CSS timing-function name, e.g. "ease-out",
// "cubic-bezier(0.2, 0, 0, 1)" or "steps(4, end)".
type Easing string

const (
	Linear    Easing = "linear"
	Ease      Easing = "ease"
	EaseIn    Easing = "ease-in"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"
	StepStart Easing = "step-start"
	StepEnd   Easing = "step-end"
)

// CubicBezier builds a cubic-bezier easing.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return Easing(fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", x1, y1, x2, y2))
}

// Steps builds a steps easing. jumpStart selects "start" over "end".
func Steps(n int, jumpStart bool) Easing {
	pos := "end"
	if jumpStart {
		pos = "start"
	}
	return Easing(fmt.Sprintf("steps(%d, %s)", n, pos))
}

// ParseEasing validates e and returns its progress curve, mapping linear
// time in [0, 1] to eased progress.
func ParseEasing(e Easing) (func(float64) float64, error) {
	s := strings.TrimSpace(string(e))
	switch Easing(s) {
	case Linear:
		return func(t float64) float64 { return t }, nil
	case Ease:
		return bezier(0.25, 0.1, 0.25, 1), nil
	case EaseIn:
		return bezier(0.42, 0, 1, 1), nil
	case EaseOut:
		return bezier(0, 0, 0.58, 1), nil
	case EaseInOut:
		return bezier(0.42, 0, 0.58, 1), nil
	case StepStart:
		return steps(1, true), nil
	case StepEnd:
		return steps(1, false), nil
	}

	name, args, ok := splitCall(s)
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", s)
	}
	switch name {
	case "cubic-bezier":
		if len(args) != 4 {
			return nil, fmt.Errorf("cubic-bezier takes 4 arguments, got %d", len(args))
		}
		var p [4]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("cubic-bezier argument %d: %w", i+1, err)
			}
			p[i] = v
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return nil, fmt.Errorf("cubic-bezier x values must be in [0, 1]")
		}
		return bezier(p[0], p[1], p[2], p[3]), nil
	case "steps":
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("steps takes 1 or 2 arguments, got %d", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("steps count must be a positive integer, got %q", args[0])
		}
		jumpStart := false
		if len(args) == 2 {
			switch args[1] {
			case "start", "jump-start":
				jumpStart = true
			case "end", "jump-end":
			default:
				return nil, fmt.Errorf("unknown steps position %q", args[1])
			}
		}
		return steps(n, jumpStart), nil
	}
	return nil, fmt.Errorf("unknown easing %q", s)
}

// Func returns the progress curve for e, falling back to linear when e
// does not parse.
func (e Easing) Func() func(float64) float64 {
	fn, err := ParseEasing(e)
	if err != nil {
		return func(t float64) float64 { return t }
	}
	return fn
}

func splitCall(s string) (name string, args []string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name = strings.TrimSpace(s[:open])
	for _, a := range strings.Split(s[open+1:len(s)-1], ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return name, args, true
}

func steps(n int, jumpStart bool) func(float64) float64 {
	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		if t <= 0 {
			if jumpStart {
				return 1 / float64(n)
			}
			return 0
		}
		step := math.Floor(t * float64(n))
		if jumpStart {
			step++
		}
		return math.Min(step/float64(n), 1)
	}
}

// bezier returns a solver for the unit cubic bezier through (0,0), (x1,y1),
// (x2,y2), (1,1), evaluated as y for a given x.
func bezier(x1, y1, x2, y2 float64) func(float64) float64 {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-6
	solve := func(x float64) float64 {
		// Newton's method first, bisection if it does not converge.
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < epsilon {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < epsilon {
				break
			}
			t -= dx / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			if hi-lo < epsilon {
				break
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return sampleY(solve(x))
	}
}
