package screen

import (
	"math"
	"testing"
	"time"

	motion "github.com/grindlemire/go-motion"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestElement() (*Element, *Timeline, *ManualClock) {
	clock := NewManualClock(epoch)
	tl := NewTimeline(clock)
	return newElement("row", tl), tl, clock
}

func linear(d time.Duration) motion.Timing {
	return motion.Timing{Duration: d, Easing: motion.Linear, Fill: motion.FillBoth}
}

func opacityKeyframes(from, to float64) motion.Keyframes {
	return motion.Keyframes{
		Property: motion.PropertyOpacity,
		From:     motion.Style{Opacity: from},
		To:       motion.Style{Opacity: to},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestElement_AnimateRejectsBadTiming(t *testing.T) {
	tests := map[string]motion.Timing{
		"negative duration": {Duration: -time.Millisecond, Easing: motion.Linear},
		"unknown easing":    {Duration: time.Millisecond, Easing: "wobble"},
	}

	for name, timing := range tests {
		t.Run(name, func(t *testing.T) {
			el, tl, _ := newTestElement()

			anim, err := el.Animate(opacityKeyframes(0, 1), timing)

			if err == nil {
				t.Fatal("Animate() error = nil, want an error")
			}
			if anim != nil {
				t.Error("Animate() returned a handle alongside an error")
			}
			if tl.Active() != 0 || len(el.Players()) != 0 {
				t.Error("a rejected request should not start a player")
			}
		})
	}
}

func TestPlayer_SamplesByProgress(t *testing.T) {
	el, tl, clock := newTestElement()
	anim, err := el.Animate(opacityKeyframes(0, 1), linear(100*time.Millisecond))
	if err != nil {
		t.Fatalf("Animate() error = %v", err)
	}
	p := anim.(*Player)

	clock.Advance(25 * time.Millisecond)
	tl.Tick()

	if got := p.Value().Opacity; !almostEqual(got, 0.25) {
		t.Errorf("Value().Opacity = %v, want 0.25", got)
	}
	if got := el.Computed().Opacity; !almostEqual(got, 0.25) {
		t.Errorf("Computed().Opacity = %v, want 0.25", got)
	}
}

func TestPlayer_FinishFiresOnceAndHoldsFill(t *testing.T) {
	el, tl, clock := newTestElement()
	el.SetStyle(motion.Style{Opacity: 0.2})
	anim, _ := el.Animate(opacityKeyframes(0, 1), linear(100*time.Millisecond))
	finished, cancelled := 0, 0
	anim.OnFinish(func() { finished++ })
	anim.OnCancel(func() { cancelled++ })

	clock.Advance(150 * time.Millisecond)
	tl.Tick()
	tl.Tick()

	if finished != 1 || cancelled != 0 {
		t.Fatalf("events = (finish %d, cancel %d), want (1, 0)", finished, cancelled)
	}
	if tl.Active() != 0 {
		t.Errorf("Active() = %d after finish, want 0", tl.Active())
	}
	if got := el.Computed().Opacity; got != 1 {
		t.Errorf("fill should hold the final value, Computed().Opacity = %v", got)
	}

	anim.Cancel()

	if cancelled != 0 {
		t.Error("cancelling a finished player should not emit cancel")
	}
	if got := el.Computed().Opacity; got != 0.2 {
		t.Errorf("Computed().Opacity = %v after dropping fill, want resting 0.2", got)
	}
}

func TestPlayer_NoFillDropsEffectOnFinish(t *testing.T) {
	el, tl, clock := newTestElement()
	timing := linear(10 * time.Millisecond)
	timing.Fill = motion.FillNone
	el.Animate(opacityKeyframes(0, 0.5), timing)

	clock.Advance(10 * time.Millisecond)
	tl.Tick()

	if got := el.Computed().Opacity; got != 1 {
		t.Errorf("Computed().Opacity = %v, want resting 1", got)
	}
	if len(el.Players()) != 0 {
		t.Error("a finished player without fill should leave the element")
	}
}

func TestPlayer_CancelRunning(t *testing.T) {
	el, tl, clock := newTestElement()
	anim, _ := el.Animate(opacityKeyframes(0, 1), linear(100*time.Millisecond))
	finished, cancelled := 0, 0
	anim.OnFinish(func() { finished++ })
	anim.OnCancel(func() { cancelled++ })

	anim.Cancel()
	anim.Cancel()
	clock.Advance(time.Second)
	tl.Tick()

	if finished != 0 || cancelled != 1 {
		t.Errorf("events = (finish %d, cancel %d), want (0, 1)", finished, cancelled)
	}
	if got := el.Computed().Opacity; got != 1 {
		t.Errorf("Computed().Opacity = %v after cancel, want resting 1", got)
	}
}

func TestPlayer_HandlersAfterEventAreIgnored(t *testing.T) {
	el, tl, clock := newTestElement()
	anim, _ := el.Animate(opacityKeyframes(0, 1), linear(0))
	clock.Advance(time.Millisecond)
	tl.Tick()

	late := 0
	anim.OnFinish(func() { late++ })
	anim.OnCancel(func() { late++ })
	anim.Cancel()

	if late != 0 {
		t.Errorf("late handlers called %d times, want 0", late)
	}
}

func TestElement_VisualAddsAdditiveOffsets(t *testing.T) {
	el, tl, clock := newTestElement()
	el.SetStyle(motion.Style{Offset: motion.Offset{X: 1}, Opacity: 1})
	el.Animate(motion.Keyframes{
		Property: motion.PropertyOffset,
		From:     motion.Style{Offset: motion.Offset{Y: 4}},
		To:       motion.Style{},
	}, motion.Timing{Duration: 100 * time.Millisecond, Easing: motion.Linear, Composite: motion.CompositeAdd})

	clock.Advance(50 * time.Millisecond)
	tl.Tick()

	if got := el.Computed().Offset; got != (motion.Offset{X: 1}) {
		t.Errorf("Computed().Offset = %v, want additive effect excluded", got)
	}
	if got := el.Visual().Offset; got != (motion.Offset{X: 1, Y: 2}) {
		t.Errorf("Visual().Offset = %v, want {1 2}", got)
	}
}

func TestPlayer_CommitStyles(t *testing.T) {
	el, tl, clock := newTestElement()
	add, _ := el.Animate(motion.Keyframes{
		Property: motion.PropertyOffset,
		From:     motion.Style{Offset: motion.Offset{X: 2}},
		To:       motion.Style{},
	}, motion.Timing{Duration: 100 * time.Millisecond, Easing: motion.Linear, Composite: motion.CompositeAdd})
	replace, _ := el.Animate(opacityKeyframes(0, 1), linear(100*time.Millisecond))

	clock.Advance(50 * time.Millisecond)
	tl.Tick()
	add.CommitStyles()
	replace.CommitStyles()

	got := el.Resting()
	if got.Offset != (motion.Offset{X: 1}) || !almostEqual(got.Opacity, 0.5) {
		t.Errorf("Resting() = %+v, want offset {1 0} and opacity 0.5", got)
	}
}

func TestTimeline_StartedDuringTickWaitsForNextTick(t *testing.T) {
	el, tl, clock := newTestElement()
	first, _ := el.Animate(opacityKeyframes(0, 1), linear(0))
	var second motion.Animation
	first.OnFinish(func() {
		second, _ = el.Animate(opacityKeyframes(1, 0), linear(0))
	})

	clock.Advance(time.Millisecond)
	if n := tl.Tick(); n != 1 {
		t.Fatalf("Tick() = %d running, want 1 (the chained player)", n)
	}
	if !second.(*Player).Running() {
		t.Fatal("chained player finished in the tick that started it")
	}

	tl.Tick()

	if second.(*Player).Running() {
		t.Error("chained player should finish on the following tick")
	}
}

func TestNewTimeline_NilClockUsesSystemClock(t *testing.T) {
	tl := NewTimeline(nil)
	if tl.Clock() == nil {
		t.Fatal("Clock() = nil")
	}
	if d := time.Since(tl.Clock().Now()); d < 0 || d > time.Minute {
		t.Errorf("system clock is off by %v", d)
	}
}

func TestManualClock_Advance(t *testing.T) {
	c := NewManualClock(epoch)
	c.Advance(time.Second)
	if got := c.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("Now() = %v, want %v", got, epoch.Add(time.Second))
	}
}
