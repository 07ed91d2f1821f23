package motion

import "errors"

// fakeElement is an in-memory Element. Animations never advance on their
// own; tests settle them with finish or cancel.
type fakeElement struct {
	pos    Position
	style  Style
	anims  []*fakeAnimation
	reject bool
}

func newFakeElement() *fakeElement {
	return &fakeElement{style: DefaultStyle()}
}

func (e *fakeElement) MeasurePosition() Position { return e.pos }

func (e *fakeElement) Animate(kf Keyframes, timing Timing) (Animation, error) {
	if e.reject {
		return nil, errors.New("rejected")
	}
	a := &fakeAnimation{el: e, kf: kf, timing: timing}
	e.anims = append(e.anims, a)
	return a, nil
}

func (e *fakeElement) Computed() Style {
	s := e.style
	for _, a := range e.anims {
		if a.state != animRunning || a.timing.Composite != CompositeReplace {
			continue
		}
		s = s.With(a.kf.Property, a.Value())
	}
	return s
}

func (e *fakeElement) SetStyle(s Style) { e.style = s }

// running returns the running animations of property p.
func (e *fakeElement) running(p Property) []*fakeAnimation {
	var out []*fakeAnimation
	for _, a := range e.anims {
		if a.state == animRunning && a.kf.Property == p {
			out = append(out, a)
		}
	}
	return out
}

func (e *fakeElement) allRunning() []*fakeAnimation {
	var out []*fakeAnimation
	for _, a := range e.anims {
		if a.state == animRunning {
			out = append(out, a)
		}
	}
	return out
}

type animState int

const (
	animRunning animState = iota
	animFinished
	animCancelled
)

type fakeAnimation struct {
	el       *fakeElement
	kf       Keyframes
	timing   Timing
	progress float64
	state    animState

	onFinish []func()
	onCancel []func()

	finishEvents int
	cancelEvents int
	commits      int
}

func (a *fakeAnimation) OnFinish(fn func()) { a.onFinish = append(a.onFinish, fn) }
func (a *fakeAnimation) OnCancel(fn func()) { a.onCancel = append(a.onCancel, fn) }

func (a *fakeAnimation) Value() Style {
	switch a.kf.Property {
	case PropertyOffset:
		return Style{Offset: a.kf.From.Offset.Lerp(a.kf.To.Offset, a.progress)}
	case PropertyOpacity:
		return Style{Opacity: a.kf.From.Opacity + (a.kf.To.Opacity-a.kf.From.Opacity)*a.progress}
	}
	return Style{}
}

func (a *fakeAnimation) Cancel() {
	if a.state != animRunning {
		return
	}
	a.state = animCancelled
	a.cancelEvents++
	for _, fn := range a.onCancel {
		fn()
	}
}

func (a *fakeAnimation) CommitStyles() {
	a.commits++
	if a.timing.Composite == CompositeAdd {
		a.el.style.Offset = a.el.style.Offset.Add(a.Value().Offset)
		return
	}
	a.el.style = a.el.style.With(a.kf.Property, a.Value())
}

// advance moves the animation to progress p in [0, 1).
func (a *fakeAnimation) advance(p float64) {
	a.progress = p
}

// finish completes the animation naturally.
func (a *fakeAnimation) finish() {
	if a.state != animRunning {
		return
	}
	a.progress = 1
	a.state = animFinished
	a.finishEvents++
	for _, fn := range a.onFinish {
		fn()
	}
}
