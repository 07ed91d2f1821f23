package screen

import (
	"time"

	motion "github.com/grindlemire/go-motion"
)

var _ motion.Animation = (*Player)(nil)

type playState int

const (
	playRunning playState = iota
	playFinished
	playCancelled
)

// Player plays one set of keyframes on an Element. It implements
// motion.Animation.
type Player struct {
	el       *Element
	timeline *Timeline
	kf       motion.Keyframes
	timing   motion.Timing
	ease     func(float64) float64
	start    time.Time

	progress float64 // linear, in [0, 1]
	state    playState
	applied  bool // effect is part of the element's style

	onFinish []func()
	onCancel []func()
}

// OnFinish registers fn to run when the player completes naturally.
func (p *Player) OnFinish(fn func()) {
	if p.state == playRunning {
		p.onFinish = append(p.onFinish, fn)
	}
}

// OnCancel registers fn to run when the player is cancelled.
func (p *Player) OnCancel(fn func()) {
	if p.state == playRunning {
		p.onCancel = append(p.onCancel, fn)
	}
}

// Keyframes returns what the player animates.
func (p *Player) Keyframes() motion.Keyframes {
	return p.kf
}

// Timing returns how the player animates.
func (p *Player) Timing() motion.Timing {
	return p.timing
}

// Running reports whether the player has neither finished nor been cancelled.
func (p *Player) Running() bool {
	return p.state == playRunning
}

// Progress returns the linear progress in [0, 1].
func (p *Player) Progress() float64 {
	return p.progress
}

// Value samples the player at its current progress.
func (p *Player) Value() motion.Style {
	t := p.ease(p.progress)
	var out motion.Style
	switch p.kf.Property {
	case motion.PropertyOffset:
		out.Offset = p.kf.From.Offset.Lerp(p.kf.To.Offset, t)
	case motion.PropertyOpacity:
		out.Opacity = p.kf.From.Opacity + (p.kf.To.Opacity-p.kf.From.Opacity)*t
	}
	return out
}

// Cancel stops a running player and drops its effect, emitting cancel.
// On a finished player it only drops the lingering fill.
func (p *Player) Cancel() {
	switch p.state {
	case playCancelled:
		return
	case playFinished:
		p.detach()
		return
	}
	p.state = playCancelled
	p.detach()
	handlers := p.onCancel
	p.onFinish, p.onCancel = nil, nil
	for _, fn := range handlers {
		fn()
	}
}

// CommitStyles writes the current value into the element's resting style.
func (p *Player) CommitStyles() {
	v := p.Value()
	if p.timing.Composite == motion.CompositeAdd {
		p.el.resting.Offset = p.el.resting.Offset.Add(v.Offset)
		return
	}
	p.el.resting = p.el.resting.With(p.kf.Property, v)
}

// advance moves the player to now and finishes it at the end of its
// duration.
func (p *Player) advance(now time.Time) {
	if p.state != playRunning {
		return
	}
	if p.timing.Duration <= 0 {
		p.progress = 1
	} else {
		p.progress = min(float64(now.Sub(p.start))/float64(p.timing.Duration), 1)
		if p.progress < 0 {
			p.progress = 0
		}
	}
	if p.progress < 1 {
		return
	}

	p.state = playFinished
	p.timeline.remove(p)
	if p.timing.Fill != motion.FillBoth {
		p.detach()
	}
	handlers := p.onFinish
	p.onFinish, p.onCancel = nil, nil
	for _, fn := range handlers {
		fn()
	}
}

func (p *Player) detach() {
	if p.applied {
		p.applied = false
		p.el.removePlayer(p)
	}
	p.timeline.remove(p)
}
