package screen

import (
	"fmt"
	"slices"

	motion "github.com/grindlemire/go-motion"
)

var _ motion.Element = (*Element)(nil)

// Element is one keyed row on a Stage. Its layout rect comes from
// Stage.Layout; its visual style is the resting style overlaid with the
// effect of its players.
type Element struct {
	key      string
	text     string
	rect     Rect
	resting  motion.Style
	players  []*Player // applied players, in start order
	timeline *Timeline
}

func newElement(key string, tl *Timeline) *Element {
	return &Element{
		key:      key,
		text:     key,
		resting:  motion.DefaultStyle(),
		timeline: tl,
	}
}

// Key returns the element's key.
func (e *Element) Key() string {
	return e.key
}

// Text returns the row text.
func (e *Element) Text() string {
	return e.text
}

// SetText sets the row text.
func (e *Element) SetText(s string) {
	e.text = s
}

// Rect returns the laid-out rectangle.
func (e *Element) Rect() Rect {
	return e.rect
}

// SetRect sets the laid-out rectangle. Stage.Layout calls this.
func (e *Element) SetRect(r Rect) {
	e.rect = r
}

// MeasurePosition returns the laid-out top-left corner.
func (e *Element) MeasurePosition() motion.Position {
	return motion.Position{Top: e.rect.Y, Left: e.rect.X}
}

// Animate starts a player for kf. It fails for an invalid easing or a
// negative duration.
func (e *Element) Animate(kf motion.Keyframes, timing motion.Timing) (motion.Animation, error) {
	if timing.Duration < 0 {
		return nil, fmt.Errorf("negative duration %v", timing.Duration)
	}
	ease, err := motion.ParseEasing(timing.Easing)
	if err != nil {
		return nil, fmt.Errorf("animate %s: %w", e.key, err)
	}
	p := &Player{
		el:       e,
		timeline: e.timeline,
		kf:       kf,
		timing:   timing,
		ease:     ease,
		applied:  true,
	}
	e.players = append(e.players, p)
	e.timeline.add(p)
	return p, nil
}

// Computed returns the resting style overlaid with the replace players.
func (e *Element) Computed() motion.Style {
	s := e.resting
	for _, p := range e.players {
		if p.timing.Composite == motion.CompositeReplace {
			s = s.With(p.kf.Property, p.Value())
		}
	}
	return s
}

// Visual returns the style to paint: Computed plus additive offsets.
func (e *Element) Visual() motion.Style {
	s := e.Computed()
	for _, p := range e.players {
		if p.timing.Composite == motion.CompositeAdd && p.kf.Property == motion.PropertyOffset {
			s.Offset = s.Offset.Add(p.Value().Offset)
		}
	}
	return s
}

// SetStyle sets the resting style.
func (e *Element) SetStyle(s motion.Style) {
	e.resting = s
}

// Resting returns the resting style.
func (e *Element) Resting() motion.Style {
	return e.resting
}

// Players returns the applied players in start order.
func (e *Element) Players() []*Player {
	return slices.Clone(e.players)
}

// cancelAll cancels every player, used when the element leaves the stage.
func (e *Element) cancelAll() {
	for _, p := range slices.Clone(e.players) {
		p.Cancel()
	}
}

func (e *Element) removePlayer(p *Player) {
	if i := slices.Index(e.players, p); i >= 0 {
		e.players = slices.Delete(e.players, i, i+1)
	}
}
