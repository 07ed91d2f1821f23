package screen

import (
	"slices"

	"github.com/grindlemire/go-motion/internal/debug"
)

// Timeline advances every running Player against a Clock.
type Timeline struct {
	clock   Clock
	players []*Player
}

// NewTimeline creates a timeline reading clock. A nil clock uses the
// system clock.
func NewTimeline(clock Clock) *Timeline {
	if clock == nil {
		clock = SystemClock()
	}
	return &Timeline{clock: clock}
}

// Clock returns the timeline's clock.
func (tl *Timeline) Clock() Clock {
	return tl.clock
}

// Active returns the number of running players.
func (tl *Timeline) Active() int {
	return len(tl.players)
}

// Tick advances every running player to the clock's current time, firing
// finish events for those that complete. Handlers may start or cancel
// players; players started during a tick first advance on the next one.
// It returns the number of players still running.
func (tl *Timeline) Tick() int {
	now := tl.clock.Now()
	for _, p := range slices.Clone(tl.players) {
		p.advance(now)
	}
	if len(tl.players) > 0 {
		debug.Log("Timeline.Tick: %d players running", len(tl.players))
	}
	return len(tl.players)
}

func (tl *Timeline) add(p *Player) {
	p.start = tl.clock.Now()
	tl.players = append(tl.players, p)
}

func (tl *Timeline) remove(p *Player) {
	if i := slices.Index(tl.players, p); i >= 0 {
		tl.players = slices.Delete(tl.players, i, i+1)
	}
}
