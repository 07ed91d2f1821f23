package config

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Script replays the steps of a Config against a list of keys.
type Script struct {
	steps []Step
	next  int
	keys  []string
	rng   *rand.Rand
}

// NewScript starts a script at the configured items.
func NewScript(c Config) *Script {
	return &Script{
		steps: c.Steps,
		keys:  slices.Clone(c.Items),
		rng:   rand.New(rand.NewPCG(c.Seed, c.Seed)),
	}
}

// Keys returns the current list. Every call after a change returns a new
// slice, so a caller can hand it to a presence tracker as a new list.
func (s *Script) Keys() []string {
	return s.keys
}

// Done reports whether every step has been applied.
func (s *Script) Done() bool {
	return s.next >= len(s.steps)
}

// NextAt returns the time of the next unapplied step.
func (s *Script) NextAt() (time.Duration, bool) {
	if s.Done() {
		return 0, false
	}
	return s.steps[s.next].At, true
}

// Advance applies every step due at elapsed and reports whether the list
// changed.
func (s *Script) Advance(elapsed time.Duration) bool {
	changed := false
	for s.next < len(s.steps) && s.steps[s.next].At <= elapsed {
		s.keys = s.steps[s.next].Apply(s.keys, s.rng)
		s.next++
		changed = true
	}
	return changed
}

// Apply returns keys edited by the step. keys is not modified.
func (st Step) Apply(keys []string, rng *rand.Rand) []string {
	out := slices.Clone(keys)
	switch st.Op {
	case OpSet:
		out = slices.Clone(st.Keys)
	case OpAdd:
		for _, k := range st.Keys {
			if !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
	case OpRemove:
		out = slices.DeleteFunc(out, func(k string) bool {
			return slices.Contains(st.Keys, k)
		})
	case OpReverse:
		slices.Reverse(out)
	case OpShuffle:
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	if out == nil {
		out = []string{}
	}
	return out
}
