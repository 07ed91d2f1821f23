package motion

import "github.com/grindlemire/go-motion/internal/debug"

// Item is one entry of the caller's logical list. Items without a key are
// rendered as-is and never animate out: once removed there is no way to
// refer to them.
type Item[K comparable, T any] struct {
	Key   K
	Keyed bool
	Value T
}

// Keyed builds an item that takes part in exit tracking.
func Keyed[K comparable, T any](key K, value T) Item[K, T] {
	return Item[K, T]{Key: key, Keyed: true, Value: value}
}

// Unkeyed builds an item that is never exit-tracked.
func Unkeyed[K comparable, T any](value T) Item[K, T] {
	return Item[K, T]{Value: value}
}

// Entry is one element of the tracked list, in render order.
type Entry[K comparable, T any] struct {
	Item[K, T]

	// Present is false while the item is animating out.
	Present bool

	// Child is the item's presence relay; nil for unkeyed items.
	Child *PresenceChild
}

type tracked[K comparable, T any] struct {
	item    Item[K, T]
	present bool
}

// PresenceOption configures an AnimPresence.
type PresenceOption func(*presenceConfig)

type presenceConfig struct {
	onChange func()
}

// OnChange registers fn to run whenever an exiting item is dropped from the
// tracked list. Hosts use it to schedule a re-render.
func OnChange(fn func()) PresenceOption {
	return func(c *presenceConfig) {
		c.onChange = fn
	}
}

// AnimPresence keeps a tracked list in sync with the caller's ordered list
// while keeping removed items rendered until they report safe-to-remove.
//
// Per render pass the host calls Sync with the caller's list, renders
// Entries (handing each Child's Context to the item's subtree), commits,
// then calls EndPass.
type AnimPresence[K comparable, T any] struct {
	tracked  []tracked[K, T]
	children map[K]*PresenceChild
	last     []Item[K, T]
	synced   bool
	config   presenceConfig
}

// NewAnimPresence creates an empty tracker.
func NewAnimPresence[K comparable, T any](opts ...PresenceOption) *AnimPresence[K, T] {
	p := &AnimPresence[K, T]{children: make(map[K]*PresenceChild)}
	for _, opt := range opts {
		opt(&p.config)
	}
	return p
}

// Sync reconciles the tracked list with items. The merge only runs when
// items is a different slice from the previous call (different backing
// array or length); re-passing the same slice is not a change.
//
// Build a new slice for every change. Editing the previous slice in place,
// or refilling it with append(items[:0], ...) to the same length, is not
// seen as a change and the merge is skipped.
//
// Every item in the new list is tracked as present, in the new order.
// Previously tracked keyed items missing from the new list are re-inserted
// at their previous index as absent, so they can animate out in place.
//
// Duplicate keys in items return an error matching ErrInvariantViolation
// and leave the tracked list unchanged.
func (p *AnimPresence[K, T]) Sync(items []Item[K, T]) error {
	if p.synced && sameSlice(items, p.last) {
		return nil
	}

	keys := make(map[K]bool, len(items))
	for _, it := range items {
		if !it.Keyed {
			continue
		}
		if keys[it.Key] {
			return invariant("AnimPresence.Sync", "duplicate key %v", it.Key)
		}
		keys[it.Key] = true
	}
	p.last = items
	p.synced = true

	merged := make([]tracked[K, T], 0, len(items)+len(p.tracked))
	for _, it := range items {
		merged = append(merged, tracked[K, T]{item: it, present: true})
	}
	for i, old := range p.tracked {
		if !old.item.Keyed || keys[old.item.Key] {
			continue
		}
		exiting := tracked[K, T]{item: old.item, present: false}
		idx := min(i, len(merged))
		merged = append(merged, tracked[K, T]{})
		copy(merged[idx+1:], merged[idx:])
		merged[idx] = exiting
	}
	p.tracked = merged

	live := make(map[K]bool, len(merged))
	for _, t := range merged {
		if !t.item.Keyed {
			continue
		}
		key := t.item.Key
		live[key] = true
		remove := p.remover(key)
		if child, ok := p.children[key]; ok {
			child.Update(t.present, remove)
		} else {
			p.children[key] = NewPresenceChild(t.present, remove)
		}
	}
	for key := range p.children {
		if !live[key] {
			delete(p.children, key)
		}
	}
	debug.Log("AnimPresence.Sync: %d items, %d tracked", len(items), len(merged))
	return nil
}

// remover returns the safe-to-remove callback for key. It drops the key's
// entry only while that entry is still absent, which makes late or repeated
// calls harmless: after a re-insertion the entry is present again, after a
// removal it is gone.
func (p *AnimPresence[K, T]) remover(key K) func() {
	return func() {
		for i, t := range p.tracked {
			if !t.item.Keyed || t.item.Key != key {
				continue
			}
			if t.present {
				debug.Log("AnimPresence: ignoring stale safe-to-remove for %v", key)
				return
			}
			p.tracked = append(p.tracked[:i:i], p.tracked[i+1:]...)
			delete(p.children, key)
			if p.config.onChange != nil {
				p.config.onChange()
			}
			return
		}
	}
}

// EndPass runs the default removal policy of every child after the host has
// committed the pass: absent items nobody consumed are removed now.
func (p *AnimPresence[K, T]) EndPass() {
	children := make([]*PresenceChild, 0, len(p.children))
	for _, t := range p.tracked {
		if !t.item.Keyed {
			continue
		}
		if child, ok := p.children[t.item.Key]; ok {
			children = append(children, child)
		}
	}
	for _, child := range children {
		child.EndPass()
	}
}

// Entries returns the tracked list in render order.
func (p *AnimPresence[K, T]) Entries() []Entry[K, T] {
	out := make([]Entry[K, T], len(p.tracked))
	for i, t := range p.tracked {
		out[i] = Entry[K, T]{Item: t.item, Present: t.present}
		if t.item.Keyed {
			out[i].Child = p.children[t.item.Key]
		}
	}
	return out
}

// Keys returns the keys of the tracked list in render order, skipping
// unkeyed items.
func (p *AnimPresence[K, T]) Keys() []K {
	keys := make([]K, 0, len(p.tracked))
	for _, t := range p.tracked {
		if t.item.Keyed {
			keys = append(keys, t.item.Key)
		}
	}
	return keys
}

// Len returns the number of tracked entries.
func (p *AnimPresence[K, T]) Len() int {
	return len(p.tracked)
}

// Child returns the presence relay for key, or nil.
func (p *AnimPresence[K, T]) Child(key K) *PresenceChild {
	return p.children[key]
}

func sameSlice[E any](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
