package screen

import "sync"

// RefMap holds keyed references to the elements on a Stage.
// Thread-safe, so a snapshot can be read while the loop runs.
type RefMap[K comparable] struct {
	mu    sync.RWMutex
	elems map[K]*Element
}

// NewRefMap creates a new empty RefMap.
func NewRefMap[K comparable]() *RefMap[K] {
	return &RefMap[K]{elems: make(map[K]*Element)}
}

// Put stores an element with the given key.
func (r *RefMap[K]) Put(key K, el *Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elems[key] = el
}

// Get returns the element for the given key, or nil if not found.
func (r *RefMap[K]) Get(key K) *Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.elems[key]
}

// Delete removes key and returns the element it held, or nil.
func (r *RefMap[K]) Delete(key K) *Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	el := r.elems[key]
	delete(r.elems, key)
	return el
}

// All returns a copy of all keyed elements.
func (r *RefMap[K]) All() map[K]*Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[K]*Element, len(r.elems))
	for k, v := range r.elems {
		out[k] = v
	}
	return out
}

// Len returns the number of elements in this ref map.
func (r *RefMap[K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elems)
}
