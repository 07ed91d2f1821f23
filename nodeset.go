package motion

// NodeSet is an arena of Nodes indexed by key. Each key owns exactly one
// node for as long as the key keeps being rendered.
//
// It uses mark-and-sweep: every render pass marks the keys it renders via
// Node, then Sweep unmounts and drops the nodes of keys that were not
// marked.
type NodeSet[K comparable] struct {
	nodes  map[K]*Node
	active map[K]bool // marked during the pass, reset by Sweep
	init   func(K, *Node)
}

// NewNodeSet creates an empty arena. init, if non-nil, runs once for each
// node when its key is first seen (e.g. to set default options).
func NewNodeSet[K comparable](init func(K, *Node)) *NodeSet[K] {
	return &NodeSet[K]{
		nodes:  make(map[K]*Node),
		active: make(map[K]bool),
		init:   init,
	}
}

// Node returns the node for key, creating it on first use, and marks the
// key as rendered this pass.
func (s *NodeSet[K]) Node(key K) *Node {
	s.active[key] = true
	n, ok := s.nodes[key]
	if !ok {
		n = NewNode()
		s.nodes[key] = n
		if s.init != nil {
			s.init(key, n)
		}
	}
	return n
}

// Get returns the node for key without marking it, or nil.
func (s *NodeSet[K]) Get(key K) *Node {
	return s.nodes[key]
}

// Len returns the number of live nodes.
func (s *NodeSet[K]) Len() int {
	return len(s.nodes)
}

// Each calls fn for every live node. Order is unspecified.
func (s *NodeSet[K]) Each(fn func(K, *Node)) {
	for k, n := range s.nodes {
		fn(k, n)
	}
}

// Sweep unmounts and removes every node whose key was not marked since the
// last sweep, then resets the marks. It returns the removed keys.
func (s *NodeSet[K]) Sweep() []K {
	var removed []K
	for key, n := range s.nodes {
		if !s.active[key] {
			n.Unmount()
			delete(s.nodes, key)
			removed = append(removed, key)
		}
	}
	s.active = make(map[K]bool)
	return removed
}
