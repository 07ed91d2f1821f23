package motion

// Presence is what a descendant receives when it consumes its item's
// presence context.
type Presence struct {
	// IsPresent is false once the item has been removed from the caller's
	// list and is only still rendered so it can animate out.
	IsPresent bool

	// SafeToRemove tells the list the item has finished animating out.
	// Calls after the first, or while the item is present, have no effect.
	SafeToRemove func()
}

// Drive applies the presence flag to node. While present the node is asked
// for enter; once absent it is asked for exit and SafeToRemove is
// registered to fire when the node's animations have drained.
func (p Presence) Drive(node *Node, enter, exit *Target) {
	if p.IsPresent {
		node.SetFinishedAnimatingCallback(nil)
		node.AnimateTo(enter)
		return
	}
	node.AnimateTo(exit)
	node.SetFinishedAnimatingCallback(p.SafeToRemove)
}

// PresenceContext is the per-item value passed down to an item's subtree.
//
// A nil *PresenceContext stands for "not rendered inside an AnimPresence":
// consuming it yields an item that is always present and whose
// SafeToRemove does nothing.
type PresenceContext struct {
	isPresent       bool
	onSafeToRemove  func()
	removalDeferred bool
}

// Consume returns the item's presence and marks removal as deferred: the
// caller promises to call SafeToRemove once it is done animating out, so
// the item is no longer removed immediately when it leaves the list.
func (c *PresenceContext) Consume() Presence {
	if c == nil {
		return Presence{IsPresent: true, SafeToRemove: func() {}}
	}
	c.removalDeferred = true
	return Presence{IsPresent: c.isPresent, SafeToRemove: c.onSafeToRemove}
}

// IsPresent reads the flag without consuming the context.
func (c *PresenceContext) IsPresent() bool {
	if c == nil {
		return true
	}
	return c.isPresent
}

// RemovalDeferred reports whether a descendant has consumed the context.
func (c *PresenceContext) RemovalDeferred() bool {
	return c != nil && c.removalDeferred
}

// PresenceChild relays one tracked item's presence flag to its subtree and
// gates its physical removal.
type PresenceChild struct {
	ctx PresenceContext
}

// NewPresenceChild wraps an item. onSafeToRemove must not be nil.
func NewPresenceChild(isPresent bool, onSafeToRemove func()) *PresenceChild {
	if onSafeToRemove == nil {
		panic("motion: nil onSafeToRemove in NewPresenceChild")
	}
	return &PresenceChild{ctx: PresenceContext{
		isPresent:      isPresent,
		onSafeToRemove: onSafeToRemove,
	}}
}

// Update refreshes the flag and callback for a new render pass. Whether
// removal was deferred carries over.
func (c *PresenceChild) Update(isPresent bool, onSafeToRemove func()) {
	c.ctx.isPresent = isPresent
	if onSafeToRemove != nil {
		c.ctx.onSafeToRemove = onSafeToRemove
	}
}

// IsPresent reports whether the item is still wanted.
func (c *PresenceChild) IsPresent() bool {
	return c.ctx.isPresent
}

// RemovalDeferred reports whether a descendant consumed the context.
func (c *PresenceChild) RemovalDeferred() bool {
	return c.ctx.removalDeferred
}

// Context returns the context to hand to the item's subtree.
func (c *PresenceChild) Context() *PresenceContext {
	return &c.ctx
}

// EndPass applies the default removal policy at the end of a render pass:
// an absent item that nothing in its subtree consumed is safe to remove
// right away.
func (c *PresenceChild) EndPass() {
	if !c.ctx.isPresent && !c.ctx.removalDeferred {
		c.ctx.onSafeToRemove()
	}
}
