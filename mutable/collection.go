package mutable

// A Collection is the mutation-tracking base shared by mutable overlays. It
// holds back-references to the [Value] slot that owns it and to its parent
// collection, and a dirty flag that propagates toward the root on first
// mutation.
//
// Collections form a tree rooted at the user-held handle; no cycles are
// possible.
type Collection[N any] struct {
	slot       *Value[N]
	parent     *Collection[N]
	sharedKeys SharedKeys
	mutated    bool
}

// Init installs the back-references. Both may be nil for a root collection.
// The shared-keys reference is inherited from the parent.
func (c *Collection[N]) Init(slot *Value[N], parent *Collection[N]) {
	c.slot = slot
	c.parent = parent
	c.mutated = false
	if parent != nil {
		c.sharedKeys = parent.sharedKeys
	}
}

// Slot returns the value slot that owns this collection, if any.
func (c *Collection[N]) Slot() *Value[N] { return c.slot }

// Parent returns the parent collection, if any.
func (c *Collection[N]) Parent() *Collection[N] { return c.parent }

// SetSharedKeys sets the interning map handed through to encoded-dictionary
// lookups.
func (c *Collection[N]) SetSharedKeys(sk SharedKeys) { c.sharedKeys = sk }

// SharedKeys returns the interning map, if any.
func (c *Collection[N]) SharedKeys() SharedKeys { return c.sharedKeys }

// Mutate marks the collection as mutated and walks toward the root, marking
// ancestors until one that is already marked.
func (c *Collection[N]) Mutate() {
	for n := c; n != nil && !n.mutated; n = n.parent {
		n.mutated = true
	}
}

// IsMutated reports whether the collection, or any collection below it, has
// been mutated since Init.
func (c *Collection[N]) IsMutated() bool { return c.mutated }
