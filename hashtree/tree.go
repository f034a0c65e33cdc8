// Package hashtree implements a mutable hash array-mapped trie keyed by byte
// strings. Interior nodes have a branching factor of 32 and are indexed by
// successive 5-bit slices of a 32-bit key hash; keys whose hash slices agree
// through every level share a collision leaf.
package hashtree

import "github.com/meridiandb/documentkit/slice"

const (
	bitsPerLevel = 5

	// maxLevel is the number of interior levels; six 5-bit slices consume
	// 30 of the 32 hash bits. Keys whose slices agree through all six
	// levels fall through to a collision leaf.
	maxLevel = 6
)

// A Tree maps byte-string keys to values of type V. Keys are copied into
// buffers owned by the tree; values are stored as given. Nodes are mutated in
// place: a Tree has a single owner and must not be mutated concurrently.
//
// The zero Tree is empty and ready for use.
type Tree[V any] struct {
	root  interior[V]
	count int

	// hashFn overrides the key-placement hash; nil means [slice.Hash].
	hashFn func([]byte) uint32
}

func (t *Tree[V]) hash(key slice.Slice) uint32 {
	if t.hashFn != nil {
		return t.hashFn(key)
	}
	return slice.Hash(key)
}

// hashSlice extracts the 5-bit slice of h consumed at the given level.
func hashSlice(h uint32, level int) uint32 {
	return (h >> (bitsPerLevel * uint(level))) & (1<<bitsPerLevel - 1)
}

// Count returns the number of entries.
func (t *Tree[V]) Count() int { return t.count }

// Get returns the value associated with key.
func (t *Tree[V]) Get(key slice.Slice) (V, bool) {
	var zero V
	h := t.hash(key)
	n := &t.root
	for level := 0; ; level++ {
		bit := hashSlice(h, level)
		if !n.hasChild(bit) {
			return zero, false
		}
		switch c := n.child(bit).(type) {
		case *interior[V]:
			n = c
		case *leaf[V]:
			if c.key.Slice().Equal(key) {
				return c.val, true
			}
			return zero, false
		case *collision[V]:
			for i := range c.entries {
				if c.entries[i].key.Slice().Equal(key) {
					return c.entries[i].val, true
				}
			}
			return zero, false
		}
	}
}

// Insert associates key with v, copying key into tree-owned storage. It
// returns true if the key was not already present; inserting over an existing
// key overwrites its value and leaves the count unchanged.
func (t *Tree[V]) Insert(key slice.Slice, v V) bool {
	added := t.insert(&t.root, 0, t.hash(key), key, v)
	if added {
		t.count++
	}
	return added
}

func (t *Tree[V]) insert(n *interior[V], level int, h uint32, key slice.Slice, v V) bool {
	bit := hashSlice(h, level)
	if !n.hasChild(bit) {
		n.addChild(bit, &leaf[V]{key: slice.BufferFrom(key), val: v})
		return true
	}
	switch c := n.child(bit).(type) {
	case *interior[V]:
		return t.insert(c, level+1, h, key, v)
	case *leaf[V]:
		if c.key.Slice().Equal(key) {
			c.val = v
			return false
		}
		n.replaceChild(bit, t.disambiguate(level+1, c, t.hash(c.key.Slice()), h, key, v))
		return true
	case *collision[V]:
		for i := range c.entries {
			if c.entries[i].key.Slice().Equal(key) {
				c.entries[i].val = v
				return false
			}
		}
		c.entries = append(c.entries, entry[V]{key: slice.BufferFrom(key), val: v})
		return true
	}
	panic("hashtree: unknown node variant")
}

// disambiguate builds the interior chain separating an existing leaf from a
// new entry whose hash slices agree above the given level, ending in a
// collision leaf if they agree through every interior level.
func (t *Tree[V]) disambiguate(level int, existing *leaf[V], eh, h uint32, key slice.Slice, v V) node[V] {
	if level == maxLevel {
		return &collision[V]{
			entries: []entry[V]{
				{key: existing.key, val: existing.val},
				{key: slice.BufferFrom(key), val: v},
			},
		}
	}
	n := &interior[V]{}
	ebit, bit := hashSlice(eh, level), hashSlice(h, level)
	if ebit == bit {
		n.addChild(bit, t.disambiguate(level+1, existing, eh, h, key, v))
	} else {
		n.addChild(ebit, existing)
		n.addChild(bit, &leaf[V]{key: slice.BufferFrom(key), val: v})
	}
	return n
}

// Remove deletes key, returning whether an entry was removed. On the way back
// up, an interior node left with a single leaf child is replaced by that
// child.
func (t *Tree[V]) Remove(key slice.Slice) bool {
	removed := t.remove(&t.root, 0, t.hash(key), key)
	if removed {
		t.count--
	}
	return removed
}

func (t *Tree[V]) remove(n *interior[V], level int, h uint32, key slice.Slice) bool {
	bit := hashSlice(h, level)
	if !n.hasChild(bit) {
		return false
	}
	switch c := n.child(bit).(type) {
	case *interior[V]:
		if !t.remove(c, level+1, h, key) {
			return false
		}
		if len(c.children) == 1 {
			// collapsing an interior child would shift its subtree's
			// level, and a collision leaf must stay where its keys' hash
			// slices all agree, so only lone plain leaves move up
			if _, isLeaf := c.children[0].(*leaf[V]); isLeaf {
				n.replaceChild(bit, c.children[0])
			}
		}
		return true
	case *leaf[V]:
		if !c.key.Slice().Equal(key) {
			return false
		}
		c.key.Release()
		n.removeChild(bit)
		return true
	case *collision[V]:
		for i := range c.entries {
			if !c.entries[i].key.Slice().Equal(key) {
				continue
			}
			c.entries[i].key.Release()
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			if len(c.entries) == 1 {
				n.replaceChild(bit, &leaf[V]{key: c.entries[0].key, val: c.entries[0].val})
			}
			return true
		}
		return false
	}
	panic("hashtree: unknown node variant")
}

// Range invokes fn for each entry in an unspecified order, stopping early if
// fn returns false.
func (t *Tree[V]) Range(fn func(key slice.Slice, v V) bool) {
	t.root.walk(fn)
}
