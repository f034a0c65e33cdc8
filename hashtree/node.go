package hashtree

import (
	"io"
	"math/bits"

	"github.com/meridiandb/documentkit/slice"
)

// A node is one of *interior, *leaf or *collision.
type node[V any] interface {
	dump(w io.Writer, level int)
}

// An interior node holds a 32-bit bitmap and a dense array of children. Bit p
// is set iff a child exists for hash-slice value p; that child's index in the
// dense array is the population count of the bits below p.
type interior[V any] struct {
	bitmap   uint32
	children []node[V]
}

func (n *interior[V]) hasChild(bit uint32) bool {
	return n.bitmap&(1<<bit) != 0
}

func (n *interior[V]) childIndex(bit uint32) int {
	return bits.OnesCount32(n.bitmap & (1<<bit - 1))
}

func (n *interior[V]) child(bit uint32) node[V] {
	return n.children[n.childIndex(bit)]
}

func (n *interior[V]) addChild(bit uint32, c node[V]) {
	i := n.childIndex(bit)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	n.bitmap |= 1 << bit
}

func (n *interior[V]) replaceChild(bit uint32, c node[V]) {
	n.children[n.childIndex(bit)] = c
}

func (n *interior[V]) removeChild(bit uint32) {
	i := n.childIndex(bit)
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.bitmap &^= 1 << bit
}

// walk visits every entry below n, returning false on early stop.
func (n *interior[V]) walk(fn func(key slice.Slice, v V) bool) bool {
	for _, c := range n.children {
		switch c := c.(type) {
		case *interior[V]:
			if !c.walk(fn) {
				return false
			}
		case *leaf[V]:
			if !fn(c.key.Slice(), c.val) {
				return false
			}
		case *collision[V]:
			for i := range c.entries {
				if !fn(c.entries[i].key.Slice(), c.entries[i].val) {
					return false
				}
			}
		}
	}
	return true
}

// A leaf holds a single entry. The key bytes are owned by the tree.
type leaf[V any] struct {
	key slice.Buffer
	val V
}

// A collision leaf holds the entries of keys whose hash slices agree through
// every interior level.
type collision[V any] struct {
	entries []entry[V]
}

type entry[V any] struct {
	key slice.Buffer
	val V
}
