package hashtree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable structural dump of the tree to w, for
// diagnostics.
func (t *Tree[V]) Dump(w io.Writer) {
	fmt.Fprintf(w, "hashtree [%d entries]\n", t.count)
	t.root.dump(w, 0)
}

func (n *interior[V]) dump(w io.Writer, level int) {
	fmt.Fprintf(w, "%sinterior bitmap=%08x [%d children]\n", indent(level), n.bitmap, len(n.children))
	for _, c := range n.children {
		c.dump(w, level+1)
	}
}

func (n *leaf[V]) dump(w io.Writer, level int) {
	fmt.Fprintf(w, "%sleaf %q = %v\n", indent(level), n.key.String(), n.val)
}

func (n *collision[V]) dump(w io.Writer, level int) {
	fmt.Fprintf(w, "%scollision [%d entries]\n", indent(level), len(n.entries))
	for i := range n.entries {
		fmt.Fprintf(w, "%s%q = %v\n", indent(level+1), n.entries[i].key.String(), n.entries[i].val)
	}
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}
