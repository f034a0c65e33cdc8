package slice

import "sync/atomic"

// A Buffer is a reference-counted owning byte buffer presented as a [Slice]
// with shared ownership of the underlying block.
//
// A plain struct copy transfers the reference without adjusting the count;
// [Buffer.Retain] creates an additional reference. Once a second reference
// exists the bytes must be treated as immutable: [Buffer.Resize] and
// [Buffer.Append] allocate a fresh block unless the buffer is uniquely
// referenced. The count is adjusted atomically so references may be held by
// multiple goroutines, though a single Buffer must not be mutated
// concurrently.
type Buffer struct {
	refs *atomic.Int64
	b    []byte
}

func newRefs() *atomic.Int64 {
	r := new(atomic.Int64)
	r.Store(1)
	return r
}

// NewBuffer allocates a zero-initialized buffer of the given size.
func NewBuffer(size int) Buffer {
	return Buffer{refs: newRefs(), b: make([]byte, size)}
}

// BufferFrom allocates a buffer holding a copy of the viewed bytes.
func BufferFrom(v Slice) Buffer {
	b := NewBuffer(len(v))
	copy(b.b, v)
	return b
}

// NewCString allocates size+1 bytes, copies the view, and writes a NUL
// terminator after it. The advertised size excludes the terminator.
func NewCString(v Slice) Buffer {
	block := make([]byte, len(v)+1)
	copy(block, v)
	return Buffer{refs: newRefs(), b: block[:len(v)]}
}

// Slice returns a view of the buffer's bytes. The view is valid while at
// least one reference to the block exists.
func (b Buffer) Slice() Slice { return Slice(b.b) }

// Len returns the buffer's advertised size.
func (b Buffer) Len() int { return len(b.b) }

// String returns the buffer's contents as a string.
func (b Buffer) String() string { return string(b.b) }

// Shared reports whether more than one reference to the block exists.
func (b Buffer) Shared() bool { return b.refs != nil && b.refs.Load() > 1 }

// Retain returns an additional reference to the same block.
func (b Buffer) Retain() Buffer {
	if b.refs != nil {
		b.refs.Add(1)
	}
	return b
}

// Release drops one reference and invalidates this handle. The block itself
// is reclaimed by the collector once the last reference is gone.
func (b *Buffer) Release() {
	if b.refs == nil {
		return
	}
	if b.refs.Add(-1) < 0 {
		panic("slice: buffer released more times than retained")
	}
	b.refs = nil
	b.b = nil
}

// Resize changes the buffer's size to n, preserving the first min(old, n)
// bytes. The block is reused only when it is uniquely referenced and has the
// capacity; otherwise a fresh block is allocated and this handle's reference
// to the old one released.
func (b *Buffer) Resize(n int) {
	if b.refs == nil {
		*b = NewBuffer(n)
		return
	}
	if n == len(b.b) {
		return
	}
	if !b.Shared() && n <= cap(b.b) {
		old := len(b.b)
		b.b = b.b[:n]
		if n > old {
			clear(b.b[old:])
		}
		return
	}
	block := make([]byte, n)
	copy(block, b.b)
	b.Release()
	*b = Buffer{refs: newRefs(), b: block}
}

// Append appends the viewed bytes to the buffer. The view must not alias this
// buffer's block.
func (b *Buffer) Append(v Slice) {
	if b.Slice().ContainsSlice(v) {
		panic("slice: appended range aliases the buffer")
	}
	old := len(b.b)
	b.Resize(old + len(v))
	copy(b.b[old:], v)
}

// Shorten reduces the advertised size to n. Capacity is not reclaimed.
func (b *Buffer) Shorten(n int) {
	if n > len(b.b) {
		panic("slice: shortening past the end of the buffer")
	}
	b.b = b.b[:n]
}

// Equal reports whether the buffer's contents equal the viewed bytes.
func (b Buffer) Equal(v Slice) bool { return b.Slice().Equal(v) }
