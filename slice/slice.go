// Package slice provides the byte substrate used throughout the module: a
// non-owning view type and a reference-counted owning buffer.
package slice

import (
	"bytes"
	"encoding/hex"
	"unsafe"
)

// A Slice is a non-owning view of a byte sequence.
//
// A nil Slice is distinct from an empty-but-addressed Slice, mirroring the
// distinction between a nil and a zero-length byte slice. The viewed bytes are
// not owned; the caller must guarantee they remain valid for the lifetime of
// the view.
type Slice []byte

// FromString returns a view of the bytes of s without copying.
//
// The view is valid only while s remains reachable.
func FromString(s string) Slice {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// UpTo returns the view of the first n bytes. n must lie within the view.
func (s Slice) UpTo(n int) Slice { return s[:n] }

// From returns the view starting at offset n. n must lie within the view.
func (s Slice) From(n int) Slice { return s[n:] }

// Sub returns the view of n bytes starting at off. The range must lie within
// the view.
func (s Slice) Sub(off, n int) Slice { return s[off : off+n] }

// First returns a pointer to the first viewed byte, or nil for an empty
// view.
func (s Slice) First() *byte {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

// Last returns a pointer to the last viewed byte, or nil for an empty view.
func (s Slice) Last() *byte {
	if len(s) == 0 {
		return nil
	}
	return &s[len(s)-1]
}

// Find returns the index of the first occurrence of sub, or -1.
func (s Slice) Find(sub Slice) int { return bytes.Index(s, sub) }

// FindByte returns the index of the first occurrence of b, or -1.
func (s Slice) FindByte(b byte) int { return bytes.IndexByte(s, b) }

// FindLastByte returns the index of the last occurrence of b, or -1.
func (s Slice) FindLastByte(b byte) int { return bytes.LastIndexByte(s, b) }

// FindAnyOf returns the index of the first byte that appears in set, or -1.
func (s Slice) FindAnyOf(set Slice) int {
	for i, b := range s {
		if bytes.IndexByte(set, b) >= 0 {
			return i
		}
	}
	return -1
}

// FindNotIn returns the index of the first byte that does not appear in set,
// or -1.
func (s Slice) FindNotIn(set Slice) int {
	for i, b := range s {
		if bytes.IndexByte(set, b) < 0 {
			return i
		}
	}
	return -1
}

// HasPrefix reports whether the view begins with prefix.
func (s Slice) HasPrefix(prefix Slice) bool { return bytes.HasPrefix(s, prefix) }

// HasSuffix reports whether the view ends with suffix.
func (s Slice) HasSuffix(suffix Slice) bool { return bytes.HasSuffix(s, suffix) }

// HasPrefixByte reports whether the view begins with b.
func (s Slice) HasPrefixByte(b byte) bool { return len(s) > 0 && s[0] == b }

// HasSuffixByte reports whether the view ends with b.
func (s Slice) HasSuffixByte(b byte) bool { return len(s) > 0 && s[len(s)-1] == b }

// ContainsAddress reports whether p points into the viewed bytes.
func (s Slice) ContainsAddress(p unsafe.Pointer) bool {
	if len(s) == 0 {
		return false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	return uintptr(p) >= start && uintptr(p) < start+uintptr(len(s))
}

// ContainsSlice reports whether other's byte range lies entirely within this
// view's byte range.
func (s Slice) ContainsSlice(other Slice) bool {
	if len(s) == 0 || other == nil {
		return false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	o := uintptr(unsafe.Pointer(unsafe.SliceData(other)))
	return o >= start && o+uintptr(len(other)) <= start+uintptr(len(s))
}

// Equal reports whether the two views have equal contents.
func (s Slice) Equal(other Slice) bool { return bytes.Equal(s, other) }

// Compare performs a three-way lexicographic comparison. A strict byte-prefix
// compares less than the longer sequence.
func (s Slice) Compare(other Slice) int { return bytes.Compare(s, other) }

// CaseEquivalentCompare is [Slice.Compare] under ASCII case folding.
func (s Slice) CaseEquivalentCompare(other Slice) int {
	n := min(len(s), len(other))
	for i := 0; i < n; i++ {
		a, b := lowerASCII(s[i]), lowerASCII(other[i])
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(s) < len(other):
		return -1
	case len(s) > len(other):
		return 1
	default:
		return 0
	}
}

// CaseEquivalent reports whether the two views are equal under ASCII case
// folding.
func (s Slice) CaseEquivalent(other Slice) bool {
	return len(s) == len(other) && s.CaseEquivalentCompare(other) == 0
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	return b
}

// CopyTo copies the view into dst, returning the number of bytes copied.
func (s Slice) CopyTo(dst []byte) int { return copy(dst, s) }

// CopyCString copies the view into dst followed by a NUL terminator, which is
// always written. It returns false if the view was truncated to fit.
func (s Slice) CopyCString(dst []byte) bool {
	if len(dst) == 0 {
		return false
	}
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
	return n == len(s)
}

// Hex returns the view's contents as a lowercase hex string.
func (s Slice) Hex() string { return hex.EncodeToString(s) }

// Copy returns an independently owned copy of the viewed bytes. A nil view
// copies to nil.
func (s Slice) Copy() Slice {
	if s == nil {
		return nil
	}
	c := make(Slice, len(s))
	copy(c, s)
	return c
}

// String returns the view's contents as a string.
func (s Slice) String() string { return string(s) }
