// Package mutable provides copy-on-write mutable overlays for immutable
// encoded collections. A [Dict] shadows an [EncodedDict] with pending edits
// and produces a re-encoded image only when asked to.
package mutable

import "github.com/meridiandb/documentkit/slice"

// Encoded is an opaque reference to an immutable encoded value inside a
// document image. An encoded value that is itself a dictionary must assert to
// [EncodedDict].
type Encoded any

// SharedKeys is an opaque interning map that the encoded-dictionary reader
// may consult to resolve integer key tags back to key strings. It is carried
// by the collection and handed through to every reader lookup.
type SharedKeys any

// EncodedDict is a read-only view of an encoded dictionary.
type EncodedDict interface {
	// Get returns the value associated with key, or nil if the key is
	// absent.
	Get(key slice.Slice, sk SharedKeys) Encoded

	// Count returns the number of entries.
	Count() int

	// Iterate invokes fn for each entry in the dictionary's native order,
	// stopping early if fn returns false.
	Iterate(sk SharedKeys, fn func(key slice.Slice, v Encoded) bool)
}

// Encoder consumes values during re-encoding.
type Encoder interface {
	BeginDictionary(hint int)
	WriteKey(key slice.Slice)
	EndDictionary()

	// WriteDict emits an encoded sub-dictionary by reference.
	WriteDict(d EncodedDict)

	// WriteEncoded re-emits the bytes of an encoded value.
	WriteEncoded(v Encoded)

	// WriteNative emits a materialized native value.
	WriteNative(n any)
}
