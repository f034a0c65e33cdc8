package mutable

// A Value is a discriminated slot within a mutable collection: empty, a
// reference into an immutable encoded image, or a materialized native value
// of type N. The empty state doubles as the deletion tombstone inside [Dict];
// containers filter empty values before encoding.
type Value[N any] struct {
	state  valueState
	enc    Encoded
	native N
}

type valueState uint8

const (
	stateEmpty valueState = iota
	stateEncoded
	stateNative
)

// EmptyValue returns the empty (tombstone) value.
func EmptyValue[N any]() Value[N] {
	return Value[N]{}
}

// EncodedValue returns a value referencing an immutable encoded value. A nil
// reference yields the empty value.
func EncodedValue[N any](v Encoded) Value[N] {
	if v == nil {
		return Value[N]{}
	}
	return Value[N]{state: stateEncoded, enc: v}
}

// NativeValue returns a materialized native value.
func NativeValue[N any](n N) Value[N] {
	return Value[N]{state: stateNative, native: n}
}

// IsEmpty reports whether the value is the empty sentinel.
func (v *Value[N]) IsEmpty() bool { return v.state == stateEmpty }

// Encoded returns the referenced immutable value, or nil if the value is
// empty or materialized.
func (v *Value[N]) Encoded() Encoded {
	if v.state != stateEncoded {
		return nil
	}
	return v.enc
}

// Native returns the materialized native value, if there is one.
func (v *Value[N]) Native() (N, bool) {
	if v.state != stateNative {
		var zero N
		return zero, false
	}
	return v.native, true
}

// EncodeTo writes the value to enc. The value must not be empty; containers
// filter tombstones before encoding.
func (v *Value[N]) EncodeTo(enc Encoder) {
	switch v.state {
	case stateEncoded:
		enc.WriteEncoded(v.enc)
	case stateNative:
		enc.WriteNative(v.native)
	default:
		panic("mutable: encoding an empty value")
	}
}
