package mutable_test

import (
	"testing"

	. "github.com/meridiandb/documentkit/mutable"
)

func TestValue(t *testing.T) {
	t.Run("the zero value is empty", func(t *testing.T) {
		var v Value[string]

		if !v.IsEmpty() {
			t.Fatal("expected the zero value to be empty")
		}
		if v.Encoded() != nil {
			t.Fatal("expected no encoded reference")
		}
		if _, ok := v.Native(); ok {
			t.Fatal("expected no native value")
		}
	})

	t.Run("a nil encoded reference collapses to the empty value", func(t *testing.T) {
		v := EncodedValue[string](nil)

		if !v.IsEmpty() {
			t.Fatal("expected the empty value")
		}
	})

	t.Run("a native value is not empty, even when it is the zero of its type", func(t *testing.T) {
		v := NativeValue("")

		if v.IsEmpty() {
			t.Fatal("expected a non-empty value")
		}
		if n, ok := v.Native(); !ok || n != "" {
			t.Fatal("expected the native zero string")
		}
	})

	t.Run("encoding an empty value panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()

		v := EmptyValue[string]()
		v.EncodeTo(newFakeEncoder())
	})
}
