package varint_test

import (
	"bytes"
	"testing"

	. "github.com/meridiandb/documentkit/varint"
	"pgregory.net/rapid"
)

func encodeCollatable(t interface{ Fatalf(string, ...any) }, v uint64) []byte {
	buf := make([]byte, MaxCollatableLen)
	n := PutCollatable(buf, v)
	if n != SizeCollatable(v) {
		t.Fatalf("unexpected size: got %d, want %d", SizeCollatable(v), n)
	}
	return buf[:n]
}

func TestPutCollatable(t *testing.T) {
	t.Run("encodings of increasing values are in increasing bytewise order", func(t *testing.T) {
		values := []uint64{0, 1, 255, 256, 1 << 32}

		var prev []byte
		for _, v := range values {
			enc := encodeCollatable(t, v)

			if prev != nil && bytes.Compare(prev, enc) >= 0 {
				t.Fatalf("unexpected ordering: %x is not below %x", prev, enc)
			}
			prev = enc
		}
	})

	t.Run("bytewise order equals numeric order for arbitrary pairs", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a := rapid.Uint64().Draw(t, "a")
			b := rapid.Uint64().Draw(t, "b")

			cmp := bytes.Compare(encodeCollatable(t, a), encodeCollatable(t, b))

			switch {
			case a < b && cmp >= 0,
				a > b && cmp <= 0,
				a == b && cmp != 0:
				t.Fatalf("ordering of encodings disagrees with %d vs %d", a, b)
			}
		})
	})
}

func TestGetCollatable(t *testing.T) {
	t.Run("it round-trips arbitrary values", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			v := rapid.Uint64().Draw(t, "value")

			enc := encodeCollatable(t, v)

			decoded, n := GetCollatable(enc)
			if n != len(enc) {
				t.Fatalf("unexpected read length: got %d, want %d", n, len(enc))
			}
			if decoded != v {
				t.Fatalf("unexpected value: got %d, want %d", decoded, v)
			}
		})
	})

	t.Run("it rejects an empty buffer", func(t *testing.T) {
		if _, n := GetCollatable(nil); n != 0 {
			t.Fatalf("unexpected read length: %d", n)
		}
	})

	t.Run("it rejects a length prefix out of range", func(t *testing.T) {
		if _, n := GetCollatable([]byte{0, 1}); n != 0 {
			t.Fatalf("unexpected read length: %d", n)
		}
		if _, n := GetCollatable([]byte{9, 1, 2, 3, 4, 5, 6, 7, 8, 9}); n != 0 {
			t.Fatalf("unexpected read length: %d", n)
		}
	})

	t.Run("it rejects a buffer shorter than its length prefix", func(t *testing.T) {
		if _, n := GetCollatable([]byte{3, 1, 2}); n != 0 {
			t.Fatalf("unexpected read length: %d", n)
		}
	})
}
