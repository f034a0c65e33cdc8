package varint_test

import (
	"testing"

	. "github.com/meridiandb/documentkit/varint"
	"pgregory.net/rapid"
)

func TestPutInt(t *testing.T) {
	cases := []struct {
		Name     string
		Value    int64
		Unsigned bool
		Length   int
	}{
		{"zero", 0, false, 1},
		{"single byte", 100, false, 1},
		{"negative single byte", -1, false, 1},
		{"boundary of one signed byte", 127, false, 1},
		{"two signed bytes", 128, false, 2},
		{"negative boundary", -128, false, 1},
		{"negative two bytes", -129, false, 2},
		{"full width", -1 << 63, false, 8},
		{"unsigned single byte", 255, true, 1},
		{"unsigned two bytes", 256, true, 2},
		{"unsigned full width", -1, true, 8}, // bit pattern of max uint64
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			buf := make([]byte, 8)
			n := PutInt(buf, c.Value, c.Unsigned)

			if n != c.Length {
				t.Fatalf("unexpected length: got %d, want %d", n, c.Length)
			}

			if c.Unsigned {
				if v := GetUint(buf[:n]); v != uint64(c.Value) {
					t.Fatalf("unexpected value: got %d, want %d", v, uint64(c.Value))
				}
			} else {
				if v := GetInt(buf[:n]); v != c.Value {
					t.Fatalf("unexpected value: got %d, want %d", v, c.Value)
				}
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	t.Run("it sign-extends from the buffer length", func(t *testing.T) {
		if v := GetInt([]byte{0xFF}); v != -1 {
			t.Fatalf("unexpected value: got %d, want -1", v)
		}
		if v := GetInt([]byte{0xFF, 0x00}); v != 255 {
			t.Fatalf("unexpected value: got %d, want 255", v)
		}
	})

	t.Run("it round-trips arbitrary signed values", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			v := rapid.Int64().Draw(t, "value")

			buf := make([]byte, 8)
			n := PutInt(buf, v, false)

			if decoded := GetInt(buf[:n]); decoded != v {
				t.Fatalf("unexpected value: got %d, want %d", decoded, v)
			}
		})
	})

	t.Run("it round-trips arbitrary unsigned values", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			v := rapid.Uint64().Draw(t, "value")

			buf := make([]byte, 8)
			n := PutInt(buf, int64(v), true)

			if decoded := GetUint(buf[:n]); decoded != v {
				t.Fatalf("unexpected value: got %d, want %d", decoded, v)
			}
		})
	})

	t.Run("it panics when the length is out of range", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()
		GetInt(make([]byte, 9))
	})
}
