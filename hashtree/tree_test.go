package hashtree_test

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/meridiandb/documentkit/hashtree"
	"github.com/meridiandb/documentkit/slice"
	"pgregory.net/rapid"
)

func TestTree_empty(t *testing.T) {
	var tree Tree[int]

	if tree.Count() != 0 {
		t.Fatalf("unexpected count: got %d, want 0", tree.Count())
	}
	if _, ok := tree.Get(slice.Slice("foo")); ok {
		t.Fatal("unexpected entry")
	}
	if tree.Remove(slice.Slice("foo")) {
		t.Fatal("unexpected removal")
	}
}

func TestTree_singleEntry(t *testing.T) {
	var tree Tree[int]
	key := slice.Slice("foo")

	tree.Insert(key, 123)

	if v, ok := tree.Get(key); !ok || v != 123 {
		t.Fatalf("unexpected value: got %d (present: %t), want 123", v, ok)
	}
	if tree.Count() != 1 {
		t.Fatalf("unexpected count: got %d, want 1", tree.Count())
	}

	if !tree.Remove(key) {
		t.Fatal("expected the key to be removed")
	}
	if _, ok := tree.Get(key); ok {
		t.Fatal("unexpected entry after removal")
	}
	if tree.Count() != 0 {
		t.Fatalf("unexpected count: got %d, want 0", tree.Count())
	}
}

func TestTree_insert(t *testing.T) {
	t.Run("it retains every inserted entry", func(t *testing.T) {
		const n = 1000

		keys := make([]slice.Slice, n)
		for i := range keys {
			keys[i] = slice.Slice(fmt.Sprintf("Key %d, squared is %d", i, i*i))
		}

		var tree Tree[int]
		for i, k := range keys {
			if !tree.Insert(k, i+1) {
				t.Fatalf("expected key %d to be new", i)
			}
			if tree.Count() != i+1 {
				t.Fatalf("unexpected count: got %d, want %d", tree.Count(), i+1)
			}
		}

		for i, k := range keys {
			if v, ok := tree.Get(k); !ok || v != i+1 {
				t.Fatalf("unexpected value for key %d: got %d (present: %t)", i, v, ok)
			}
		}
	})

	t.Run("it overwrites duplicate keys without changing the count", func(t *testing.T) {
		var tree Tree[int]
		key := slice.Slice("foo")

		if !tree.Insert(key, 1) {
			t.Fatal("expected the first insert to add an entry")
		}
		if tree.Insert(key, 2) {
			t.Fatal("expected the second insert to overwrite")
		}

		if v, _ := tree.Get(key); v != 2 {
			t.Fatalf("unexpected value: got %d, want 2", v)
		}
		if tree.Count() != 1 {
			t.Fatalf("unexpected count: got %d, want 1", tree.Count())
		}
	})

	t.Run("it does not capture the caller's key bytes", func(t *testing.T) {
		var tree Tree[int]

		key := []byte("owned")
		tree.Insert(slice.Slice(key), 1)
		key[0] = 'X'

		if _, ok := tree.Get(slice.Slice("owned")); !ok {
			t.Fatal("expected the key under its original spelling")
		}
		if _, ok := tree.Get(slice.Slice(key)); ok {
			t.Fatal("unexpected key under its mutated spelling")
		}
	})
}

func TestTree_remove(t *testing.T) {
	const n = 10000

	keys := make([]slice.Slice, n)
	for i := range keys {
		keys[i] = slice.Slice(fmt.Sprintf("Key %d, squared is %d", i, i*i))
	}

	var tree Tree[int]
	for i, k := range keys {
		tree.Insert(k, i+1)
	}

	for i := 0; i < n; i += 3 {
		if !tree.Remove(keys[i]) {
			t.Fatalf("expected key %d to be removed", i)
		}
	}

	for i, k := range keys {
		v, ok := tree.Get(k)
		if i%3 == 0 {
			if ok {
				t.Fatalf("unexpected entry for removed key %d", i)
			}
		} else if !ok || v != i+1 {
			t.Fatalf("unexpected value for key %d: got %d (present: %t)", i, v, ok)
		}
	}

	if expect := n - 1 - n/3; tree.Count() != expect {
		t.Fatalf("unexpected count: got %d, want %d", tree.Count(), expect)
	}
}

func TestTree_range(t *testing.T) {
	var tree Tree[int]

	expect := map[string]int{}
	for i := 0; i < 100; i++ {
		k := fmt.Sprintf("key-%d", i)
		tree.Insert(slice.Slice(k), i)
		expect[k] = i
	}

	actual := map[string]int{}
	tree.Range(func(k slice.Slice, v int) bool {
		actual[string(k)] = v
		return true
	})

	if len(actual) != len(expect) {
		t.Fatalf("unexpected number of entries: got %d, want %d", len(actual), len(expect))
	}
	for k, v := range expect {
		if actual[k] != v {
			t.Fatalf("unexpected value for %q: got %d, want %d", k, actual[k], v)
		}
	}

	t.Run("it stops when the callback returns false", func(t *testing.T) {
		calls := 0
		tree.Range(func(slice.Slice, int) bool {
			calls++
			return false
		})

		if calls != 1 {
			t.Fatalf("unexpected number of calls: %d", calls)
		}
	})
}

func TestTree_dump(t *testing.T) {
	var tree Tree[int]
	tree.Insert(slice.Slice("foo"), 1)
	tree.Insert(slice.Slice("bar"), 2)

	var w strings.Builder
	tree.Dump(&w)

	out := w.String()
	if !strings.Contains(out, "[2 entries]") {
		t.Fatalf("unexpected dump: %s", out)
	}
	if !strings.Contains(out, `"foo"`) || !strings.Contains(out, `"bar"`) {
		t.Fatalf("unexpected dump: %s", out)
	}
}

func TestTree_behavesLikeAMap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var tree Tree[int]
		model := map[string]int{}

		key := rapid.StringN(1, 16, -1)
		value := rapid.Int()

		t.Repeat(
			map[string]func(*rapid.T){
				"Insert": func(t *rapid.T) {
					k := key.Draw(t, "key")
					v := value.Draw(t, "value")

					_, present := model[k]
					if added := tree.Insert(slice.Slice(k), v); added == present {
						t.Fatalf("unexpected insert result for %q: %t", k, added)
					}

					model[k] = v
				},
				"Get": func(t *rapid.T) {
					k := key.Draw(t, "key")

					expect, present := model[k]
					v, ok := tree.Get(slice.Slice(k))

					if ok != present || v != expect {
						t.Fatalf(
							"unexpected value for %q: got %d (present: %t), want %d (present: %t)",
							k, v, ok, expect, present,
						)
					}
				},
				"Remove": func(t *rapid.T) {
					k := key.Draw(t, "key")

					_, present := model[k]
					if removed := tree.Remove(slice.Slice(k)); removed != present {
						t.Fatalf("unexpected remove result for %q: %t", k, removed)
					}

					delete(model, k)
				},
				"Count": func(t *rapid.T) {
					if tree.Count() != len(model) {
						t.Fatalf(
							"unexpected count: got %d, want %d",
							tree.Count(),
							len(model),
						)
					}
				},
			},
		)
	})
}
