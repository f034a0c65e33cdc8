package kv_test

import (
	"strings"
	"testing"

	"github.com/meridiandb/documentkit/driver/memory/hashtreekv"
	. "github.com/meridiandb/documentkit/kv"
)

func TestWithNamePrefix(t *testing.T) {
	inner := &hashtreekv.Store{}
	store := WithNamePrefix[[]byte, []byte](inner, "prefix.")

	ks, err := store.Open(t.Context(), "<keyspace>")
	if err != nil {
		t.Fatal(err)
	}
	defer ks.Close()

	t.Run("it reports the unprefixed name", func(t *testing.T) {
		if ks.Name() != "<keyspace>" {
			t.Fatalf("unexpected keyspace name: got %q, want %q", ks.Name(), "<keyspace>")
		}
	})

	t.Run("it stores pairs under the prefixed name", func(t *testing.T) {
		if err := ks.Set(t.Context(), []byte("<key>"), []byte("<value>")); err != nil {
			t.Fatal(err)
		}

		direct, err := inner.Open(t.Context(), "prefix.<keyspace>")
		if err != nil {
			t.Fatal(err)
		}
		defer direct.Close()

		ok, err := direct.Has(t.Context(), []byte("<key>"))
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected the pair to be visible under the prefixed name")
		}
	})
}

func TestWithNameTransform(t *testing.T) {
	inner := &hashtreekv.Store{}
	store := WithNameTransform[[]byte, []byte](inner, strings.ToUpper)

	ks, err := store.Open(t.Context(), "<keyspace>")
	if err != nil {
		t.Fatal(err)
	}
	defer ks.Close()

	if ks.Name() != "<keyspace>" {
		t.Fatalf("unexpected keyspace name: got %q, want %q", ks.Name(), "<keyspace>")
	}

	if err := ks.Set(t.Context(), []byte("<key>"), []byte("<value>")); err != nil {
		t.Fatal(err)
	}

	direct, err := inner.Open(t.Context(), "<KEYSPACE>")
	if err != nil {
		t.Fatal(err)
	}
	defer direct.Close()

	ok, err := direct.Has(t.Context(), []byte("<key>"))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the pair to be visible under the transformed name")
	}
}
