package kv_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meridiandb/documentkit/driver/memory/hashtreekv"
	. "github.com/meridiandb/documentkit/kv"
	"github.com/meridiandb/documentkit/marshaler"
)

type record struct {
	Name  string
	Count int
}

func TestNewMarshalingStore(t *testing.T) {
	store := NewMarshalingStore(
		&hashtreekv.Store{},
		marshaler.String,
		marshaler.NewJSON[record](),
	)

	ks, err := store.Open(t.Context(), "<keyspace>")
	if err != nil {
		t.Fatal(err)
	}
	defer ks.Close()

	expect := record{Name: "<name>", Count: 3}

	if err := ks.Set(t.Context(), "<key>", expect); err != nil {
		t.Fatal(err)
	}

	t.Run("it round-trips values through the binary store", func(t *testing.T) {
		actual, err := ks.Get(t.Context(), "<key>")
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(expect, actual); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it reports the presence of marshaled keys", func(t *testing.T) {
		ok, err := ks.Has(t.Context(), "<key>")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected ok to be true")
		}
	})

	t.Run("it ranges over unmarshaled pairs", func(t *testing.T) {
		count := 0

		if err := ks.Range(
			t.Context(),
			func(_ context.Context, k string, v record) (bool, error) {
				count++

				if k != "<key>" {
					t.Fatalf("unexpected key: %q", k)
				}
				if diff := cmp.Diff(expect, v); diff != "" {
					t.Fatal(diff)
				}

				return true, nil
			},
		); err != nil {
			t.Fatal(err)
		}

		if count != 1 {
			t.Fatalf("unexpected number of pairs: got %d, want 1", count)
		}
	})

	t.Run("it deletes keys set to the zero-value", func(t *testing.T) {
		if err := ks.Set(t.Context(), "<key>", record{}); err != nil {
			t.Fatal(err)
		}

		ok, err := ks.Has(t.Context(), "<key>")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected ok to be false")
		}
	})
}
