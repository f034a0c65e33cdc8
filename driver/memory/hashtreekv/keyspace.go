package hashtreekv

import (
	"context"
	"errors"

	"github.com/meridiandb/documentkit/driver/memory/internal/clone"
	"github.com/meridiandb/documentkit/internal/errorx"
	"github.com/meridiandb/documentkit/kv"
	"github.com/meridiandb/documentkit/slice"
)

// keyspace is an implementation of [kv.BinaryKeyspace] that manipulates a
// keyspace's in-memory [state].
type keyspace struct {
	name      string
	state     *state
	beforeSet func(ks string, k, v []byte) error
	afterSet  func(ks string, k, v []byte) error
}

func (ks *keyspace) Name() string {
	return ks.name
}

func (ks *keyspace) Get(ctx context.Context, k []byte) ([]byte, error) {
	if ks.state == nil {
		panic("keyspace is closed")
	}

	ks.state.RLock()
	defer ks.state.RUnlock()

	v, _ := ks.state.Tree.Get(slice.Slice(k))
	return clone.Clone(v), ctx.Err()
}

func (ks *keyspace) Has(ctx context.Context, k []byte) (bool, error) {
	if ks.state == nil {
		panic("keyspace is closed")
	}

	ks.state.RLock()
	defer ks.state.RUnlock()

	_, ok := ks.state.Tree.Get(slice.Slice(k))
	return ok, ctx.Err()
}

func (ks *keyspace) Set(ctx context.Context, k, v []byte) (err error) {
	if ks.state == nil {
		panic("keyspace is closed")
	}

	defer errorx.Wrap(&err, "unable to set key %q in the %q keyspace", k, ks.name)

	v = clone.Clone(v)

	ks.state.Lock()
	defer ks.state.Unlock()

	if ks.beforeSet != nil {
		if err := ks.beforeSet(ks.name, k, v); err != nil {
			return err
		}
	}

	if len(v) == 0 {
		ks.state.Tree.Remove(slice.Slice(k))
	} else {
		// the tree copies k into storage it owns
		ks.state.Tree.Insert(slice.Slice(k), v)
	}

	if ks.afterSet != nil {
		if err := ks.afterSet(ks.name, k, v); err != nil {
			return err
		}
	}

	return ctx.Err()
}

func (ks *keyspace) Range(ctx context.Context, fn kv.BinaryRangeFunc) error {
	if ks.state == nil {
		panic("keyspace is closed")
	}

	// snapshot the entries so fn runs without holding the lock
	type pair struct{ k, v []byte }
	var pairs []pair

	ks.state.RLock()
	ks.state.Tree.Range(
		func(k slice.Slice, v []byte) bool {
			pairs = append(pairs, pair{k.Copy(), clone.Clone(v)})
			return true
		},
	)
	ks.state.RUnlock()

	for _, p := range pairs {
		ok, err := fn(ctx, p.k, p.v)
		if !ok || err != nil {
			return err
		}
	}

	return nil
}

func (ks *keyspace) Close() error {
	if ks.state == nil {
		return errors.New("keyspace is already closed")
	}

	ks.state = nil

	return nil
}
