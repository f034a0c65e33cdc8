package mutable

import "github.com/meridiandb/documentkit/slice"

// A Dict is a mutable copy-on-write overlay of an [EncodedDict]. Edits are
// buffered in an overlay map and the encoded image is consulted for anything
// the overlay does not shadow; an empty overlay entry is a tombstone hiding a
// key that exists in the image. Re-encoding through [Dict.EncodeTo] emits the
// original image by reference if nothing was mutated.
//
// Overlay keys are map strings, which are owned copies; no key held by the
// dict ever aliases caller memory.
type Dict[N any] struct {
	Collection[N]

	dict    EncodedDict
	count   int
	overlay map[string]*Value[N]
}

// Init binds the dict to the encoded dictionary referenced by slot's value
// and installs the collection back-references. The slot's value must
// reference an [EncodedDict].
func (d *Dict[N]) Init(slot *Value[N], parent *Collection[N]) {
	d.Collection.Init(slot, parent)
	ed, ok := slot.Encoded().(EncodedDict)
	if !ok {
		panic("mutable: value does not reference an encoded dictionary")
	}
	d.bind(ed)
}

// InitRoot binds a root dict directly to an encoded dictionary.
func (d *Dict[N]) InitRoot(ed EncodedDict, sk SharedKeys) {
	d.Collection.Init(nil, nil)
	d.SetSharedKeys(sk)
	d.bind(ed)
}

// InitFrom makes d a copy of o: the encoded image is shared, the overlay is
// not. The copy carries o's shared keys and, if o is mutated, is marked
// mutated itself.
func (d *Dict[N]) InitFrom(o *Dict[N]) {
	d.SetSharedKeys(o.SharedKeys())
	if o.IsMutated() {
		d.Mutate()
	}
	d.dict = o.dict
	d.count = o.count
	d.overlay = make(map[string]*Value[N], len(o.overlay))
	for k, v := range o.overlay {
		dup := *v
		d.overlay[k] = &dup
	}
}

func (d *Dict[N]) bind(ed EncodedDict) {
	d.dict = ed
	d.count = ed.Count()
	d.overlay = nil
}

// Count returns the number of live entries.
func (d *Dict[N]) Count() int { return d.count }

// Contains reports whether key is present.
func (d *Dict[N]) Contains(key slice.Slice) bool {
	if v, ok := d.overlay[string(key)]; ok {
		return !v.IsEmpty()
	}
	return d.encodedGet(key) != nil
}

// Get returns the entry for key, materializing into the overlay an entry that
// so far exists only in the encoded image. It returns nil if the key is
// absent or deleted. The returned pointer is invalidated by any subsequent
// mutation of the dict.
func (d *Dict[N]) Get(key slice.Slice) *Value[N] {
	if v, ok := d.overlay[string(key)]; ok {
		if v.IsEmpty() {
			return nil
		}
		return v
	}
	ev := d.encodedGet(key)
	if ev == nil {
		return nil
	}
	return d.setInOverlay(key, EncodedValue[N](ev))
}

// Set associates key with v. Setting the empty value removes the key. Edits
// with no effect, such as deleting an absent key, do not mark the dict
// mutated.
func (d *Dict[N]) Set(key slice.Slice, v Value[N]) {
	if cur, ok := d.overlay[string(key)]; ok {
		if v.IsEmpty() && cur.IsEmpty() {
			return
		}
		d.Mutate()
		d.count += btoi(!v.IsEmpty()) - btoi(!cur.IsEmpty())
		*cur = v
		return
	}
	if d.encodedGet(key) != nil {
		if v.IsEmpty() {
			d.count--
		}
	} else {
		if v.IsEmpty() {
			return
		}
		d.count++
	}
	d.Mutate()
	d.setInOverlay(key, v)
}

// Remove deletes key. It is equivalent to setting the empty value.
func (d *Dict[N]) Remove(key slice.Slice) {
	d.Set(key, Value[N]{})
}

// Clear removes every entry, tombstoning each key present in the encoded
// image.
func (d *Dict[N]) Clear() {
	if d.count == 0 {
		return
	}
	d.Mutate()
	d.overlay = make(map[string]*Value[N])
	d.iterateEncoded(func(key slice.Slice, _ Encoded) bool {
		d.setInOverlay(key, Value[N]{})
		return true
	})
	d.count = 0
}

// Enumerate invokes fn for each live entry: overlay-introduced entries first,
// in no particular order, then entries surviving from the encoded image in
// its native order. Enumeration stops early if fn returns false.
func (d *Dict[N]) Enumerate(fn func(key slice.Slice, v *Value[N]) bool) {
	for k, v := range d.overlay {
		if !v.IsEmpty() {
			if !fn(slice.FromString(k), v) {
				return
			}
		}
	}
	d.iterateEncoded(func(key slice.Slice, ev Encoded) bool {
		if _, shadowed := d.overlay[string(key)]; shadowed {
			return true
		}
		v := EncodedValue[N](ev)
		return fn(key, &v)
	})
}

// EncodeTo writes the dictionary to enc. If nothing was mutated the encoded
// image is emitted by reference.
func (d *Dict[N]) EncodeTo(enc Encoder) {
	if !d.IsMutated() {
		enc.WriteDict(d.dict)
		return
	}
	enc.BeginDictionary(d.count)
	d.Enumerate(func(key slice.Slice, v *Value[N]) bool {
		enc.WriteKey(key)
		v.EncodeTo(enc)
		return true
	})
	enc.EndDictionary()
}

func (d *Dict[N]) encodedGet(key slice.Slice) Encoded {
	if d.dict == nil {
		return nil
	}
	return d.dict.Get(key, d.SharedKeys())
}

func (d *Dict[N]) iterateEncoded(fn func(key slice.Slice, v Encoded) bool) {
	if d.dict != nil {
		d.dict.Iterate(d.SharedKeys(), fn)
	}
}

func (d *Dict[N]) setInOverlay(key slice.Slice, v Value[N]) *Value[N] {
	if d.overlay == nil {
		d.overlay = make(map[string]*Value[N])
	}
	p := &v
	d.overlay[string(key)] = p
	return p
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
