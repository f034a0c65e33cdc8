package marshaler

import (
	"errors"

	"github.com/meridiandb/documentkit/varint"
)

var (
	// Uint64 marshals and unmarshals unsigned integers as LEB128 varints.
	Uint64 = New(
		func(v uint64) ([]byte, error) {
			buf := make([]byte, varint.MaxLen64)
			return buf[:varint.Put(buf, v)], nil
		},
		func(data []byte) (uint64, error) {
			n, size := varint.Get(data)
			if size == 0 || size != len(data) {
				return 0, errors.New("data is not a valid varint")
			}
			return n, nil
		},
	)

	// CollatableUint64 marshals and unmarshals unsigned integers in an
	// encoding whose bytewise order equals numeric order, suitable for use
	// as ordered binary keys.
	CollatableUint64 = New(
		func(v uint64) ([]byte, error) {
			buf := make([]byte, varint.MaxCollatableLen)
			return buf[:varint.PutCollatable(buf, v)], nil
		},
		func(data []byte) (uint64, error) {
			n, size := varint.GetCollatable(data)
			if size == 0 || size != len(data) {
				return 0, errors.New("data is not a valid collatable uint")
			}
			return n, nil
		},
	)
)
