package kv

import (
	"context"

	"github.com/meridiandb/documentkit/internal/telemetry"
	"github.com/meridiandb/documentkit/internal/x/xtelemetry"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// WithTelemetry returns a [BinaryStore] that adds telemetry to s.
func WithTelemetry(
	s BinaryStore,
	p trace.TracerProvider,
	m metric.MeterProvider,
	l log.LoggerProvider,
) BinaryStore {
	return &instrumentedStore{
		Next: s,
		Telemetry: telemetry.Provider{
			TracerProvider: p,
			MeterProvider:  m,
			LoggerProvider: l,
		},
	}
}

// instrumentedStore is a decorator that adds instrumentation to a
// [BinaryStore].
type instrumentedStore struct {
	Next      BinaryStore
	Telemetry telemetry.Provider
}

// Open returns the keyspace with the given name.
func (s *instrumentedStore) Open(ctx context.Context, name string) (BinaryKeyspace, error) {
	telem := s.Telemetry.Recorder(
		"github.com/meridiandb/documentkit/kv",
		telemetry.Type("kv.store", s.Next),
		telemetry.String("keyspace.name", name),
		telemetry.String("keyspace.handle", xtelemetry.HandleID()),
	)

	ks := &instrumentedKeyspace{
		Telemetry:     telem,
		OpenKeyspaces: telem.UpDownCounter("open_keyspaces", "{keyspace}", "The number of keyspaces that are currently open."),
		Misses:        telem.Counter("misses", "{operation}", "The number of times the value associated with a specific key was requested but not present in the keyspace."),
		KeyIO:         telem.Counter("key.io", "By", "The cumulative size of the keys that have been operated upon."),
		ValueIO:       telem.Counter("value.io", "By", "The cumulative size of the values that have been operated upon."),
		KeySize:       telem.Histogram("key.size", "By", "The sizes of the keys that have been operated upon."),
		ValueSize:     telem.Histogram("value.size", "By", "The sizes of the values that have been operated upon."),
	}

	ctx, span := telem.StartSpan(ctx, "keyspace.open")
	defer span.End()

	next, err := s.Next.Open(ctx, name)
	if err != nil {
		ks.Telemetry.Error(ctx, "keyspace.open.error", "unable to open keyspace", err)
		return nil, err
	}

	ks.Next = next

	ks.OpenKeyspaces(ctx, 1)
	ks.Telemetry.Info(ctx, "keyspace.open.ok", "opened keyspace")

	return ks, nil
}

type instrumentedKeyspace struct {
	Next      BinaryKeyspace
	Telemetry *telemetry.Recorder

	OpenKeyspaces telemetry.Instrument[int64]
	Misses        telemetry.Instrument[int64]
	KeyIO         telemetry.Instrument[int64]
	ValueIO       telemetry.Instrument[int64]
	KeySize       telemetry.Instrument[int64]
	ValueSize     telemetry.Instrument[int64]
}

func (ks *instrumentedKeyspace) Name() string {
	return ks.Next.Name()
}

func (ks *instrumentedKeyspace) Get(ctx context.Context, k []byte) ([]byte, error) {
	keySize := int64(len(k))

	ctx, span := ks.Telemetry.StartSpan(
		ctx,
		"keyspace.get",
		telemetry.Binary("key", k),
		telemetry.Int("key_size", keySize),
	)
	defer span.End()

	ks.KeyIO(ctx, keySize, telemetry.WriteDirection)
	ks.KeySize(ctx, keySize, telemetry.WriteDirection)

	v, err := ks.Next.Get(ctx, k)
	if err != nil {
		ks.Telemetry.Error(ctx, "keyspace.get.error", "unable to fetch value associated with key", err)
		return nil, err
	}

	valueSize := int64(len(v))

	if valueSize != 0 {
		ks.ValueIO(ctx, valueSize, telemetry.ReadDirection)
		ks.ValueSize(ctx, valueSize, telemetry.ReadDirection)

		span.SetAttributes(
			telemetry.Bool("key_present", true).AsKeyValue(),
			telemetry.Binary("value", v).AsKeyValue(),
			telemetry.Int("value_size", valueSize).AsKeyValue(),
		)

		ks.Telemetry.Info(ctx, "keyspace.get.ok", "fetched value associated with key")
	} else {
		ks.Misses(ctx, 1)

		span.SetAttributes(
			telemetry.Bool("key_present", false).AsKeyValue(),
		)

		ks.Telemetry.Info(ctx, "keyspace.get.ok", "key is not present in keyspace")
	}

	return v, nil
}

func (ks *instrumentedKeyspace) Has(ctx context.Context, k []byte) (bool, error) {
	keySize := int64(len(k))

	ctx, span := ks.Telemetry.StartSpan(
		ctx,
		"keyspace.has",
		telemetry.Binary("key", k),
		telemetry.Int("key_size", keySize),
	)
	defer span.End()

	ks.KeyIO(ctx, keySize, telemetry.WriteDirection)
	ks.KeySize(ctx, keySize, telemetry.WriteDirection)

	ok, err := ks.Next.Has(ctx, k)
	if err != nil {
		ks.Telemetry.Error(ctx, "keyspace.has.error", "unable to check whether key is present", err)
		return false, err
	}

	span.SetAttributes(
		telemetry.Bool("key_present", ok).AsKeyValue(),
	)

	if !ok {
		ks.Misses(ctx, 1)
	}

	ks.Telemetry.Info(ctx, "keyspace.has.ok", "checked whether key is present")

	return ok, nil
}

func (ks *instrumentedKeyspace) Set(ctx context.Context, k, v []byte) error {
	keySize := int64(len(k))
	valueSize := int64(len(v))

	ctx, span := ks.Telemetry.StartSpan(
		ctx,
		"keyspace.set",
		telemetry.Binary("key", k),
		telemetry.Int("key_size", keySize),
		telemetry.Binary("value", v),
		telemetry.Int("value_size", valueSize),
		telemetry.Bool("delete", valueSize == 0),
	)
	defer span.End()

	ks.KeyIO(ctx, keySize, telemetry.WriteDirection)
	ks.KeySize(ctx, keySize, telemetry.WriteDirection)

	if valueSize != 0 {
		ks.ValueIO(ctx, valueSize, telemetry.WriteDirection)
		ks.ValueSize(ctx, valueSize, telemetry.WriteDirection)
	}

	if err := ks.Next.Set(ctx, k, v); err != nil {
		ks.Telemetry.Error(ctx, "keyspace.set.error", "unable to associate value with key", err)
		return err
	}

	ks.Telemetry.Info(ctx, "keyspace.set.ok", "associated value with key")

	return nil
}

func (ks *instrumentedKeyspace) Range(ctx context.Context, fn BinaryRangeFunc) error {
	ctx, span := ks.Telemetry.StartSpan(ctx, "keyspace.range")
	defer span.End()

	var count int64

	err := ks.Next.Range(
		ctx,
		func(ctx context.Context, k, v []byte) (bool, error) {
			count++

			ks.KeyIO(ctx, int64(len(k)), telemetry.ReadDirection)
			ks.KeySize(ctx, int64(len(k)), telemetry.ReadDirection)
			ks.ValueIO(ctx, int64(len(v)), telemetry.ReadDirection)
			ks.ValueSize(ctx, int64(len(v)), telemetry.ReadDirection)

			return fn(ctx, k, v)
		},
	)

	span.SetAttributes(
		telemetry.Int("keys_ranged", count).AsKeyValue(),
	)

	if err != nil {
		ks.Telemetry.Error(ctx, "keyspace.range.error", "unable to range over keyspace", err)
		return err
	}

	ks.Telemetry.Info(ctx, "keyspace.range.ok", "ranged over keyspace")

	return nil
}

func (ks *instrumentedKeyspace) Close() error {
	ctx, span := ks.Telemetry.StartSpan(context.Background(), "keyspace.close")
	defer span.End()

	if err := ks.Next.Close(); err != nil {
		ks.Telemetry.Error(ctx, "keyspace.close.error", "unable to close keyspace", err)
		return err
	}

	ks.OpenKeyspaces(ctx, -1)
	ks.Telemetry.Info(ctx, "keyspace.close.ok", "closed keyspace")

	return nil
}
