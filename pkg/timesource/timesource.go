// Package timesource supplies the transaction timestamp for registry writes.
//
// Every mutating operation stamps its record with exactly one instant obtained
// from a Source. Services treat a Source failure as "no trustworthy clock" and
// abort before touching any store, so a record is never written with a
// timestamp the source did not vouch for.
package timesource

import (
	"context"
	"time"

	"talentry/pkg/requestcontext"
)

// Source yields the single instant an operation uses for all of its writes.
type Source interface {
	Now(ctx context.Context) (time.Time, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (time.Time, error)

func (f SourceFunc) Now(ctx context.Context) (time.Time, error) {
	return f(ctx)
}

// System reads the request-scoped time the middleware placed on the context,
// falling back to the wall clock outside an HTTP request (workers, tests).
type System struct{}

func (System) Now(ctx context.Context) (time.Time, error) {
	return requestcontext.Now(ctx), nil
}

// Fixed always returns the same instant. Useful in tests that assert on
// stored timestamps.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now(context.Context) (time.Time, error) {
	return f.At, nil
}
