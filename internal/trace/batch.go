package trace

import (
	"context"
	"runtime"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
	"golang.org/x/sync/errgroup"
)

type Request struct {
	Kind Kind
	Seed geom.Point
}

type Result struct {
	Request Request
	Curve   Curve
	OK      bool
}

// Batch traces independent seeds in parallel against one snapshot of the
// charges. Results keep request order. Cancellation is checked between
// curves; a curve that has started always runs to completion.
func Batch(parent context.Context, t *Tracer, set charge.Set, reqs []Request) ([]Result, error) {
	snapshot := set.Clone()
	results := make([]Result, len(reqs))

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, ok, err := t.Trace(req.Kind, req.Seed, snapshot)
			if err != nil {
				return err
			}
			results[i] = Result{Request: req, Curve: c, OK: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
