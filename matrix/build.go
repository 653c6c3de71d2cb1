package matrix

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/relterm/corpus"
	"golang.org/x/sync/errgroup"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// Workers bounds the number of sources read concurrently. At most one
	// worker builds directly into the result; more build one partial
	// matrix per source and merge them in source order.
	Workers int

	// OnSource, if set, is called after each source has been read. It may
	// be called concurrently when Workers > 1.
	OnSource func(name string, lines int, elapsed time.Duration)
}

// Build creates a matrix over words from every stream.
func Build(ctx context.Context, words []string, streams []*corpus.Stream, opts BuildOptions) (*Matrix, error) {
	if opts.Workers <= 1 || len(streams) <= 1 {
		m := New(words)
		for _, s := range streams {
			if err := addSource(ctx, m, s, opts.OnSource); err != nil {
				return nil, err
			}
		}
		return m, nil
	}

	partials := make([]*Matrix, len(streams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, s := range streams {
		g.Go(func() error {
			p := New(words)
			if err := addSource(gctx, p, s, opts.OnSource); err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(partials...)
}

func addSource(ctx context.Context, m *Matrix, s *corpus.Stream, onSource func(string, int, time.Duration)) error {
	start := time.Now()
	lines, err := m.AddStream(ctx, s)
	if err != nil {
		return fmt.Errorf("build %s: %w", s.Name(), err)
	}
	if onSource != nil {
		onSource(s.Name(), lines, time.Since(start))
	}
	return nil
}
