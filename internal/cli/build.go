package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/relterm"
	"github.com/hupe1980/relterm/matrix"
	"github.com/hupe1980/relterm/vocab"
	"github.com/spf13/cobra"
)

// buildFlags are the flags of every command that builds a matrix.
type buildFlags struct {
	vocabPath  string
	datasets   []string
	output     string
	workers    int
	normalize  bool
	maxRank    int
	// countLines reports the line count of every dataset before the build.
	countLines bool
}

func (b *buildFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&b.vocabPath, "vocab", "v", "", "vocabulary file of \"<count> <word>\" lines")
	f.StringSliceVarP(&b.datasets, "dataset", "d", nil, "corpus file, relative to the corpus store (repeatable)")
	f.StringVarP(&b.output, "output", "o", "", "output name")
	f.IntVar(&b.workers, "workers", 0, "worker pool size")
	f.BoolVar(&b.normalize, "normalize", false, "normalize counts by row totals (integer division)")
	f.IntVar(&b.maxRank, "max-rank", 0, "keep only the top cells of every row (0 = all)")
	f.BoolVar(&b.countLines, "count-lines", false, "print the line count of every dataset before building")
	_ = cmd.MarkFlagRequired("vocab")
	_ = cmd.MarkFlagRequired("output")
}

// apply lets changed flags override the configuration.
func (b *buildFlags) apply(cmd *cobra.Command, a *app) {
	f := cmd.Flags()
	if f.Changed("workers") {
		a.cfg.Run.Workers = b.workers
	}
	if f.Changed("normalize") {
		a.cfg.Run.Normalize = b.normalize
	}
	if f.Changed("max-rank") {
		a.cfg.Run.MaxRank = b.maxRank
	}
}

// engineOptions returns the engine options of the configuration.
func (a *app) engineOptions() []relterm.Option {
	rc := a.cfg.Run
	return []relterm.Option{
		relterm.WithLogger(a.logger),
		relterm.WithWorkers(rc.Workers),
		relterm.WithPartitions(rc.Partitions),
		relterm.WithIOLimit(a.cfg.Corpus.IOLimit),
		relterm.WithK(rc.TopK),
		relterm.WithRadius(rc.Radius),
		relterm.WithNormalize(rc.Normalize),
		relterm.WithMaxRank(rc.MaxRank),
	}
}

// build loads the vocabulary and builds the matrix over the datasets.
// Line counts, if requested, are written to out.
func (a *app) build(ctx context.Context, eng *relterm.Engine, b *buildFlags, out io.Writer) (*matrix.Matrix, error) {
	v, err := vocab.LoadFile(b.vocabPath)
	if err != nil {
		return nil, err
	}

	store, err := a.corpusStore(ctx)
	if err != nil {
		return nil, err
	}
	names, err := a.datasets(ctx, store, b.datasets)
	if err != nil {
		return nil, err
	}

	streams := eng.Streams(store, names)
	if b.countLines {
		total := 0
		for _, s := range streams {
			n, err := s.CountLines(ctx)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(out, "%s\t%d\n", s.Name(), n)
			total += n
		}
		fmt.Fprintf(out, "total\t%d\n", total)
	}

	return eng.Build(ctx, v, streams)
}
