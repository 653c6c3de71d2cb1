package cli

import (
	"fmt"

	"github.com/hupe1980/relterm/compress"
	"github.com/hupe1980/relterm/corpus"
	"github.com/hupe1980/relterm/score"
	"github.com/hupe1980/relterm/vocab"
	"github.com/spf13/cobra"
)

func newScoreCommand(a *app) *cobra.Command {
	var (
		input   string
		targets string
		oracle  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a ranked output against a table of word pair similarities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			o, err := score.LoadPairOracleFile(oracle)
			if err != nil {
				return err
			}

			var opts []score.Option
			if targets != "" {
				ws, err := vocab.LoadWordListFile(targets)
				if err != nil {
					return err
				}
				opts = append(opts, score.WithTargets(ws))
			}
			if verbose {
				opts = append(opts, score.WithLogger(a.logger.Logger))
			}

			src := corpus.FileSource{Path: input}
			raw, err := src.Open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = raw.Close() }()

			r, err := compress.NewReader(raw, compress.FormatOf(src.Name()))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			defer func() { _ = r.Close() }()

			res, err := score.NewScorer(o, opts...).Score(ctx, r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base words: %d\n", res.BaseWords)
			fmt.Fprintf(out, "candidates: %d\n", res.Candidates)
			fmt.Fprintf(out, "mean: %.4f\n", res.Mean)
			fmt.Fprintf(out, "stddev: %.4f\n", res.StdDev)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "ranked output to score (.gz, .zst and .lz4 are decompressed)")
	f.StringVarP(&targets, "targets", "t", "", "file of base words to score, one per line")
	f.StringVar(&oracle, "oracle", "", "file of \"<word> <word> <score>\" lines")
	f.BoolVar(&verbose, "verbose", false, "log progress")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("oracle")
	return cmd
}
