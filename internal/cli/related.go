package cli

import (
	"fmt"

	"github.com/hupe1980/relterm"
	"github.com/hupe1980/relterm/similarity"
	"github.com/spf13/cobra"
)

func newRelatedCommand(a *app) *cobra.Command {
	b := &buildFlags{}
	var (
		policy     string
		partitions int
		topK       int
		radius     int
		runID      string
	)

	cmd := &cobra.Command{
		Use:   "related",
		Short: "Rank related words into one output per vocabulary partition",
		Long: `Rank related words into one output per vocabulary partition.

Outputs are named after --output with a partition number: "related.txt"
becomes related-000.txt, related-001.txt, ... A failed partition does not
stop the others. Rerunning with the same --run-id skips the partitions that
already committed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b.apply(cmd, a)
			f := cmd.Flags()
			if f.Changed("policy") {
				a.cfg.Run.Policy = policy
			}
			if f.Changed("partitions") {
				a.cfg.Run.Partitions = partitions
			}
			if f.Changed("top-k") {
				a.cfg.Run.TopK = topK
			}
			if f.Changed("radius") {
				a.cfg.Run.Radius = radius
			}
			ctx := cmd.Context()

			p, err := similarity.ParsePolicy(a.cfg.Run.Policy)
			if err != nil {
				return err
			}
			store, prefix, err := a.outputStore(ctx, b.output)
			if err != nil {
				return err
			}

			opts := append(a.engineOptions(), relterm.WithPolicy(p))
			if runID != "" {
				ledger, err := a.ledger(ctx, store)
				if err != nil {
					return err
				}
				opts = append(opts, relterm.WithRunID(runID), relterm.WithLedger(ledger))
			}
			eng, err := relterm.New(opts...)
			if err != nil {
				return err
			}

			m, err := a.build(ctx, eng, b, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			report, runErr := eng.RunPartitioned(ctx, m, store, prefix)
			out := cmd.OutOrStdout()
			for _, st := range report.Partitions {
				fmt.Fprintf(out, "%03d %s %s %d\n", st.Range.Index, st.Output, st.State, st.Lines)
			}
			fmt.Fprintf(out, "run %s: %d lines, %d of %d partitions failed\n",
				report.RunID, report.Lines(), len(report.Failed()), len(report.Partitions))
			return runErr
		},
	}
	b.register(cmd)

	f := cmd.Flags()
	f.StringVar(&policy, "policy", "distance", "similarity policy (distance, dot, frequency)")
	f.IntVar(&partitions, "partitions", 0, "number of vocabulary partitions")
	f.IntVar(&topK, "top-k", 0, "related words per base word")
	f.IntVar(&radius, "radius", 0, "neighborhood radius of the distance policy")
	f.StringVar(&runID, "run-id", "", "run id; enables resuming a failed run")
	return cmd
}
