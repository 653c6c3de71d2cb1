package cli

import (
	"fmt"
	"io"

	"github.com/hupe1980/relterm"
	"github.com/hupe1980/relterm/similarity"
	"github.com/spf13/cobra"
)

func newFreqCommand(a *app) *cobra.Command {
	b := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Rank every vocabulary word by co-occurrence frequency into one output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b.apply(cmd, a)
			ctx := cmd.Context()

			eng, err := relterm.New(append(a.engineOptions(),
				relterm.WithPolicy(similarity.PolicyFrequency))...)
			if err != nil {
				return err
			}
			m, err := a.build(ctx, eng, b, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			store, name, err := a.outputStore(ctx, b.output)
			if err != nil {
				return err
			}
			var lines int
			err = writeBlob(ctx, store, name, func(w io.Writer) error {
				lines, err = eng.WriteRanked(ctx, m, w)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d lines to %s\n", lines, b.output)
			return nil
		},
	}
	b.register(cmd)
	return cmd
}
