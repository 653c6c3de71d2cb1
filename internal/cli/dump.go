package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/relterm"
	"github.com/hupe1980/relterm/export"
	"github.com/spf13/cobra"
)

func newDumpCommand(a *app) *cobra.Command {
	b := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the co-occurrence matrix as TSV triples or into SQLite",
		Long: `Dump the co-occurrence matrix.

An output ending in .sqlite or .db is written as a local SQLite database.
Anything else receives "word<TAB>candidate<TAB>count" lines, compressed
according to its suffix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b.apply(cmd, a)
			ctx := cmd.Context()

			eng, err := relterm.New(a.engineOptions()...)
			if err != nil {
				return err
			}
			m, err := a.build(ctx, eng, b, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var cells int
			switch filepath.Ext(b.output) {
			case ".sqlite", ".db":
				db, err := export.OpenSQLite(b.output)
				if err != nil {
					return err
				}
				cells, err = db.WriteMatrix(ctx, m)
				if cerr := db.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
			default:
				store, name, err := a.outputStore(ctx, b.output)
				if err != nil {
					return err
				}
				err = writeBlob(ctx, store, name, func(w io.Writer) error {
					cells, err = export.WriteTriples(w, m)
					return err
				})
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cells to %s\n", cells, b.output)
			return nil
		},
	}
	b.register(cmd)
	return cmd
}
