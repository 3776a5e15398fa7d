package commands

import (
	"github.com/spf13/cobra"

	"tsvd/internal/tsv"
)

// normalize: expand multi-valued cells into the cross-product of rows.
func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Expand colon-separated cell values into one row per combination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput()
			if err != nil {
				return err
			}
			if err := tsv.CheckDocument(doc); err != nil {
				return err
			}
			return writeOutput(tsv.Expand(doc))
		},
	}
}
