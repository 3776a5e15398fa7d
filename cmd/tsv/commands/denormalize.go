package commands

import (
	"github.com/spf13/cobra"

	"tsvd/internal/tsv"
)

// denormalize: group repeated keys into colon-joined multi-valued cells.
func denormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "denormalize",
		Short: "Group repeated keys into colon-joined multi-valued cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput()
			if err != nil {
				return err
			}
			return writeOutput(tsv.Aggregate(doc))
		},
	}
}
