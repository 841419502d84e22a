package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func (a *app) newLocalIDCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "localid",
		Short: "Print fresh _localId values for new records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), schema.NewLocalID())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers to print")
	return cmd
}
