package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/records"
)

func (c *Cli) newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *records.Store) error {
				rec, err := store.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				c.io.Printf("Created %s (%s)\n", rec.Name, rec.Dir)
				return nil
			})
		},
	}
}
