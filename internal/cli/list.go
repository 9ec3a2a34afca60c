package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/records"
)

func (c *Cli) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list [QUERY]",
		Aliases: []string{"ls"},
		Short:   "List records whose name or tags contain QUERY",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			return c.withStore(cmd.Context(), func(store *records.Store) error {
				var rows [][]string
				for rec := range store.Filter(query) {
					rows = append(rows, []string{
						rec.Name,
						rec.Key,
						strings.Join(rec.Tags, ", "),
						yesNo(rec.Portrait != ""),
					})
				}

				if len(rows) == 0 {
					c.io.Println("No records found.")
					return nil
				}

				c.io.Println(renderTable([]string{"Name", "Key", "Tags", "Portrait"}, rows, nil))
				c.io.Printf("%d of %d record(s)\n", len(rows), store.Len())
				return nil
			})
		},
	}
}

func (c *Cli) newWarningsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "Show documents that could not be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *records.Store) error {
				warnings := store.Warnings()
				if len(warnings) == 0 {
					c.io.Println("No warnings.")
					return nil
				}

				rows := make([][]string, 0, len(warnings))
				for _, w := range warnings {
					var parseErr *records.DocumentParseError
					if errors.As(w, &parseErr) {
						rows = append(rows, []string{parseErr.Record, string(parseErr.Document), parseErr.Err.Error()})
						continue
					}
					rows = append(rows, []string{"-", "-", w.Error()})
				}

				c.io.Println(renderTable([]string{"Record", "Document", "Error"}, rows, nil))
				return nil
			})
		},
	}
}
