package cli

import (
	"fmt"

	"github.com/alexanderramin/mspreport/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFieldsCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the task fields usable with --fields and --filter-field",
		Args:  cobra.NoArgs,
		// no project or log file is needed to list fields
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFields())
			return nil
		},
	}
}
