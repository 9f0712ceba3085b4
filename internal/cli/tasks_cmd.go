package cli

import (
	"fmt"

	"github.com/alexanderramin/mspreport/internal/app"
	"github.com/alexanderramin/mspreport/internal/cli/formatter"
	"github.com/alexanderramin/mspreport/internal/config"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/spf13/cobra"
)

func newTasksCmd(a *App) *cobra.Command {
	var f reportFlags
	var incomplete bool
	var width int
	var browse bool

	cmd := &cobra.Command{
		Use:   "tasks [FILE]",
		Short: "List the flattened tasks with their summary paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &promptInput{}
			if len(args) == 1 {
				in.path = args[0]
			}
			if err := a.resolveInput(cmd, in); err != nil {
				return err
			}

			req := app.NewReportRequest(domain.ModeFlat)
			req.SourcePath = in.path
			req.OutputPath = f.out
			req.IncludeComplete = !incomplete
			req.Fields = a.Config.Report.Fields
			req.IgnoreIDs = a.Config.Report.IgnoreIDs
			req.FilterField = f.filterField
			req.FilterPattern = f.filterPattern

			resp, err := a.Reports.Flatten(cmd.Context(), req)
			if err != nil {
				return err
			}
			if browse && a.interactive() {
				return a.runBrowser(cmd, newBrowseModel(resp.ProjectName, resp.Table))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(resp, width))
			return nil
		},
	}

	cmd.Flags().BoolVar(&incomplete, "incomplete", false, "Leave out 100% complete tasks")
	cmd.Flags().BoolVar(&browse, "browse", false, "Open an interactive, filterable table (terminal only)")
	cmd.Flags().IntVar(&width, "width", 40, "Truncate cells wider than this (0 disables)")
	addSelectionFlags(cmd, &f, config.DefaultConfig())

	return cmd
}
