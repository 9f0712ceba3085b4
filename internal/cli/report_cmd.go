package cli

import (
	"fmt"

	"github.com/alexanderramin/mspreport/internal/app"
	"github.com/alexanderramin/mspreport/internal/cli/formatter"
	"github.com/alexanderramin/mspreport/internal/config"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/spf13/cobra"
)

type reportKind struct {
	mode  domain.ReportMode
	short string
	long  string
}

var (
	reportFinishing = reportKind{
		mode:  domain.ModeFinishing,
		short: "Bucket tasks by the period they finish in",
		long: `Writes one worksheet of tasks finishing on or before the due date
("Overdue") followed by PERIODS-1 windows of PERIOD-DAYS days each. A task
appears in at most one sheet.`,
	}
	reportWIP = reportKind{
		mode:  domain.ModeWIP,
		short: "Bucket tasks by the periods they are active in",
		long: `Writes the "Overdue" worksheet followed by PERIODS windows. A task
appears in every window its start..finish range overlaps, tagged in the WIP
column with how it relates to the window.`,
	}
)

// reportFlags are shared by the report and tasks commands.
type reportFlags struct {
	due           string
	out           string
	all           bool
	noWIPColumn   bool
	filterField   string
	filterPattern string
}

func addSelectionFlags(cmd *cobra.Command, f *reportFlags, defaults config.Config) {
	cmd.Flags().StringSlice("fields", defaults.Report.Fields, "Extra columns after the fixed ones (see 'mspreport fields')")
	cmd.Flags().IntSlice("ignore", defaults.Report.IgnoreIDs, "Task UniqueIDs to leave out; ignoring a summary hides it from its tasks' paths")
	cmd.Flags().StringVar(&f.filterField, "filter-field", "", "Only keep rows whose FIELD matches --filter")
	cmd.Flags().StringVar(&f.filterPattern, "filter", "", "Regular expression applied to --filter-field")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Workbook path")
}

func newReportCmd(a *App, kind reportKind) *cobra.Command {
	var f reportFlags
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   string(kind.mode) + " [FILE]",
		Short: kind.short,
		Long:  kind.long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &promptInput{askDue: !cmd.Flags().Changed("due"), due: f.due}
			if len(args) == 1 {
				in.path = args[0]
			}
			if err := a.resolveInput(cmd, in); err != nil {
				return err
			}

			cfg := a.Config
			req := app.NewReportRequest(kind.mode)
			req.SourcePath = in.path
			req.DueDate = in.due
			now := a.now()
			req.Now = &now
			req.OutputPath = f.out
			req.OutputDir = cfg.Report.OutputDir
			req.PeriodDays = cfg.Report.PeriodDays
			req.PeriodCount = cfg.Report.PeriodCount
			req.IncludeComplete = !cfg.Report.IncompleteOnly
			if cmd.Flags().Changed("all") {
				req.IncludeComplete = f.all
			}
			req.WIPColumn = cfg.Report.WIPColumn && !f.noWIPColumn
			req.Fields = cfg.Report.Fields
			req.IgnoreIDs = cfg.Report.IgnoreIDs
			req.FilterField = f.filterField
			req.FilterPattern = f.filterPattern

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartReportProgress(cmd.ErrOrStderr(), string(kind.mode), req.SourcePath, req.DueDate)
			}
			resp, err := a.Reports.Generate(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.due, "due", "", "Due date DD/MM/YYYY (default today)")
	cmd.Flags().Int("period-days", defaults.Report.PeriodDays, "Length of each reporting window in days")
	cmd.Flags().Int("periods", defaults.Report.PeriodCount, "Number of periods")
	cmd.Flags().BoolVar(&f.all, "all", false, "Include 100% complete tasks")
	cmd.Flags().String("out-dir", defaults.Report.OutputDir, "Directory for the generated workbook when --out is not given")
	if kind.mode == domain.ModeWIP {
		cmd.Flags().BoolVar(&f.noWIPColumn, "no-wip-column", false, "Leave out the WIP tag column")
	}
	addSelectionFlags(cmd, &f, defaults)

	return cmd
}
