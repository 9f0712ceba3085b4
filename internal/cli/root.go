package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/mspreport/internal/config"
	"github.com/alexanderramin/mspreport/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and environment hooks used by CLI commands.
type App struct {
	Reports service.ReportService

	// Wire builds Reports from the loaded configuration. It runs before
	// every command when Reports is nil; the returned Closer is closed after
	// the command finishes.
	Wire func(cfg *config.Config) (service.ReportService, io.Closer, error)

	// IsInteractive reports whether the user can answer prompts.
	IsInteractive func() bool
	// Prompt asks for missing command input. Defaults to a huh form.
	Prompt func(cmd *cobra.Command, in *promptInput) error
	// RunProgram runs a full-screen model. Defaults to a tea.Program.
	RunProgram func(cmd *cobra.Command, model tea.Model) error
	Now        func() time.Time

	Config *config.Config
	closer io.Closer
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runBrowser(cmd *cobra.Command, model tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(cmd, model)
	}
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "mspreport" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "mspreport",
		Short:         "Period reports from Microsoft Project exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg
			if app.Reports == nil && app.Wire != nil {
				reports, closer, err := app.Wire(cfg)
				if err != nil {
					return err
				}
				app.Reports = reports
				app.closer = closer
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.closer == nil {
				return nil
			}
			err := app.closer.Close()
			app.closer = nil
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: mspreport.yaml in ./config, . or ~/.mspreport)")
	pf.String("log-level", defaults.Log.Level, "Log level: DEBUG, INFO, WARN or ERROR")
	pf.String("log-dir", defaults.Log.Dir, "Directory for run logs")

	root.AddCommand(
		newReportCmd(app, reportFinishing),
		newReportCmd(app, reportWIP),
		newTasksCmd(app),
		newFieldsCmd(app),
	)

	return root
}
