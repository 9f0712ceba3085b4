package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/mspreport/internal/cli/formatter"
	"github.com/alexanderramin/mspreport/internal/period"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// errNoSource is returned when no project file was given and nobody can be
// asked for one.
var errNoSource = errors.New("a project file is required: pass FILE (a .xml or .json export)")

// promptInput holds the values a command may need to ask for.
type promptInput struct {
	path   string
	due    string
	askDue bool
}

// resolveInput fills in a missing project path by prompting when the
// session is interactive.
func (a *App) resolveInput(cmd *cobra.Command, in *promptInput) error {
	if in.path != "" {
		return nil
	}
	if !a.interactive() {
		return errNoSource
	}
	prompt := a.Prompt
	if prompt == nil {
		prompt = huhPrompt
	}
	if err := prompt(cmd, in); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	in.path = strings.TrimSpace(in.path)
	if in.path == "" {
		return errNoSource
	}
	return nil
}

func huhPrompt(cmd *cobra.Command, in *promptInput) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("Project file").
			Description("Project XML (.xml) or JSON (.json) export").
			Placeholder("plan.xml").
			Value(&in.path).
			Validate(validateSourcePath),
	}
	if in.askDue {
		fields = append(fields, huh.NewInput().
			Title("Due date (DD/MM/YYYY, blank for today)").
			Placeholder("31/01/2025").
			Value(&in.due).
			Validate(validateDueDate))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(mspreportHuhTheme()).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(cmd.ErrOrStderr()))
	return form.RunWithContext(cmd.Context())
}

func validateSourcePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("enter a file path")
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".xml", ".json":
	default:
		return errors.New("expected a .xml or .json export")
	}
	info, err := os.Stat(s)
	if err != nil {
		return errors.New("file not found")
	}
	if info.IsDir() {
		return errors.New("that is a directory")
	}
	return nil
}

func validateDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := period.ParseDueDate(s, time.Now()); err != nil {
		return errors.New("use DD/MM/YYYY")
	}
	return nil
}

func mspreportHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
