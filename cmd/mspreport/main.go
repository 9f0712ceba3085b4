package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/mspreport/internal/cli"
	"github.com/alexanderramin/mspreport/internal/config"
	"github.com/alexanderramin/mspreport/internal/excel"
	"github.com/alexanderramin/mspreport/internal/logging"
	"github.com/alexanderramin/mspreport/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Wire: wire,
	}

	// Prompt for missing input only when a person is at the keyboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// wire builds the report service once configuration is known.
func wire(cfg *config.Config) (service.ReportService, io.Closer, error) {
	if err := os.MkdirAll(cfg.Log.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	logger, err := logging.New(cfg.Log, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	writer := excel.NewWriter(cfg.Excel, logger.Logger)
	reports := service.NewReportService(writer, logger.Logger, service.NewLogUseCaseObserver(logger.Logger))
	return reports, logger, nil
}
