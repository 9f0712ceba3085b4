package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/mspreport/internal/app"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/alexanderramin/mspreport/internal/excel"
	"github.com/alexanderramin/mspreport/internal/importer"
	"github.com/alexanderramin/mspreport/internal/outline"
	"github.com/alexanderramin/mspreport/internal/period"
	"github.com/google/uuid"
)

type reportService struct {
	writer   WorkbookWriter
	logger   *slog.Logger
	observer UseCaseObserver
	newRunID func() string
}

func NewReportService(writer WorkbookWriter, logger *slog.Logger, observers ...UseCaseObserver) ReportService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &reportService{
		writer:   writer,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
		newRunID: uuid.NewString,
	}
}

// flattened is a loaded project reduced to its leaf task table.
type flattened struct {
	name      string
	table     domain.Table
	ignored   []int
	unmatched []int
}

func (s *reportService) Generate(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	runID := s.newRunID()
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"mode":   string(req.Mode),
		"source": req.SourcePath,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-report",
			RunID:     runID,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	due, err := period.ParseDueDate(req.DueDate, now)
	if err != nil {
		return nil, &app.ReportError{Code: app.ReportErrInvalidDueDate, Message: err.Error(), Err: err}
	}
	fields["due"] = domain.FormatDay(due)

	opts := period.Options{
		DueDate:        due,
		PeriodDays:     req.PeriodDays,
		PeriodCount:    req.PeriodCount,
		IncompleteOnly: !req.IncludeComplete,
		WIPColumn:      req.WIPColumn,
		FilterField:    req.FilterField,
		FilterPattern:  req.FilterPattern,
	}
	if req.Mode != domain.ModeFlat {
		if err := opts.Validate(); err != nil {
			return nil, &app.ReportError{Code: app.ReportErrInvalidOptions, Message: err.Error(), Err: err}
		}
	}

	flat, err := s.load(ctx, runID, req)
	if err != nil {
		return nil, err
	}

	var buckets []domain.Bucket
	switch req.Mode {
	case domain.ModeFinishing:
		buckets, err = period.Finishing(flat.table, opts)
	case domain.ModeWIP:
		buckets, err = period.WIP(flat.table, opts)
	case domain.ModeFlat:
		var tbl domain.Table
		tbl, err = filterTable(flat.table, req)
		buckets = []domain.Bucket{{Label: "Tasks", Table: tbl}}
	default:
		err = fmt.Errorf("unknown report mode %q (valid: %s)", req.Mode, strings.Join(modeNames(), ", "))
	}
	if err != nil {
		return nil, &app.ReportError{Code: app.ReportErrInvalidOptions, Message: err.Error(), Err: err}
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = DefaultOutputPath(req.OutputDir, req.SourcePath, req.Mode, due)
	}
	wb := excel.Workbook{Title: flat.name, RunID: runID}
	summaries := make([]app.BucketSummary, 0, len(buckets))
	for _, b := range buckets {
		wb.Sheets = append(wb.Sheets, excel.Sheet{Name: b.Label, Table: b.Table})
		summaries = append(summaries, bucketSummary(b))
		s.logger.DebugContext(ctx, "bucket built", "run_id", runID, "bucket", b.Label, "rows", b.Table.Len())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.writer.Write(outPath, wb); err != nil {
		return nil, &app.ReportError{Code: app.ReportErrWriteFailed, Message: "writing workbook: " + err.Error(), Err: err}
	}
	fields["output"] = outPath
	fields["sheets"] = len(wb.Sheets)

	return &app.ReportResponse{
		RunID:       runID,
		ProjectName: flat.name,
		Mode:        req.Mode,
		DueDate:     due,
		OutputPath:  outPath,
		Buckets:     summaries,
		Ignored:     flat.ignored,
		Unmatched:   flat.unmatched,
		Warnings:    unmatchedWarnings(flat.unmatched),
	}, nil
}

func (s *reportService) Flatten(ctx context.Context, req app.ReportRequest) (resp *app.TaskListResponse, err error) {
	runID := s.newRunID()
	startedAt := time.Now().UTC()
	fields := map[string]any{"source": req.SourcePath}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "flatten-project",
			RunID:     runID,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.FilterField != "" {
		if _, ok := domain.LookupField(req.FilterField); !ok {
			fe := &domain.InvalidFieldError{Fields: []string{req.FilterField}}
			return nil, &app.ReportError{Code: app.ReportErrInvalidField, Message: fe.Error(), Err: fe}
		}
	}

	flat, err := s.load(ctx, runID, req)
	if err != nil {
		return nil, err
	}
	tbl, err := filterTable(flat.table, req)
	if err != nil {
		return nil, &app.ReportError{Code: app.ReportErrInvalidOptions, Message: err.Error(), Err: err}
	}
	fields["rows"] = tbl.Len()

	if req.OutputPath != "" {
		wb := excel.Workbook{
			Title:  flat.name,
			RunID:  runID,
			Sheets: []excel.Sheet{{Name: "Tasks", Table: tbl}},
		}
		if err := s.writer.Write(req.OutputPath, wb); err != nil {
			return nil, &app.ReportError{Code: app.ReportErrWriteFailed, Message: "writing workbook: " + err.Error(), Err: err}
		}
		fields["output"] = req.OutputPath
	}

	return &app.TaskListResponse{
		RunID:       runID,
		ProjectName: flat.name,
		Table:       tbl,
		OutputPath:  req.OutputPath,
		Ignored:     flat.ignored,
		Unmatched:   flat.unmatched,
	}, nil
}

// load reads, validates and flattens the source project.
func (s *reportService) load(ctx context.Context, runID string, req app.ReportRequest) (*flattened, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	headers, err := domain.ResolveHeaders(req.Fields)
	if err != nil {
		return nil, &app.ReportError{Code: app.ReportErrInvalidField, Message: err.Error(), Err: err}
	}

	s.logger.InfoContext(ctx, "loading project", "run_id", runID, "path", req.SourcePath)
	schema, err := importer.LoadProjectSchema(req.SourcePath)
	if err != nil {
		return nil, &app.ReportError{Code: app.ReportErrInvalidSource, Message: err.Error(), Err: err}
	}
	if errs := importer.ValidateProjectSchema(schema); len(errs) > 0 {
		verr := formatValidationErrors(errs)
		return nil, &app.ReportError{Code: app.ReportErrInvalidSource, Message: verr.Error(), Err: verr}
	}
	project, err := importer.Convert(schema)
	if err != nil {
		return nil, &app.ReportError{Code: app.ReportErrInvalidSource, Message: err.Error(), Err: err}
	}

	res := outline.Flatten(project.Tasks, req.IgnoreIDs)
	for _, id := range res.Unmatched {
		s.logger.InfoContext(ctx, "task was not ignored, as not in project file", "run_id", runID, "unique_id", id)
	}
	s.logger.DebugContext(ctx, "project flattened",
		"run_id", runID,
		"records", len(project.Tasks),
		"leaves", len(res.Tasks),
		"ignored", len(res.Ignored),
	)

	return &flattened{
		name:      project.Name,
		table:     domain.NewTable(headers, res.Tasks),
		ignored:   res.Ignored,
		unmatched: res.Unmatched,
	}, nil
}

// filterTable applies the completion and field filters used outside of
// period bucketing.
func filterTable(tbl domain.Table, req app.ReportRequest) (domain.Table, error) {
	if !req.IncludeComplete {
		tbl = tbl.Incomplete()
	}
	if req.FilterField == "" {
		return tbl, nil
	}
	re, err := regexp.Compile(req.FilterPattern)
	if err != nil {
		return domain.Table{}, fmt.Errorf("filter pattern: %w", err)
	}
	return tbl.MatchField(req.FilterField, re)
}

// DefaultOutputPath names the workbook after the source file, the report
// mode and the due date.
func DefaultOutputPath(dir, source string, mode domain.ReportMode, due time.Time) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "project"
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%s.xlsx", base, mode, domain.FormatDay(due)))
}

func bucketSummary(b domain.Bucket) app.BucketSummary {
	sum := app.BucketSummary{Label: b.Label, Count: b.Table.Len()}
	if !b.From.IsZero() {
		from := b.From
		sum.From = &from
	}
	if !b.To.IsZero() {
		to := b.To
		sum.To = &to
	}
	return sum
}

func unmatchedWarnings(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("task %d was not ignored, as not in project file", id)
	}
	return out
}

func modeNames() []string {
	names := make([]string, 0, len(domain.ValidReportModes))
	for m := range domain.ValidReportModes {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("project validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", importer.ErrInvalidSource, msg)
}

// IsReportError reports whether err carries the given code.
func IsReportError(err error, code app.ReportErrorCode) bool {
	var re *app.ReportError
	return errors.As(err, &re) && re.Code == code
}
