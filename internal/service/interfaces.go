package service

import (
	"context"

	"github.com/alexanderramin/mspreport/internal/app"
	"github.com/alexanderramin/mspreport/internal/excel"
)

// ReportService builds period reports from a project export.
type ReportService interface {
	Generate(ctx context.Context, req app.ReportRequest) (*app.ReportResponse, error)
	Flatten(ctx context.Context, req app.ReportRequest) (*app.TaskListResponse, error)
}

// WorkbookWriter persists report sheets.
type WorkbookWriter interface {
	Write(path string, wb excel.Workbook) error
}
