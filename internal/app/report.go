package app

import (
	"time"

	"github.com/alexanderramin/mspreport/internal/domain"
)

// ReportRequest describes one report run. DueDate uses DD/MM/YYYY and
// defaults to today when empty.
type ReportRequest struct {
	Mode            domain.ReportMode
	SourcePath      string
	OutputPath      string
	OutputDir       string
	Now             *time.Time
	DueDate         string
	PeriodDays      int
	PeriodCount     int
	IncludeComplete bool
	WIPColumn       bool
	Fields          []string
	IgnoreIDs       []int
	FilterField     string
	FilterPattern   string
}

func NewReportRequest(mode domain.ReportMode) ReportRequest {
	return ReportRequest{
		Mode:            mode,
		OutputDir:       ".",
		PeriodDays:      7,
		PeriodCount:     5,
		IncludeComplete: mode == domain.ModeFlat,
		WIPColumn:       true,
	}
}

type BucketSummary struct {
	Label string
	From  *time.Time
	To    *time.Time
	Count int
}

type ReportResponse struct {
	RunID       string
	ProjectName string
	Mode        domain.ReportMode
	DueDate     time.Time
	OutputPath  string
	Buckets     []BucketSummary
	Ignored     []int
	Unmatched   []int
	Warnings    []string
}

// TaskListResponse is the flattened project without bucketing.
type TaskListResponse struct {
	RunID       string
	ProjectName string
	Table       domain.Table
	OutputPath  string
	Ignored     []int
	Unmatched   []int
}

type ReportErrorCode string

const (
	ReportErrInvalidSource  ReportErrorCode = "INVALID_SOURCE"
	ReportErrInvalidField   ReportErrorCode = "INVALID_FIELD"
	ReportErrInvalidDueDate ReportErrorCode = "INVALID_DUE_DATE"
	ReportErrInvalidOptions ReportErrorCode = "INVALID_OPTIONS"
	ReportErrWriteFailed    ReportErrorCode = "WRITE_FAILED"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
