package domain

import (
	"strings"
	"time"
)

// SummaryPathSeparator joins ancestor summary names in a flattened path.
const SummaryPathSeparator = ">"

// TaskRecord is one row of a project schedule. Summary rows only matter while
// flattening; reports carry leaf rows with SummaryPath filled in.
type TaskRecord struct {
	UniqueID      int
	ID            int
	Name          string
	OutlineLevel  int
	OutlineNumber string
	WBS           string
	IsSummary     bool
	Milestone     bool
	Critical      bool
	Priority      int

	Start          time.Time
	Finish         time.Time
	Deadline       time.Time
	ActualStart    time.Time
	ActualFinish   time.Time
	BaselineStart  time.Time
	BaselineFinish time.Time
	Duration       string

	PercentComplete int
	Notes           string
	Predecessors    []string
	Resources       []string

	// Set by the flattener.
	SummaryPath string
	// Set by the WIP bucketer when tagging is requested.
	WIP WIPStatus
}

// IsComplete reports whether the task is 100% complete.
func (t TaskRecord) IsComplete() bool {
	return t.PercentComplete >= 100
}

// PathDepth returns the number of ancestor names in SummaryPath.
func (t TaskRecord) PathDepth() int {
	if t.SummaryPath == "" {
		return 0
	}
	return len(strings.Split(t.SummaryPath, SummaryPathSeparator))
}

// Day returns midnight UTC of the calendar date t shows in its own location.
// Window comparisons are made on calendar days so that a task finishing at
// 17:00 on the due date is still overdue, whatever zone either side was
// parsed in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a calendar date the way bucket labels spell it.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
