package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mspreport/internal/domain"
)

var testUIDCounter atomic.Int64

// Date returns midnight UTC for the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Task options
type TaskOption func(*domain.TaskRecord)

func WithUID(id int) TaskOption {
	return func(t *domain.TaskRecord) {
		t.UniqueID = id
	}
}

func WithDates(start, finish time.Time) TaskOption {
	return func(t *domain.TaskRecord) {
		t.Start = start
		t.Finish = finish
	}
}

func WithPercent(pct int) TaskOption {
	return func(t *domain.TaskRecord) {
		t.PercentComplete = pct
	}
}

func WithResources(names ...string) TaskOption {
	return func(t *domain.TaskRecord) {
		t.Resources = names
	}
}

func WithPath(path string) TaskOption {
	return func(t *domain.TaskRecord) {
		t.SummaryPath = path
	}
}

func nextUID() int {
	return int(testUIDCounter.Add(1))
}

// NewSummary builds a summary row at the given outline level.
func NewSummary(name string, level int, opts ...TaskOption) domain.TaskRecord {
	t := domain.TaskRecord{
		UniqueID:     nextUID(),
		Name:         name,
		OutlineLevel: level,
		IsSummary:    true,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewLeaf builds a leaf row at the given outline level, spanning one day
// starting 2024-01-01 unless overridden.
func NewLeaf(name string, level int, opts ...TaskOption) domain.TaskRecord {
	start := Date(2024, time.January, 1)
	t := domain.TaskRecord{
		UniqueID:     nextUID(),
		Name:         name,
		OutlineLevel: level,
		Start:        start,
		Finish:       start,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewWindowTask builds an already-flattened leaf for bucketing tests.
func NewWindowTask(name string, start, finish time.Time, opts ...TaskOption) domain.TaskRecord {
	t := NewLeaf(name, 2, WithDates(start, finish))
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
