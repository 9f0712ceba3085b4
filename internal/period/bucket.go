// Package period splits a flattened task table into an overdue bucket and
// consecutive fixed-length reporting windows after a due date.
package period

import (
	"time"

	"github.com/alexanderramin/mspreport/internal/domain"
)

// Window is a closed range of calendar days.
type Window struct {
	From time.Time
	To   time.Time
}

// Label renders the window as "from<>to".
func (w Window) Label() string {
	return domain.FormatDay(w.From) + "<>" + domain.FormatDay(w.To)
}

// Windows returns n contiguous windows of days each, the first starting the
// day after due.
func Windows(due time.Time, days, n int) []Window {
	out := make([]Window, 0, n)
	from := domain.Day(due).AddDate(0, 0, 1)
	for i := 0; i < n; i++ {
		to := from.AddDate(0, 0, days-1)
		out = append(out, Window{From: from, To: to})
		from = to.AddDate(0, 0, 1)
	}
	return out
}

func overdue(tbl domain.Table, due time.Time) domain.Bucket {
	due = domain.Day(due)
	return domain.Bucket{
		Label: domain.OverdueLabel,
		To:    due,
		Table: tbl.Filter(func(r domain.TaskRecord) bool {
			return !domain.Day(r.Finish).After(due)
		}),
	}
}

// Finishing buckets tasks by finish date: an Overdue bucket for finish on or
// before the due date, then PeriodCount-1 windows. Every task lands in at most
// one bucket.
func Finishing(src domain.Table, opts Options) ([]domain.Bucket, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tbl, err := opts.prepare(src)
	if err != nil {
		return nil, err
	}

	buckets := []domain.Bucket{overdue(tbl, opts.DueDate)}
	for _, w := range Windows(opts.DueDate, opts.PeriodDays, opts.PeriodCount-1) {
		buckets = append(buckets, domain.Bucket{
			Label: w.Label(),
			From:  w.From,
			To:    w.To,
			Table: tbl.Filter(func(r domain.TaskRecord) bool {
				f := domain.Day(r.Finish)
				return !f.Before(w.From) && !f.After(w.To)
			}),
		})
	}
	return buckets, nil
}

// WIP buckets tasks whose start..finish range overlaps each window. It
// returns the Overdue bucket plus PeriodCount windows; a task may appear in
// several windows. With WIPColumn set each window row is tagged with its
// relation to the window.
func WIP(src domain.Table, opts Options) ([]domain.Bucket, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tbl, err := opts.prepare(src)
	if err != nil {
		return nil, err
	}

	buckets := []domain.Bucket{overdue(tbl, opts.DueDate)}
	for _, w := range Windows(opts.DueDate, opts.PeriodDays, opts.PeriodCount) {
		inWindow := tbl.Filter(func(r domain.TaskRecord) bool { return w.Overlaps(r) })
		if opts.WIPColumn {
			inWindow = inWindow.WithColumn(domain.FieldWIP).Map(func(r domain.TaskRecord) domain.TaskRecord {
				r.WIP = w.Status(r)
				return r
			})
		}
		buckets = append(buckets, domain.Bucket{
			Label: w.Label(),
			From:  w.From,
			To:    w.To,
			Table: inWindow,
		})
	}
	return buckets, nil
}

// Overlaps reports whether the task is active at some point in the window:
// it starts inside the window, or starts before and finishes inside, or
// spans the whole window.
func (w Window) Overlaps(r domain.TaskRecord) bool {
	s, f := domain.Day(r.Start), domain.Day(r.Finish)
	startsInside := !s.Before(w.From) && !s.After(w.To) && !f.Before(w.From)
	spans := !s.After(w.From) && !f.Before(w.To)
	finishesInside := !s.After(w.From) && !f.Before(w.From) && !f.After(w.To)
	return startsInside || spans || finishesInside
}

// Status tags a task already known to overlap the window. The rules are
// applied in order and a later match replaces an earlier one.
func (w Window) Status(r domain.TaskRecord) domain.WIPStatus {
	s, f := domain.Day(r.Start), domain.Day(r.Finish)
	status := domain.WIPSpanning
	if !s.Before(w.From) {
		status = domain.WIPStarting
	}
	if f.Before(w.To) {
		status = domain.WIPFinishing
	}
	if s.After(w.From) && !f.After(w.To) {
		status = domain.WIPStartingFinishing
	}
	return status
}
