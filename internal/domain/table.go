package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Table is an ordered set of task rows projected onto named columns.
// Methods never modify the receiver; they return new tables.
type Table struct {
	Columns []string
	Rows    []TaskRecord
}

// NewTable copies rows so later changes to the caller's slice do not leak in.
func NewTable(columns []string, rows []TaskRecord) Table {
	return Table{
		Columns: append([]string(nil), columns...),
		Rows:    append([]TaskRecord(nil), rows...),
	}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Filter returns the rows for which keep returns true.
func (t Table) Filter(keep func(TaskRecord) bool) Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Incomplete drops rows that are 100% complete.
func (t Table) Incomplete() Table {
	return t.Filter(func(r TaskRecord) bool { return !r.IsComplete() })
}

// MatchField keeps rows whose rendered field value matches re.
func (t Table) MatchField(field string, re *regexp.Regexp) (Table, error) {
	f, ok := LookupField(field)
	if !ok {
		return Table{}, &InvalidFieldError{Fields: []string{field}}
	}
	return t.Filter(func(r TaskRecord) bool { return re.MatchString(f.Text(r)) }), nil
}

// WithColumn appends a column name if the table does not already have it.
func (t Table) WithColumn(name string) Table {
	out := NewTable(t.Columns, t.Rows)
	for _, c := range out.Columns {
		if c == name {
			return out
		}
	}
	out.Columns = append(out.Columns, name)
	return out
}

// Map returns a table whose rows have been transformed by fn.
func (t Table) Map(fn func(TaskRecord) TaskRecord) Table {
	out := Table{Columns: append([]string(nil), t.Columns...), Rows: make([]TaskRecord, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = fn(r)
	}
	return out
}

// Cells renders row i as typed values in column order.
func (t Table) Cells(i int) ([]any, error) {
	row := t.Rows[i]
	cells := make([]any, len(t.Columns))
	for c, name := range t.Columns {
		f, ok := LookupField(name)
		if !ok {
			return nil, fmt.Errorf("column %q: %w", name, &InvalidFieldError{Fields: []string{name}})
		}
		cells[c] = f.Value(row)
	}
	return cells, nil
}

// Bucket is a labelled reporting window and the tasks that fall in it.
type Bucket struct {
	Label string
	From  time.Time
	To    time.Time
	Table Table
}

// IsOverdue reports whether this is the overdue bucket.
func (b Bucket) IsOverdue() bool {
	return b.Label == OverdueLabel
}
