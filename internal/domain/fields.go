package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FieldKind describes how a column's values are rendered.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInt
	KindDate
	KindBool
	KindPercent
)

// Field is one addressable column of the task vocabulary.
type Field struct {
	Name  string
	Kind  FieldKind
	value func(TaskRecord) any
}

// Value returns the typed cell value for t. Dates come back as time.Time and
// are nil when unset.
func (f Field) Value(t TaskRecord) any {
	v := f.value(t)
	if tm, ok := v.(time.Time); ok && tm.IsZero() {
		return nil
	}
	return v
}

// Text renders the value for terminal output.
func (f Field) Text(t TaskRecord) string {
	v := f.Value(t)
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format("02/01/2006")
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

const (
	FieldUniqueID       = "UniqueID"
	FieldID             = "ID"
	FieldSummaryTask    = "SummaryTask"
	FieldName           = "Name"
	FieldStart          = "Start"
	FieldFinish         = "Finish"
	FieldPercent        = "% Complete"
	FieldResources      = "Resource Names"
	FieldNotes          = "Notes"
	FieldPredecessors   = "Predecessors"
	FieldDuration       = "Duration"
	FieldOutlineLevel   = "Outline Level"
	FieldOutlineNumber  = "Outline Number"
	FieldWBS            = "WBS"
	FieldMilestone      = "Milestone"
	FieldCritical       = "Critical"
	FieldPriority       = "Priority"
	FieldDeadline       = "Deadline"
	FieldActualStart    = "Actual Start"
	FieldActualFinish   = "Actual Finish"
	FieldBaselineStart  = "Baseline Start"
	FieldBaselineFinish = "Baseline Finish"
	FieldWIP            = "WIP"
)

var fields = []Field{
	{FieldUniqueID, KindInt, func(t TaskRecord) any { return t.UniqueID }},
	{FieldID, KindInt, func(t TaskRecord) any { return t.ID }},
	{FieldSummaryTask, KindText, func(t TaskRecord) any { return t.SummaryPath }},
	{FieldName, KindText, func(t TaskRecord) any { return t.Name }},
	{FieldStart, KindDate, func(t TaskRecord) any { return t.Start }},
	{FieldFinish, KindDate, func(t TaskRecord) any { return t.Finish }},
	{FieldPercent, KindPercent, func(t TaskRecord) any { return strconv.Itoa(t.PercentComplete) + "%" }},
	{FieldResources, KindText, func(t TaskRecord) any { return strings.Join(t.Resources, ", ") }},
	{FieldNotes, KindText, func(t TaskRecord) any { return t.Notes }},
	{FieldPredecessors, KindText, func(t TaskRecord) any { return strings.Join(t.Predecessors, ", ") }},
	{FieldDuration, KindText, func(t TaskRecord) any { return t.Duration }},
	{FieldOutlineLevel, KindInt, func(t TaskRecord) any { return t.OutlineLevel }},
	{FieldOutlineNumber, KindText, func(t TaskRecord) any { return t.OutlineNumber }},
	{FieldWBS, KindText, func(t TaskRecord) any { return t.WBS }},
	{FieldMilestone, KindBool, func(t TaskRecord) any { return t.Milestone }},
	{FieldCritical, KindBool, func(t TaskRecord) any { return t.Critical }},
	{FieldPriority, KindInt, func(t TaskRecord) any { return t.Priority }},
	{FieldDeadline, KindDate, func(t TaskRecord) any { return t.Deadline }},
	{FieldActualStart, KindDate, func(t TaskRecord) any { return t.ActualStart }},
	{FieldActualFinish, KindDate, func(t TaskRecord) any { return t.ActualFinish }},
	{FieldBaselineStart, KindDate, func(t TaskRecord) any { return t.BaselineStart }},
	{FieldBaselineFinish, KindDate, func(t TaskRecord) any { return t.BaselineFinish }},
	{FieldWIP, KindText, func(t TaskRecord) any { return string(t.WIP) }},
}

var fieldIndex = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[strings.ToLower(f.Name)] = f
	}
	return m
}()

// LookupField finds a field by name, ignoring case.
func LookupField(name string) (Field, bool) {
	f, ok := fieldIndex[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// FieldNames lists the vocabulary in alphabetical order.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// ConstantHeaders are always emitted, in this order.
var ConstantHeaders = []string{FieldUniqueID, FieldSummaryTask, FieldName, FieldStart, FieldFinish, FieldPercent}

// DefaultExtraHeaders follow the constant headers when no extras are requested.
var DefaultExtraHeaders = []string{FieldResources, FieldNotes, FieldPredecessors}

// InvalidFieldError lists requested columns missing from the vocabulary.
type InvalidFieldError struct {
	Fields []string
}

func (e *InvalidFieldError) Error() string {
	quoted := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		quoted[i] = strconv.Quote(f)
	}
	return "not valid project fields: " + strings.Join(quoted, ", ")
}

// ResolveHeaders builds the output column list. Extras are appended after the
// constant headers with duplicates removed; a single unknown extra rejects
// the whole set.
func ResolveHeaders(extra []string) ([]string, error) {
	if len(extra) == 0 {
		return append(append([]string{}, ConstantHeaders...), DefaultExtraHeaders...), nil
	}

	var unknown []string
	resolved := make([]string, 0, len(extra))
	for _, name := range extra {
		f, ok := LookupField(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		resolved = append(resolved, f.Name)
	}
	if len(unknown) > 0 {
		return nil, &InvalidFieldError{Fields: unknown}
	}

	headers := make([]string, 0, len(ConstantHeaders)+len(resolved))
	seen := make(map[string]bool)
	for _, h := range append(append([]string{}, ConstantHeaders...), resolved...) {
		if seen[h] {
			continue
		}
		seen[h] = true
		headers = append(headers, h)
	}
	return headers, nil
}
