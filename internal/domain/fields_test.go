package domain

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHeaders_Defaults(t *testing.T) {
	headers, err := ResolveHeaders(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"UniqueID", "SummaryTask", "Name", "Start", "Finish", "% Complete",
		"Resource Names", "Notes", "Predecessors",
	}, headers)
}

func TestResolveHeaders_ExtrasAreDedupedAndCanonical(t *testing.T) {
	headers, err := ResolveHeaders([]string{"wbs", "Name", "Critical", "WBS"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"UniqueID", "SummaryTask", "Name", "Start", "Finish", "% Complete",
		"WBS", "Critical",
	}, headers)
}

func TestResolveHeaders_UnknownRejectsWholeSet(t *testing.T) {
	headers, err := ResolveHeaders([]string{"Name", "Colour", "Mood"})
	require.Error(t, err)
	assert.Nil(t, headers)

	var fieldErr *InvalidFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, []string{"Colour", "Mood"}, fieldErr.Fields)
	assert.Contains(t, err.Error(), `"Colour"`)
}

func TestLookupField_IgnoresCaseAndSpace(t *testing.T) {
	f, ok := LookupField("  % complete ")
	require.True(t, ok)
	assert.Equal(t, FieldPercent, f.Name)

	_, ok = LookupField("nope")
	assert.False(t, ok)
}

func TestField_TextAndValue(t *testing.T) {
	task := TaskRecord{
		UniqueID:        42,
		Name:            "Pour slab",
		Start:           time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC),
		PercentComplete: 35,
		Milestone:       true,
		Resources:       []string{"Crew A", "Pump"},
	}

	cases := map[string]string{
		FieldUniqueID:  "42",
		FieldName:      "Pour slab",
		FieldStart:     "04/03/2024",
		FieldFinish:    "",
		FieldPercent:   "35%",
		FieldMilestone: "Yes",
		FieldCritical:  "No",
		FieldResources: "Crew A, Pump",
	}
	for name, want := range cases {
		f, ok := LookupField(name)
		require.True(t, ok, name)
		assert.Equal(t, want, f.Text(task), name)
	}

	finish, _ := LookupField(FieldFinish)
	assert.Nil(t, finish.Value(task), "unset dates have no value")
}

func TestFieldNames_Sorted(t *testing.T) {
	names := FieldNames()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, FieldBaselineFinish)
}

func TestTable_FilterReturnsCopy(t *testing.T) {
	rows := []TaskRecord{{Name: "a", PercentComplete: 100}, {Name: "b"}}
	tbl := NewTable([]string{FieldName}, rows)
	rows[1].Name = "changed"

	inc := tbl.Incomplete()
	require.Equal(t, 1, inc.Len())
	assert.Equal(t, "b", inc.Rows[0].Name)
	assert.Equal(t, 2, tbl.Len())

	tagged := inc.WithColumn(FieldWIP).Map(func(r TaskRecord) TaskRecord {
		r.WIP = WIPStarting
		return r
	})
	assert.Equal(t, []string{FieldName, FieldWIP}, tagged.Columns)
	assert.Equal(t, []string{FieldName}, inc.Columns)
	assert.Equal(t, WIPNone, inc.Rows[0].WIP)
	assert.Equal(t, []string{FieldName, FieldWIP}, tagged.WithColumn(FieldWIP).Columns)
}

func TestTable_MatchField(t *testing.T) {
	tbl := NewTable([]string{FieldName}, []TaskRecord{{Name: "Pour"}, {Name: "Cure"}})

	out, err := tbl.MatchField("name", regexp.MustCompile("^P"))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())

	_, err = tbl.MatchField("Colour", regexp.MustCompile("."))
	var fieldErr *InvalidFieldError
	assert.True(t, errors.As(err, &fieldErr))
}

func TestTable_Cells(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tbl := NewTable([]string{FieldUniqueID, FieldName, FieldStart, FieldFinish}, []TaskRecord{
		{UniqueID: 7, Name: "x", Start: start},
	})
	cells, err := tbl.Cells(0)
	require.NoError(t, err)
	assert.Equal(t, []any{7, "x", start, nil}, cells)

	bad := NewTable([]string{"Colour"}, tbl.Rows)
	_, err = bad.Cells(0)
	assert.Error(t, err)
}

func TestTaskRecord_PathDepth(t *testing.T) {
	assert.Equal(t, 0, TaskRecord{}.PathDepth())
	assert.Equal(t, 1, TaskRecord{SummaryPath: "A"}.PathDepth())
	assert.Equal(t, 3, TaskRecord{SummaryPath: "A>B>C"}.PathDepth())
}

func TestDay_TruncatesTime(t *testing.T) {
	got := Day(time.Date(2024, 1, 15, 17, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-01-15", FormatDay(got))
}

func TestDay_KeepsCalendarDateAcrossZones(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	west := time.FixedZone("UTC-5", -5*60*60)
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, want, Day(time.Date(2024, 1, 10, 1, 0, 0, 0, east)))
	assert.Equal(t, want, Day(time.Date(2024, 1, 10, 23, 0, 0, 0, west)))
	assert.True(t, Day(time.Date(2024, 1, 10, 0, 0, 0, 0, east)).Equal(Day(time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC))))
}
