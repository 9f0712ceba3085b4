package excel

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/mspreport/internal/config"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/alexanderramin/mspreport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() domain.Table {
	rows := []domain.TaskRecord{
		testutil.NewLeaf("Draft brief", 3,
			testutil.WithUID(3),
			testutil.WithPath("Phase A>Design"),
			testutil.WithDates(testutil.Date(2024, 1, 2), testutil.Date(2024, 1, 9)),
			testutil.WithPercent(50),
			testutil.WithResources("Alice"),
		),
		testutil.NewLeaf("Implement", 3,
			testutil.WithUID(6),
			testutil.WithPath("Phase A>Build"),
			testutil.WithDates(testutil.Date(2024, 1, 10), testutil.Date(2024, 2, 15)),
		),
	}
	columns, _ := domain.ResolveHeaders(nil)
	return domain.NewTable(columns, rows)
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite_SheetsAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := NewWriter(config.DefaultConfig().Excel, nil)

	err := w.Write(path, Workbook{
		Title: "Office Fit-out",
		RunID: "run-1",
		Sheets: []Sheet{
			{Name: domain.OverdueLabel, Table: sampleTable()},
			{Name: "2024-01-10<>2024-01-16", Table: domain.NewTable(sampleTable().Columns, nil)},
		},
	})
	require.NoError(t, err)

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Overdue", "2024-01-10<>2024-01-16"}, f.GetSheetList())

	rows, err := f.GetRows("Overdue")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ConstantHeaders, rows[0][:len(domain.ConstantHeaders)])
	assert.Equal(t, "3", rows[1][0])
	assert.Equal(t, "Phase A>Design", rows[1][1])
	assert.Equal(t, "Draft brief", rows[1][2])
	assert.Equal(t, "50%", rows[1][5])
	assert.Equal(t, "Alice", rows[1][6])

	empty, err := f.GetRows("2024-01-10<>2024-01-16")
	require.NoError(t, err)
	require.Len(t, empty, 1, "empty bucket keeps its header row")
}

func TestWrite_Formatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	format := config.DefaultConfig().Excel
	w := NewWriter(format, nil)
	require.NoError(t, w.Write(path, Workbook{Title: "Fit-out", RunID: "abc", Sheets: []Sheet{{Name: "Tasks", Table: sampleTable()}}}))

	f := openWorkbook(t, path)

	// SummaryTask is column B, Notes column H.
	width, err := f.GetColWidth("Tasks", "B")
	require.NoError(t, err)
	assert.InDelta(t, format.MediumWidth, width, 0.01)
	width, err = f.GetColWidth("Tasks", "H")
	require.NoError(t, err)
	assert.InDelta(t, format.LargeWidth, width, 0.01)

	view, err := f.GetSheetView("Tasks", 0)
	require.NoError(t, err)
	require.NotNil(t, view.ZoomScale)
	assert.InDelta(t, 60.0, *view.ZoomScale, 0.01)

	panes, err := f.GetPanes("Tasks")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Fit-out", props.Title)
	assert.Equal(t, "abc", props.Identifier)
}

func TestWrite_NoSheets(t *testing.T) {
	w := NewWriter(config.DefaultConfig().Excel, nil)
	err := w.Write(filepath.Join(t.TempDir(), "x.xlsx"), Workbook{})
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestWrite_UnknownColumn(t *testing.T) {
	w := NewWriter(config.DefaultConfig().Excel, nil)
	table := sampleTable()
	table.Columns = append(table.Columns, "Colour")
	err := w.Write(filepath.Join(t.TempDir(), "x.xlsx"), Workbook{Sheets: []Sheet{{Name: "Tasks", Table: table}}})
	var fieldErr *domain.InvalidFieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Overdue", want: "Overdue"},
		{in: "2024-01-01<>2024-01-07", want: "2024-01-01<>2024-01-07"},
		{in: "a/b:c", want: "a-b-c"},
		{in: "what?*", want: "what"},
		{in: "[draft]", want: "(draft)"},
		{in: "'quoted'", want: "quoted"},
		{in: "   ", want: "Sheet"},
		{in: strings.Repeat("x", 40), want: strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSheetName(tt.in))
		})
	}
}

func TestSheetNames_Unique(t *testing.T) {
	long := strings.Repeat("y", 35)
	names := SheetNames([]Sheet{{Name: "Tasks"}, {Name: "tasks"}, {Name: "Tasks"}, {Name: long}, {Name: long}})
	assert.Equal(t, "Tasks", names[0])
	assert.Equal(t, "tasks (2)", names[1])
	assert.Equal(t, "Tasks (3)", names[2])
	assert.Len(t, names[3], 31)
	assert.Equal(t, strings.Repeat("y", 27)+" (2)", names[4])
}

func TestAutofitWidth(t *testing.T) {
	table := sampleTable()
	// UniqueID values are short so the header length wins.
	assert.InDelta(t, float64(len("UniqueID")+2), autofitWidth(table, 0), 0.01)

	table.Rows[0].Name = strings.Repeat("n", 100)
	assert.InDelta(t, maxAutofit, autofitWidth(table, 2), 0.01)
}
