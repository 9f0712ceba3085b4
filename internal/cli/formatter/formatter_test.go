package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/mspreport/internal/app"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/alexanderramin/mspreport/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONG"}, [][]string{{"xyz", "1"}, {"q"}}, 0))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "A    LONG", lines[0])
	assert.Equal(t, "───  ────", lines[1])
	assert.Equal(t, "xyz  1", lines[2])
	assert.Equal(t, "q    ", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, 0))
}

func TestRenderTable_Truncates(t *testing.T) {
	out := stripANSI(RenderTable([]string{"N"}, [][]string{{"abcdefghij"}}, 5))
	assert.Contains(t, out, "abcd…")
	assert.NotContains(t, out, "abcdefghij")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "a", Truncate("abcdef", 1))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 task", Plural(1, "task"))
	assert.Equal(t, "0 tasks", Plural(0, "task"))
	assert.Equal(t, "3 sheets", Plural(3, "sheet"))
}

func TestDayMonthYear(t *testing.T) {
	assert.Equal(t, "05/03/2024", DayMonthYear(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, DayMonthYear(time.Time{}))
}

func TestFormatReport(t *testing.T) {
	from := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	resp := &app.ReportResponse{
		RunID:       "run-1",
		ProjectName: "Office Fit-out",
		Mode:        domain.ModeFinishing,
		DueDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		OutputPath:  "fitout-finishing-2024-01-10.xlsx",
		Buckets: []app.BucketSummary{
			{Label: domain.OverdueLabel, To: &to, Count: 2},
			{Label: "2024-01-11<>2024-01-17", From: &from, To: &to, Count: 1},
		},
		Ignored:  []int{6, 9},
		Warnings: []string{"task 99 was not ignored, as not in project file"},
	}

	out := stripANSI(FormatReport(resp))
	assert.Contains(t, out, "Office Fit-out")
	assert.Contains(t, out, "10/01/2024")
	assert.Contains(t, out, "fitout-finishing-2024-01-10.xlsx")
	assert.Contains(t, out, "2024-01-11<>2024-01-17")
	assert.Contains(t, out, "11/01/2024")
	assert.Contains(t, out, "3 rows across 2 sheets")
	assert.Contains(t, out, "Ignored: 6, 9")
	assert.Contains(t, out, "task 99 was not ignored")
}

func TestFormatTaskList(t *testing.T) {
	rows := []domain.TaskRecord{
		testutil.NewLeaf("Draft brief", 3, testutil.WithUID(3), testutil.WithPath("Phase A>Design"), testutil.WithPercent(50)),
		testutil.NewLeaf("Kickoff", 1, testutil.WithUID(7)),
	}
	resp := &app.TaskListResponse{
		ProjectName: "Office Fit-out",
		Table:       domain.NewTable(domain.ConstantHeaders, rows),
		Unmatched:   []int{42},
	}

	out := stripANSI(FormatTaskList(resp, 0))
	assert.Contains(t, out, "OFFICE FIT-OUT")
	assert.Contains(t, out, "SummaryTask")
	assert.Contains(t, out, "Phase A>Design")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "2 tasks")
	assert.Contains(t, out, "task 42 was not ignored")
}

func TestFormatTaskList_Empty(t *testing.T) {
	resp := &app.TaskListResponse{ProjectName: "P", Table: domain.NewTable(domain.ConstantHeaders, nil)}
	out := stripANSI(FormatTaskList(resp, 0))
	assert.Contains(t, out, "No tasks match.")
	assert.Contains(t, out, "0 tasks")
}

func TestFormatFields(t *testing.T) {
	out := stripANSI(FormatFields())
	for _, name := range domain.FieldNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "always included")
	assert.Contains(t, out, "percent")
}

func TestWIPColor_DistinctForTags(t *testing.T) {
	assert.NotEqual(t, WIPColor(domain.WIPStarting).GetForeground(), WIPColor(domain.WIPFinishing).GetForeground())
	assert.Equal(t, StyleDim.GetForeground(), WIPColor(domain.WIPNone).GetForeground())
}

func TestReportProgressLabel(t *testing.T) {
	assert.Equal(t, "finishing report for fitout.xml, due 10/01/2024",
		ReportProgressLabel("finishing", "plans/fitout.xml", "10/01/2024"))
	assert.Equal(t, "wip report for fitout.xml, due today", ReportProgressLabel("wip", "fitout.xml", ""))
}

func TestProgress_DrawsLabelAndClearsOnStop(t *testing.T) {
	var buf bytes.Buffer
	stop := StartReportProgress(&buf, "wip", "fitout.xml", "10/01/2024")
	time.Sleep(2 * progressTick)
	stop()
	stop()

	out := stripANSI(buf.String())
	assert.Contains(t, out, "Building wip report for fitout.xml, due 10/01/2024")
	assert.Contains(t, out, progressFrames[0])
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"), "line is erased when done")
}
