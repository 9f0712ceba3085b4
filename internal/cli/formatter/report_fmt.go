package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/mspreport/internal/app"
	"github.com/alexanderramin/mspreport/internal/domain"
)

// FormatReport summarises a generated workbook.
func FormatReport(resp *app.ReportResponse) string {
	var b strings.Builder

	info := KeyValue([][2]string{
		{"Project", Bold(resp.ProjectName)},
		{"Mode", string(resp.Mode)},
		{"Due", DayMonthYear(resp.DueDate)},
		{"Workbook", resp.OutputPath},
		{"Run", Dim(resp.RunID)},
	})
	b.WriteString(RenderBox("report written", info))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(resp.Buckets))
	total := 0
	for _, bk := range resp.Buckets {
		from, to := "", ""
		if bk.From != nil {
			from = DayMonthYear(*bk.From)
		}
		if bk.To != nil {
			to = DayMonthYear(*bk.To)
		}
		count := strconv.Itoa(bk.Count)
		if bk.Count == 0 {
			count = Dim(count)
		}
		rows = append(rows, []string{BucketLabel(bk.Label), from, to, count})
		total += bk.Count
	}
	b.WriteString(RenderTable([]string{"SHEET", "FROM", "TO", "TASKS"}, rows, 0))
	b.WriteString(Dim(Plural(total, "row")+" across "+Plural(len(resp.Buckets), "sheet")) + "\n")

	if len(resp.Ignored) > 0 {
		b.WriteString("\n" + Dim("Ignored: "+joinInts(resp.Ignored)) + "\n")
	}
	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	return b.String()
}

// FormatTaskList prints the flattened task table. maxCol caps cell width.
func FormatTaskList(resp *app.TaskListResponse, maxCol int) string {
	var b strings.Builder
	b.WriteString(Header(resp.ProjectName))
	b.WriteString("\n\n")

	tbl := resp.Table
	rows := make([][]string, 0, tbl.Len())
	for _, r := range tbl.Rows {
		row := make([]string, len(tbl.Columns))
		for i, c := range tbl.Columns {
			f, ok := domain.LookupField(c)
			if !ok {
				continue
			}
			row[i] = f.Text(r)
			if c == domain.FieldWIP && (maxCol <= 0 || len(row[i]) <= maxCol) {
				row[i] = WIPColor(r.WIP).Render(row[i])
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		b.WriteString(Dim("No tasks match.") + "\n")
	} else {
		b.WriteString(RenderTable(tbl.Columns, rows, maxCol))
	}
	b.WriteString("\n" + Dim(Plural(tbl.Len(), "task")) + "\n")
	if resp.OutputPath != "" {
		b.WriteString(StyleGreen.Render("Written to "+resp.OutputPath) + "\n")
	}
	for _, id := range resp.Unmatched {
		b.WriteString(StyleYellow.Render("! task "+strconv.Itoa(id)+" was not ignored, as not in project file") + "\n")
	}
	return b.String()
}

var kindLabels = map[domain.FieldKind]string{
	domain.KindText:    "text",
	domain.KindInt:     "number",
	domain.KindDate:    "date",
	domain.KindBool:    "yes/no",
	domain.KindPercent: "percent",
}

// FormatFields lists the field vocabulary, marking the always-present columns.
func FormatFields() string {
	always := make(map[string]bool, len(domain.ConstantHeaders))
	for _, h := range domain.ConstantHeaders {
		always[h] = true
	}
	rows := make([][]string, 0)
	for _, name := range domain.FieldNames() {
		f, _ := domain.LookupField(name)
		note := ""
		if always[name] {
			note = Dim("always included")
		}
		rows = append(rows, []string{name, kindLabels[f.Kind], note})
	}
	return Header("fields") + "\n\n" + RenderTable([]string{"NAME", "KIND", ""}, rows, 0)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
