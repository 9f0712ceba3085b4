// Package excel writes report tables to an .xlsx workbook.
package excel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/mspreport/internal/config"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetName = 31
	maxAutofit   = 60.0
	minAutofit   = 8.0
)

// ErrNoSheets is returned when a workbook has nothing to write.
var ErrNoSheets = errors.New("workbook has no sheets")

// Sheet is one worksheet to write.
type Sheet struct {
	Name  string
	Table domain.Table
}

// Workbook describes a complete output file.
type Workbook struct {
	Title  string
	RunID  string
	Sheets []Sheet
}

// Writer renders workbooks using a fixed cosmetic format.
type Writer struct {
	format config.ExcelConfig
	logger *slog.Logger
}

// NewWriter returns a Writer. A nil logger discards output.
func NewWriter(format config.ExcelConfig, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{format: format, logger: logger}
}

// Write saves wb to path, replacing any existing file.
func (w *Writer) Write(path string, wb Workbook) (err error) {
	if len(wb.Sheets) == 0 {
		return ErrNoSheets
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	names := SheetNames(wb.Sheets)
	for i, s := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), names[0]); err != nil {
				return fmt.Errorf("renaming first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(names[i]); err != nil {
			return fmt.Errorf("creating sheet %q: %w", names[i], err)
		}
		if err := w.writeSheet(f, names[i], s.Table); err != nil {
			return fmt.Errorf("sheet %q: %w", names[i], err)
		}
		w.logger.Debug("sheet written", "sheet", names[i], "rows", s.Table.Len())
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      wb.Title,
		Identifier: wb.RunID,
		Creator:    "mspreport",
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	w.logger.Info("workbook saved", "path", path, "sheets", len(wb.Sheets))
	return nil
}

func (w *Writer) writeSheet(f *excelize.File, sheet string, t domain.Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range t.Rows {
		cells, err := t.Cells(i)
		if err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	if len(t.Columns) == 0 {
		return nil
	}
	if err := w.formatColumns(f, sheet, t); err != nil {
		return err
	}
	return w.formatSheet(f, sheet, len(t.Columns))
}

func (w *Writer) formatColumns(f *excelize.File, sheet string, t domain.Table) error {
	lastRow := t.Len() + 1
	for i, name := range t.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		layout := w.columnLayout(name)
		width := layout.width
		if layout.autofit {
			width = autofitWidth(t, i)
		}
		if width > 0 {
			if err := f.SetColWidth(sheet, col, col, width); err != nil {
				return err
			}
		}
		if lastRow < 2 {
			continue
		}
		style := &excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: layout.wrap},
		}
		if layout.date {
			numFmt := w.format.DateFormat
			style.CustomNumFmt = &numFmt
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, col+"2", fmt.Sprintf("%s%d", col, lastRow), id); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) formatSheet(f *excelize.File, sheet string, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	zoom := w.format.Zoom
	return f.SetSheetView(sheet, 0, &excelize.ViewOptions{ZoomScale: &zoom})
}

type columnLayout struct {
	width   float64
	wrap    bool
	date    bool
	autofit bool
}

func (w *Writer) columnLayout(name string) columnLayout {
	var l columnLayout
	switch {
	case containsFold(w.format.WrapLarge, name):
		l.width, l.wrap = w.format.LargeWidth, true
	case containsFold(w.format.WrapMedium, name):
		l.width, l.wrap = w.format.MediumWidth, true
	case containsFold(w.format.WrapSmall, name):
		l.width, l.wrap = w.format.SmallWidth, true
	}
	l.date = containsFold(w.format.DateColumns, name)
	l.autofit = containsFold(w.format.AutofitColumns, name)
	if l.date && l.width == 0 {
		l.autofit = true
	}
	return l
}

// autofitWidth estimates a column width from the longest rendered value.
func autofitWidth(t domain.Table, col int) float64 {
	longest := utf8.RuneCountInString(t.Columns[col])
	if f, ok := domain.LookupField(t.Columns[col]); ok {
		for _, r := range t.Rows {
			if n := utf8.RuneCountInString(f.Text(r)); n > longest {
				longest = n
			}
		}
	}
	return min(max(float64(longest)+2, minAutofit), maxAutofit)
}

func containsFold(list []string, name string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

var sheetNameReplacer = strings.NewReplacer(
	":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// SanitizeSheetName makes name a legal worksheet name.
func SanitizeSheetName(name string) string {
	s := strings.Trim(sheetNameReplacer.Replace(strings.TrimSpace(name)), "'")
	if s == "" {
		s = "Sheet"
	}
	return truncateRunes(s, maxSheetName)
}

// SheetNames sanitises every sheet name and makes them unique, ignoring case
// as Excel does.
func SheetNames(sheets []Sheet) []string {
	seen := make(map[string]bool, len(sheets))
	names := make([]string, len(sheets))
	for i, s := range sheets {
		base := SanitizeSheetName(s.Name)
		name := base
		for n := 2; seen[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
