// Package export renders report bundles into office workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ejmancilla/sigms/internal/app/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkbookRenderer renders a report bundle as an xlsx workbook: one summary
// sheet followed by one sheet per table.
type WorkbookRenderer struct{}

// NewWorkbookRenderer creates a WorkbookRenderer.
func NewWorkbookRenderer() *WorkbookRenderer {
	return &WorkbookRenderer{}
}

// FileExtension returns "xlsx".
func (r *WorkbookRenderer) FileExtension() string { return "xlsx" }

// Render implements reports.Renderer.
func (r *WorkbookRenderer) Render(bundle *reports.Bundle) ([]byte, string, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("new style: %w", err)
	}

	// Summary sheet replaces the default Sheet1.
	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellStr(summarySheet, "A1", bundle.Title); err != nil {
		return nil, "", fmt.Errorf("set title: %w", err)
	}
	_ = f.SetCellStyle(summarySheet, "A1", "A1", bold)
	if err := f.SetCellStr(summarySheet, "A2", bundle.GeneratedAt.Format("2006-01-02")); err != nil {
		return nil, "", fmt.Errorf("set date: %w", err)
	}

	for i, item := range bundle.Summary {
		row := i + 4
		if err := f.SetCellStr(summarySheet, fmt.Sprintf("A%d", row), item.Label); err != nil {
			return nil, "", fmt.Errorf("set summary label: %w", err)
		}
		if err := f.SetCellStr(summarySheet, fmt.Sprintf("B%d", row), item.Value); err != nil {
			return nil, "", fmt.Errorf("set summary value: %w", err)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 36)
	_ = f.SetColWidth(summarySheet, "B", "B", 18)

	for _, table := range bundle.Tables {
		name := sheetName(table.Name)
		if _, err := f.NewSheet(name); err != nil {
			return nil, "", fmt.Errorf("new sheet %q: %w", name, err)
		}

		for col, header := range table.Headers {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, header); err != nil {
				return nil, "", fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		if len(table.Headers) > 0 {
			end := colName(len(table.Headers)) + "1"
			_ = f.SetCellStyle(name, "A1", end, bold)
			_ = f.AutoFilter(name, "A1:"+end, nil)
		}

		for r, row := range table.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, "", fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// Width heuristic from header and first rows.
		for c := 1; c <= len(table.Headers); c++ {
			maxim := len(table.Headers[c-1])
			for r := 0; r < len(table.Rows) && r < 50; r++ {
				if c-1 < len(table.Rows[r]) {
					if l := len(table.Rows[r][c-1]); l > maxim {
						maxim = l
					}
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), xlsxContentType, nil
}

// sheetName trims a table name to the 31-character sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
