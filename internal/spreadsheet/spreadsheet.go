// Package spreadsheet isolates xlsx handling behind a narrow surface so the
// handlers never depend on the spreadsheet library directly.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Row is one importable student line from the bulk-import sheet.
type Row struct {
	Name  string
	Phone string
}

const sheetName = "Students"

// TemplateFilename is the suggested download name for the import template.
const TemplateFilename = "student-import-template.xlsx"

// ContentType is the MIME type for xlsx downloads.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ParseRows reads student rows from an uploaded xlsx file.
// The first row of the first sheet is treated as the header and skipped;
// column A is the name, column B the phone number.
func ParseRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close() //nolint: errcheck

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var rows []Row
	for i, cell := range cells {
		if i == 0 {
			continue // header
		}
		var row Row
		if len(cell) > 0 {
			row.Name = cell[0]
		}
		if len(cell) > 1 {
			row.Phone = cell[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RenderTemplate produces an empty import sheet containing only the header
// row, ready to be filled in and uploaded.
func RenderTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint: errcheck

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &[]any{"Name", "Phone"}); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return buf.Bytes(), nil
}
