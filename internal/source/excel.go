package source

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads a spreadsheet statement export. The data table is
// taken from the first sheet with the header at opts.HeaderRow, the
// statement-label cell is read raw from opts.StatementCell, and every cell
// of every sheet feeds RawText so content scans see material outside the
// data table.
func ReadWorkbook(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	primary := sheets[0]

	rows, err := f.GetRows(primary)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", primary, err)
	}
	if len(rows) <= opts.HeaderRow {
		return nil, fmt.Errorf("sheet %s has no data table at header row %d", primary, opts.HeaderRow)
	}

	t := &Table{Path: path, Columns: rows[opts.HeaderRow]}
	for _, rec := range rows[opts.HeaderRow+1:] {
		row := make([]string, len(t.Columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}

	if opts.StatementCell != "" {
		// Read raw, ignoring the header offset. Errors here degrade the
		// statement label to its filename fallback, nothing more.
		if cell, err := f.GetCellValue(primary, opts.StatementCell); err == nil {
			t.HeaderCell = cell
		}
	}

	var raw strings.Builder
	for _, sheet := range sheets {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, rec := range sheetRows {
			for _, cell := range rec {
				if cell == "" {
					continue
				}
				raw.WriteString(cell)
				raw.WriteByte('\n')
			}
		}
	}
	t.RawText = raw.String()

	return t, nil
}
