package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds a spreadsheet export with the conventional
// layout: preamble rows, data table header on 0-based row 6, statement
// label in B1, and the amex content marker on a secondary sheet.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "A1", "Prepared for"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Statement period ending 01/31/2025 account 1234"))

	require.NoError(t, f.SetSheetRow(sheet, "A7", &[]interface{}{
		"Date", "Description", "Amount", "Appears On Your Statement As",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A8", &[]interface{}{
		"01/03/2025", "STARBUCKS #123", "4.50", "STARBUCKS STORE 123",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A9", &[]interface{}{
		"01/05/2025", "WEGMANS", "12.00", "WEGMANS #45",
	}))

	_, err := f.NewSheet("Details")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Details", "A3", "Platinum Card ending 5-1006"))

	path := filepath.Join(t.TempDir(), "activity.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}
