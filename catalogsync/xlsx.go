package catalogsync

import (
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
)

// ReadRows parses the first sheet of the workbook into string rows. Blank
// rows are dropped; the header row, if any, is kept and falls out later
// through price detection.
func ReadRows(path string) ([][]string, error) {
	workbook, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, httperr.Wrap(httperr.KindNotFound, err, "xlsx file not found: %s", path)
	}
	if len(workbook.Sheets) == 0 {
		return nil, httperr.New(httperr.KindConfiguration, "workbook has no sheets")
	}

	sheet := workbook.Sheets[0]
	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		blank := true
		for i, cell := range row.Cells {
			cells[i] = strings.TrimSpace(cell.String())
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// cellAt is tolerant row access: rows from the sheet are ragged.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
