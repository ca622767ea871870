package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxText renders every sheet of a workbook as pipe-separated rows,
// one sheet header per sheet.
func xlsxText(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		b.WriteString("=== Sheet: " + sheet + " ===\n")
		for _, row := range rows {
			blank := true
			for _, cell := range row {
				if strings.TrimSpace(cell) != "" {
					blank = false
					break
				}
			}
			if blank {
				continue
			}
			b.WriteString(strings.Join(row, " | "))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
