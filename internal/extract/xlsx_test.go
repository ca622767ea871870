package extract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXlsxText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Programme"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Fee"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "B.Tech"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 52000))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := xlsxText(path)
	require.NoError(t, err)
	require.Contains(t, got, "=== Sheet: Sheet1 ===")
	require.Contains(t, got, "Programme | Fee")
	require.Contains(t, got, "B.Tech | 52000")
}

func TestXlsxTextMissingFile(t *testing.T) {
	_, err := xlsxText(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
}
