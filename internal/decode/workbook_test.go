package decode

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xl-idp/unzipping/internal/catalog"
)

func TestWorkbook_ChooseSheetAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("инвойс спецификация 2024")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"wrong", "sheet"}))
	require.NoError(t, f.SetSheetRow("инвойс спецификация 2024", "A1", &[]any{"SELLER/ПРОДАВЕЦ", "OOO ROMASHKA"}))
	// A2 left blank on purpose.
	require.NoError(t, f.SetSheetRow("инвойс спецификация 2024", "A3", &[]any{"1", "6403990000"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	sheet := wb.ChooseSheet(catalog.Default().PrioritySheets())
	assert.Equal(t, "инвойс спецификация 2024", sheet)

	rows, err := wb.Rows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2, "all-empty rows are dropped")
	assert.Equal(t, "SELLER/ПРОДАВЕЦ", rows[0][0])
	assert.Equal(t, "6403990000", rows[1][1])
}

func TestWorkbook_ChooseSheetFallsBackToFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "Sheet1", wb.ChooseSheet(catalog.Default().PrioritySheets()))
}

func TestContainerNumber(t *testing.T) {
	assert.Equal(t, "TKRU1234567", ContainerNumber("invoice TKRU1234567 rail"))
	assert.Equal(t, "", ContainerNumber("no container here 1234567"))
	assert.Equal(t, "MSKU7654321", ContainerNumber("MSKU7654321\nTKRU1234567"))
}
