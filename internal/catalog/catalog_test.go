package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xl-idp/unzipping/internal/textnorm"
)

func TestDefault_Lookups(t *testing.T) {
	cat := Default()

	field, ok := cat.Field(textnorm.Tight("HS CODE / КОД ТНВЭД"))
	require.True(t, ok)
	assert.Equal(t, FieldTnvedCode, field)

	role, ok := cat.Role(textnorm.Tight("SELLER/ПРОДАВЕЦ"))
	require.True(t, ok)
	assert.Equal(t, RoleSellerPriority, role)

	_, ok = cat.Role(textnorm.Tight("definitely not a label"))
	assert.False(t, ok)

	assert.Len(t, cat.TableFields(), 11)
	assert.Equal(t, []string{RoleSeller, RoleSellerPriority, RoleBuyer, RoleBuyerPriority}, cat.PartyRoles())
}

func TestDefault_ContinuationRoles(t *testing.T) {
	cat := Default()

	role, ok := cat.ContinuationRole(1)
	require.True(t, ok)
	assert.Equal(t, RoleSeller, role)

	_, ok = cat.ContinuationRole(2)
	assert.False(t, ok)

	role, ok = cat.ContinuationRole(4)
	require.True(t, ok)
	assert.Equal(t, RoleBuyerPriority, role)
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unzipping_table.xlsx")
	writeCatalogWorkbook(t, path)

	cat, err := Load(path)
	require.NoError(t, err)

	role, ok := cat.Role(textnorm.Tight("ГРУЗООТПРАВИТЕЛЬ CUSTOM"))
	require.True(t, ok)
	assert.Equal(t, RoleSeller, role)

	field, ok := cat.Field(textnorm.Tight("CUSTOM TNVED"))
	require.True(t, ok)
	assert.Equal(t, FieldTnvedCode, field)

	require.Len(t, cat.StationAliases(), 1)
	assert.Equal(t, "NAHODKA", cat.StationAliases()[0].Substr)
	assert.Equal(t, "Находка-Восточная", cat.StationAliases()[0].Unified)
}

func TestLoad_MissingHeaderColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	f := excelize.NewFile()
	for _, sheet := range []string{sheetLabels, sheetHeaders, sheetStation} {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	require.NoError(t, f.SetSheetRow(sheetLabels, "A1", &[]any{"seller"}))
	require.NoError(t, f.SetSheetRow(sheetHeaders, "A1", &[]any{"model"})) // 10 fields missing
	require.NoError(t, f.SetSheetRow(sheetStation, "A1", &[]any{"station", "station_unified"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := Load(path)
	assert.Error(t, err)
}

// writeCatalogWorkbook builds a minimal but complete synonym workbook.
func writeCatalogWorkbook(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	for _, sheet := range []string{sheetLabels, sheetHeaders, sheetStation} {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	require.NoError(t, f.SetSheetRow(sheetLabels, "A1", &[]any{
		"seller", "seller_priority", "buyer", "buyer_priority", "destination_station", "departure_station", "container_number",
	}))
	require.NoError(t, f.SetSheetRow(sheetLabels, "A2", &[]any{
		"ГРУЗООТПРАВИТЕЛЬ CUSTOM", "ПРОДАВЕЦ", "ПОКУПАТЕЛЬ", "BUYER", "СТАНЦИЯ НАЗНАЧЕНИЯ", "СТАНЦИЯ ОТПРАВЛЕНИЯ", "КОНТЕЙНЕР",
	}))

	fields := Default().TableFields()
	header := make([]any, len(fields))
	synonyms := make([]any, len(fields))
	for i, field := range fields {
		header[i] = field
		synonyms[i] = "SYN " + field
	}
	synonyms[2] = "CUSTOM TNVED"
	require.NoError(t, f.SetSheetRow(sheetHeaders, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheetHeaders, "A2", &synonyms))

	require.NoError(t, f.SetSheetRow(sheetStation, "A1", &[]any{"station", "station_unified"}))
	require.NoError(t, f.SetSheetRow(sheetStation, "A2", &[]any{"NAHODKA", "Находка-Восточная"}))

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}
