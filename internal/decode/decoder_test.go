package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xl-idp/unzipping/internal/catalog"
)

func TestDecoder_FullSheet(t *testing.T) {
	rows := [][]string{
		{"SELLER/ПРОДАВЕЦ", "", "OOO ROMASHKA", ""},
		{"ПОКУПАТЕЛЬ: OOO LUTIK"},
		{"СТАНЦИЯ НАЗНАЧЕНИЯ", "НАХОДКА ВОСТОЧНАЯ", ""},
		{"№", "HS CODE/КОД ТНВЭД", "НАИМЕНОВАНИЕ ТОВАРА", "КОЛ-ВО МЕСТ", "ВЕС НЕТТО, КГ", "ВЕС БРУТТО, КГ"},
		{"1", "6403990000", "Обувь", "10", "100", "110"},
		{"2", "6403 99 000 1", "Обувь зимняя", "5", "50", "55"},
		{"", "", "Итого", "15", "150", "165"},
	}

	var gotText string
	headerFired := 0
	d := NewDecoder(catalog.Default(), nil, Options{
		BaseHeader: map[string]string{KeyOriginalFileName: "test.xlsx"},
		OnHeader: func(header map[string]string, sheetText string) {
			headerFired++
			gotText = sheetText
			header["seller_priority_unified"] = "ООО РОМАШКА"
		},
	})

	rec, err := d.Decode(rows)
	require.NoError(t, err)

	assert.Equal(t, 1, headerFired)
	assert.Contains(t, gotText, "OOO ROMASHKA")
	assert.Contains(t, gotText, "6403990000")

	assert.Equal(t, "OOO ROMASHKA", rec.Header[catalog.RoleSellerPriority])
	assert.Equal(t, "OOO LUTIK", rec.Header[catalog.RoleBuyer])
	assert.Equal(t, "НАХОДКА ВОСТОЧНАЯ", rec.Header[catalog.RoleDestinationStation])

	require.Len(t, rec.Items, 2)
	assert.Equal(t, "6403990000", rec.Items[0][catalog.FieldTnvedCode])
	assert.Equal(t, "6403 99 000 1", rec.Items[1][catalog.FieldTnvedCode])
	// Items carry the enriched header snapshot, including callback additions.
	assert.Equal(t, "test.xlsx", rec.Items[0][KeyOriginalFileName])
	assert.Equal(t, "ООО РОМАШКА", rec.Items[0]["seller_priority_unified"])
	assert.Equal(t, "OOO LUTIK", rec.Items[1][catalog.RoleBuyer])
}

func TestDecoder_PartyFieldsMissing(t *testing.T) {
	rows := [][]string{
		{"какой-то мусор", "", ""},
		{"№", "HS CODE/КОД ТНВЭД", "НАИМЕНОВАНИЕ ТОВАРА", "КОЛ-ВО МЕСТ", "ВЕС НЕТТО, КГ", "ВЕС БРУТТО, КГ"},
	}
	d := NewDecoder(catalog.Default(), nil, Options{})
	_, err := d.Decode(rows)
	assert.ErrorIs(t, err, ErrPartyFieldsMissing)
}

func TestDecoder_TnvedColumnUnknown(t *testing.T) {
	rows := [][]string{
		{"SELLER/ПРОДАВЕЦ", "OOO ROMASHKA", ""},
		{"ПОКУПАТЕЛЬ: OOO LUTIK"},
		{"СТАНЦИЯ НАЗНАЧЕНИЯ", "НАХОДКА", ""},
		{"№", "НАИМЕНОВАНИЕ ТОВАРА", "КОЛ-ВО МЕСТ", "ВЕС НЕТТО, КГ", "ВЕС БРУТТО, КГ"},
		{"1", "Обувь", "10", "100", "110"},
	}
	d := NewDecoder(catalog.Default(), nil, Options{})
	_, err := d.Decode(rows)
	assert.ErrorIs(t, err, ErrTnvedColumnUnknown)
}

func TestDecoder_SeededPositions(t *testing.T) {
	// Sheets without any header row rely on a workbook-default layout.
	rows := [][]string{
		{"x", "Обувь", "8517120000", "5"},
		{"y", "Куртки", "6201 40", "3"},
	}
	d := NewDecoder(catalog.Default(), nil, Options{
		BaseHeader: map[string]string{KeyOriginalFileName: "fixed.xlsx"},
		SeedPositions: map[string]int{
			catalog.FieldGoodsDesc: 1,
			catalog.FieldTnvedCode: 2,
		},
	})

	rec, err := d.Decode(rows)
	require.NoError(t, err)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, "8517120000", rec.Items[0][catalog.FieldTnvedCode])
	assert.Equal(t, "6201 40", rec.Items[1][catalog.FieldTnvedCode])
	assert.Equal(t, "fixed.xlsx", rec.Items[0][KeyOriginalFileName])
}

func TestDecoder_DoubleAddressLabels(t *testing.T) {
	rows := [][]string{
		{"SHIPPER/ГРУЗООТПРАВИТЕЛЬ", "OOO SELLER", ""},
		{"Address/ Адрес/ 地址", "Shanghai Street 1", ""},
		{"Address/ Адрес/ 地址", "", "НАХОДКА"},
	}
	d := NewDecoder(catalog.Default(), nil, Options{})

	rec, err := d.Decode(rows)
	require.NoError(t, err)

	assert.Equal(t, "OOO SELLER Shanghai Street 1", rec.Header[catalog.RoleSeller])
	assert.Equal(t, "НАХОДКА", rec.Header[catalog.RoleDestinationStation])
}

func TestDecoder_SpanValueSelection(t *testing.T) {
	// The longest candidate wins for company roles; purely numeric candidates
	// are ignored.
	rows := [][]string{
		{"SELLER/ПРОДАВЕЦ", "123", "SHANGHAI TRADING COMPANY LTD", "SH LTD", ""},
		{"ПОКУПАТЕЛЬ: OOO LUTIK"},
		{"СТАНЦИЯ НАЗНАЧЕНИЯ", "НАХОДКА", "ВОСТОЧНАЯ"},
	}
	d := NewDecoder(catalog.Default(), nil, Options{})

	rec, err := d.Decode(rows)
	require.NoError(t, err)

	assert.Equal(t, "SHANGHAI TRADING COMPANY LTD", rec.Header[catalog.RoleSellerPriority])
	// Station spans take the first non-empty value, not the longest.
	assert.Equal(t, "НАХОДКА", rec.Header[catalog.RoleDestinationStation])
}
