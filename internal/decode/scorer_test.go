package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xl-idp/unzipping/internal/catalog"
)

func TestScorer_Score(t *testing.T) {
	s := NewScorer(catalog.Default(), 0, 0, nil)

	tests := []struct {
		name      string
		row       []string
		wantCells int
		wantScore int
	}{
		{
			name:      "full header row",
			row:       []string{"№", "HS CODE/КОД ТНВЭД", "НАИМЕНОВАНИЕ ТОВАРА", "КОЛ-ВО МЕСТ", "ВЕС НЕТТО, КГ", "ВЕС БРУТТО, КГ"},
			wantCells: 6,
			wantScore: 100,
		},
		{
			name:      "mixed row",
			row:       []string{"№", "HS CODE/КОД ТНВЭД", "foo", "bar"},
			wantCells: 4,
			wantScore: 50,
		},
		{
			name:      "metadata row",
			row:       []string{"SELLER/ПРОДАВЕЦ", "", "OOO ROMASHKA"},
			wantCells: 2,
			wantScore: 0,
		},
		{
			name:      "empty row",
			row:       []string{"", "", ""},
			wantCells: 0,
			wantScore: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, score := s.Score(tt.row)
			assert.Equal(t, tt.wantCells, cells)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestScorer_IsHeader(t *testing.T) {
	s := NewScorer(catalog.Default(), 0, 0, nil)

	assert.True(t, s.IsHeader(6, 100))
	assert.True(t, s.IsHeader(5, 20))
	assert.False(t, s.IsHeader(4, 100), "too few cells")
	assert.False(t, s.IsHeader(10, 19), "score below coefficient")
}
