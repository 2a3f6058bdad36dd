package decode

import (
	"github.com/xl-idp/unzipping/internal/catalog"
	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/textnorm"
)

// Default header detection thresholds.
const (
	DefaultHeaderCoefficient = 20
	DefaultHeaderMinCells    = 5
)

// Scorer rates a row's likelihood of being the line-item header by matching
// its cells against the known header synonyms.
type Scorer struct {
	cat         *catalog.Catalog
	coefficient int
	minCells    int
	log         *observability.Logger
}

// NewScorer creates a scorer. Zero thresholds fall back to the defaults.
func NewScorer(cat *catalog.Catalog, coefficient, minCells int, log *observability.Logger) *Scorer {
	if coefficient <= 0 {
		coefficient = DefaultHeaderCoefficient
	}
	if minCells <= 0 {
		minCells = DefaultHeaderMinCells
	}
	if log == nil {
		log = observability.Nop()
	}
	return &Scorer{cat: cat, coefficient: coefficient, minCells: minCells, log: log}
}

// Score returns the number of non-empty cells and the integer percentage of
// them whose tight form matches a header synonym. A non-zero score below the
// detection coefficient usually means the synonym table is missing entries,
// so it is logged.
func (s *Scorer) Score(row []string) (cells, score int) {
	matches := 0
	for _, cell := range row {
		if cell == "" {
			continue
		}
		cells++
		if s.cat.IsHeaderSynonym(textnorm.Tight(cell)) {
			matches++
		}
	}
	if cells == 0 {
		return 0, 0
	}
	score = matches * 100 / cells
	if score != 0 && score < s.coefficient {
		s.log.Warn().
			Int("score", score).
			Strs("row", row).
			Msg("header probability below coefficient")
	}
	return cells, score
}

// IsHeader reports whether a scored row qualifies as the table header.
func (s *Scorer) IsHeader(cells, score int) bool {
	return score >= s.coefficient && cells >= s.minCells
}
