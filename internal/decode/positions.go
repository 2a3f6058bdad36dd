package decode

// Positions tracks which sheet column holds each canonical table field.
// It is rebuilt per sheet; a field that never matched has no entry.
type Positions struct {
	idx map[string]int
}

// NewPositions returns an empty position map, optionally seeded with a
// workbook-default layout for sheets that carry no header row at all.
func NewPositions(seed map[string]int) *Positions {
	p := &Positions{idx: make(map[string]int)}
	for field, col := range seed {
		p.idx[field] = col
	}
	return p
}

// Set records the column index for a field.
func (p *Positions) Set(field string, col int) {
	p.idx[field] = col
}

// Get returns the column index for a field.
func (p *Positions) Get(field string) (int, bool) {
	col, ok := p.idx[field]
	return col, ok
}

// Known reports whether the field's column has been located.
func (p *Positions) Known(field string) bool {
	_, ok := p.idx[field]
	return ok
}

// Snapshot returns a copy of the located columns, for logging.
func (p *Positions) Snapshot() map[string]int {
	out := make(map[string]int, len(p.idx))
	for field, col := range p.idx {
		out[field] = col
	}
	return out
}
