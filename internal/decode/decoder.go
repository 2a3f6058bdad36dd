package decode

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/xl-idp/unzipping/internal/catalog"
	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/textnorm"
)

var (
	// ErrPartyFieldsMissing aborts a sheet whose header row was found before
	// both a seller, a buyer and a destination station were harvested.
	ErrPartyFieldsMissing = errors.New("decode: required party fields missing before table header")

	// ErrTnvedColumnUnknown aborts a sheet where a row looks like a line item
	// but the tariff-code column was never located.
	ErrTnvedColumnUnknown = errors.New("decode: tnved_code column not located")
)

var colonRe = regexp.MustCompile(`[:：]`)

// HeaderFunc is invoked once, when the header row is detected and validated.
// The sheet's full text is passed along so identity enrichment can check
// whether a resolved company name actually appears in the workbook.
type HeaderFunc func(header map[string]string, sheetText string)

// Options tunes a Decoder.
type Options struct {
	// BaseHeader pre-populates the header (file name, parse timestamp, ...).
	BaseHeader map[string]string
	// SeedPositions carries a workbook-default column layout for sheets that
	// start their table without any header row.
	SeedPositions map[string]int
	// OnHeader fires after the party-completeness check passes.
	OnHeader HeaderFunc
	// HeaderCoefficient and HeaderMinCells override the detection thresholds.
	HeaderCoefficient int
	HeaderMinCells    int
}

type state int

const (
	statePreHeader state = iota
	statePostHeader
)

// Decoder drives the row state machine for one sheet. Not safe for reuse;
// create one per sheet.
type Decoder struct {
	cat      *catalog.Catalog
	scorer   *Scorer
	log      *observability.Logger
	onHeader HeaderFunc

	state        state
	positions    *Positions
	header       map[string]string
	items        []map[string]string
	addressCount int
}

// NewDecoder creates a decoder for a single sheet.
func NewDecoder(cat *catalog.Catalog, log *observability.Logger, opts Options) *Decoder {
	if log == nil {
		log = observability.Nop()
	}
	header := make(map[string]string, len(opts.BaseHeader))
	for k, v := range opts.BaseHeader {
		header[k] = v
	}
	return &Decoder{
		cat:       cat,
		scorer:    NewScorer(cat, opts.HeaderCoefficient, opts.HeaderMinCells, log),
		log:       log,
		onHeader:  opts.OnHeader,
		positions: NewPositions(opts.SeedPositions),
		header:    header,
	}
}

// Decode runs the state machine over the sheet's rows and returns the
// accumulated record. Rows must already have all-empty rows dropped.
func (d *Decoder) Decode(rows [][]string) (*Record, error) {
	text := SheetText(rows)

	for _, row := range rows {
		if d.state == statePreHeader {
			cells, score := d.scorer.Score(row)
			if d.scorer.IsHeader(cells, score) {
				if !d.partyComplete() {
					return nil, ErrPartyFieldsMissing
				}
				if d.onHeader != nil {
					d.onHeader(d.header, text)
				}
				d.locateColumns(row)
				d.state = statePostHeader
				continue
			}
		}

		start, err := d.tableStart(row)
		if err != nil {
			return nil, err
		}
		if start {
			d.emit(row)
			continue
		}
		if d.state == statePreHeader {
			d.harvest(row)
		}
		// Post-header rows that are not line items are footers or spacers.
	}

	return &Record{Header: d.header, Items: d.items}, nil
}

// partyComplete checks the invariant required before entering the table:
// some seller, some buyer, and a destination station.
func (d *Decoder) partyComplete() bool {
	ok := (d.header[catalog.RoleSeller] != "" || d.header[catalog.RoleSellerPriority] != "") &&
		(d.header[catalog.RoleBuyer] != "" || d.header[catalog.RoleBuyerPriority] != "") &&
		d.header[catalog.RoleDestinationStation] != ""
	if !ok {
		d.log.Error().Interface("header", d.header).Msg("required party fields missing")
	}
	return ok
}

// locateColumns records which column carries each canonical table field.
func (d *Decoder) locateColumns(row []string) {
	for col, cell := range row {
		if cell == "" {
			continue
		}
		if field, ok := d.cat.Field(textnorm.Tight(cell)); ok {
			d.positions.Set(field, col)
		}
	}
	d.log.Info().Interface("columns", d.positions.Snapshot()).Msg("columns located")
}

// tableStart applies the headerless table-start heuristic: the row must have
// a digit-bearing tariff-code cell, and at least one corroborating column
// must be known (or the row-number cell must be numeric).
func (d *Decoder) tableStart(row []string) (bool, error) {
	lead := d.positions.Known(catalog.FieldModel) ||
		d.positions.Known(catalog.FieldCountryOfOrigin) ||
		d.positions.Known(catalog.FieldGoodsDesc)
	if !lead {
		if col, ok := d.positions.Get(catalog.FieldNumberPP); ok && textnorm.IsNumeric(cellAt(row, col)) {
			lead = true
		}
	}
	if !lead {
		return false, nil
	}

	col, ok := d.positions.Get(catalog.FieldTnvedCode)
	if !ok {
		return false, ErrTnvedColumnUnknown
	}
	cell := cellAt(row, col)
	return cell != "" && textnorm.HasDigit(cell), nil
}

// emit appends a line item carrying the current header snapshot.
func (d *Decoder) emit(row []string) {
	col, _ := d.positions.Get(catalog.FieldTnvedCode)
	item := make(map[string]string, len(d.header)+1)
	for k, v := range d.header {
		item[k] = v
	}
	item[catalog.FieldTnvedCode] = strings.TrimSpace(cellAt(row, col))
	d.items = append(d.items, item)
}

// labelSpan is an open or closed label-to-value range inside one row.
// Marks are 1-based cell indices; the first opens the span, the last closes
// it.
type labelSpan struct {
	role  string
	marks []int
}

// harvest extracts pre-header metadata from one row's cells: label/value
// spans, inline LABEL:VALUE cells, and the repeated address labels that
// split addresses between roles.
func (d *Decoder) harvest(cells []string) {
	var spans []*labelSpan
	byRole := make(map[string]*labelSpan)
	var last *labelSpan

	for i := 1; i <= len(cells); i++ {
		if i == len(cells) && last != nil {
			last.marks = append(last.marks, i)
		}
		cell := cells[i-1]
		if cell == "" {
			continue
		}

		d.trackDoubleLabel(cell, i, cells)

		fullRole, fullOK := d.cat.Role(textnorm.Tight(cell))
		if fullOK {
			if last != nil {
				last.marks = append(last.marks, i)
			}
			if sp, ok := byRole[fullRole]; ok {
				sp.marks = append(sp.marks, i)
			} else {
				sp = &labelSpan{role: fullRole, marks: []int{i}}
				byRole[fullRole] = sp
				spans = append(spans, sp)
				last = sp
			}
		}

		// Inline LABEL:VALUE form; ASCII or full-width colon. Overwrites any
		// span-derived value for the role.
		if parts := colonRe.Split(cell, -1); len(parts) > 1 {
			if role, ok := d.cat.Role(textnorm.Tight(parts[0])); ok && (!fullOK || role != fullRole) {
				value := strings.TrimSpace(strings.Join(parts[1:], " "))
				if value == "" {
					value = strings.TrimSpace(parts[len(parts)-1])
				}
				d.header[role] = value
			}
		}
	}

	d.extractSpans(spans, cells)
}

// trackDoubleLabel counts occurrences of the configured repeated labels.
// The second occurrence introduces the destination station; other counts may
// append an address continuation line onto an already-harvested role.
func (d *Decoder) trackDoubleLabel(cell string, i int, cells []string) {
	if !slices.Contains(d.cat.DoubleLabels(), strings.TrimSpace(cell)) {
		return
	}
	d.addressCount++

	if d.addressCount == 2 {
		for _, c := range cells[i:] {
			if c == "" {
				continue
			}
			d.header[catalog.RoleDestinationStation] = textnorm.Loose(c)
			break
		}
		return
	}

	role, ok := d.cat.ContinuationRole(d.addressCount)
	if !ok {
		return
	}
	existing := d.header[role]
	if existing == "" {
		return
	}
	for _, c := range cells[i:] {
		if strings.TrimSpace(c) == "" {
			continue
		}
		d.header[role] = existing + " " + textnorm.Loose(c)
		break
	}
}

// extractSpans picks the most relevant value cell for each closed span and
// inserts it with setdefault semantics. Station spans take the first
// non-empty cell, everything else the longest one.
func (d *Decoder) extractSpans(spans []*labelSpan, cells []string) {
	for _, sp := range spans {
		if len(sp.marks) < 2 {
			continue
		}
		lo := sp.marks[0]
		hi := sp.marks[len(sp.marks)-1] - 1
		if lo > len(cells) {
			continue
		}
		if hi > len(cells) {
			hi = len(cells)
		}
		if hi <= lo {
			continue
		}

		var chosen string
		if sp.role == catalog.RoleDestinationStation {
			for _, c := range cells[lo:hi] {
				if c != "" {
					chosen = c
					break
				}
			}
		} else {
			best := -1
			for _, c := range cells[lo:hi] {
				if c == "" {
					continue
				}
				if n := utf8.RuneCountInString(c); n > best {
					best = n
					chosen = c
				}
			}
		}

		if strings.TrimSpace(chosen) == "" || textnorm.IsNumeric(chosen) {
			continue
		}
		if _, exists := d.header[sp.role]; !exists {
			d.header[sp.role] = textnorm.Loose(chosen)
		}
	}
}

// SheetText joins every non-empty cell of the sheet, newline separated.
func SheetText(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(cell)
		}
	}
	return b.String()
}

// cellAt returns the cell at col, or "" when the row is shorter.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
