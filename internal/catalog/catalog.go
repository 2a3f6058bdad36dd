// Package catalog holds the synonym tables that drive workbook decoding:
// header synonyms per canonical field, party label synonyms per canonical
// role, station aliases, and sheet name priorities. A Catalog is built once
// at startup and is read-only afterwards.
package catalog

import (
	"github.com/xl-idp/unzipping/internal/textnorm"
)

// Canonical roles harvested from the rows before the line-item table.
const (
	RoleSeller             = "seller"
	RoleSellerPriority     = "seller_priority"
	RoleBuyer              = "buyer"
	RoleBuyerPriority      = "buyer_priority"
	RoleDestinationStation = "destination_station"
	RoleDepartureStation   = "departure_station"
	RoleContainerNumber    = "container_number"
)

// Canonical fields of the line-item table.
const (
	FieldModel           = "model"
	FieldNumberPP        = "number_pp"
	FieldTnvedCode       = "tnved_code"
	FieldCountryOfOrigin = "country_of_origin"
	FieldGoodsDesc       = "goods_description"
	FieldQuantity        = "quantity"
	FieldPackageQuantity = "package_quantity"
	FieldNetWeight       = "net_weight"
	FieldGrossWeight     = "gross_weight"
	FieldPricePerPiece   = "price_per_piece"
	FieldTotalCost       = "total_cost"
)

// StationAlias rewrites a destination station containing Substr to Unified.
type StationAlias struct {
	Substr  string
	Unified string
}

// Catalog is the loaded, immutable synonym set.
type Catalog struct {
	headerFields map[string]string // tight synonym -> canonical field
	partyLabels  map[string]string // tight synonym -> canonical role
	fields       []string
	roles        []string
	stations     []StationAlias
	sheets       []string
	doubleLabels []string
	continuation map[int]string
}

// TableFields returns the canonical line-item fields in their fixed order.
func (c *Catalog) TableFields() []string {
	return c.fields
}

// PartyRoles returns the four company roles subject to identity enrichment,
// in resolution order.
func (c *Catalog) PartyRoles() []string {
	return []string{RoleSeller, RoleSellerPriority, RoleBuyer, RoleBuyerPriority}
}

// Roles returns all label roles in catalog order.
func (c *Catalog) Roles() []string {
	return c.roles
}

// Field resolves a tight-normalized header cell to its canonical field.
func (c *Catalog) Field(norm string) (string, bool) {
	f, ok := c.headerFields[norm]
	return f, ok
}

// Role resolves a tight-normalized label cell to its canonical role.
func (c *Catalog) Role(norm string) (string, bool) {
	r, ok := c.partyLabels[norm]
	return r, ok
}

// IsHeaderSynonym reports whether the tight-normalized cell is a known header.
func (c *Catalog) IsHeaderSynonym(norm string) bool {
	_, ok := c.headerFields[norm]
	return ok
}

// StationAliases returns the ordered substring rewrites for station names.
func (c *Catalog) StationAliases() []StationAlias {
	return c.stations
}

// PrioritySheets returns the ordered sheet-name substrings preferred when a
// workbook carries several sheets.
func (c *Catalog) PrioritySheets() []string {
	return c.sheets
}

// DoubleLabels returns the literal labels that repeat across a party block
// (typically "Address") and are counted to split addresses between roles.
func (c *Catalog) DoubleLabels() []string {
	return c.doubleLabels
}

// ContinuationRole maps an address-label occurrence count to the role whose
// value receives the continuation line, if any.
func (c *Catalog) ContinuationRole(count int) (string, bool) {
	r, ok := c.continuation[count]
	return r, ok
}

// build assembles the reverse lookup maps from per-canonical synonym lists.
// Synonyms are tight-normalized on the way in so lookups stay exact matches.
func build(
	headers map[string][]string,
	labels map[string][]string,
	stations []StationAlias,
	sheets []string,
	doubleLabels []string,
) *Catalog {
	c := &Catalog{
		headerFields: make(map[string]string),
		partyLabels:  make(map[string]string),
		fields: []string{
			FieldModel, FieldNumberPP, FieldTnvedCode, FieldCountryOfOrigin,
			FieldGoodsDesc, FieldQuantity, FieldPackageQuantity, FieldNetWeight,
			FieldGrossWeight, FieldPricePerPiece, FieldTotalCost,
		},
		roles: []string{
			RoleSeller, RoleSellerPriority, RoleBuyer, RoleBuyerPriority,
			RoleDestinationStation, RoleDepartureStation, RoleContainerNumber,
		},
		stations:     stations,
		sheets:       sheets,
		doubleLabels: doubleLabels,
		continuation: map[int]string{
			// Occurrence 2 is the destination station itself; the buyer short
			// label has no continuation slot.
			1: RoleSeller,
			3: RoleSellerPriority,
			4: RoleBuyerPriority,
		},
	}
	for field, syns := range headers {
		for _, s := range syns {
			if n := textnorm.Tight(s); n != "" {
				c.headerFields[n] = field
			}
		}
	}
	for role, syns := range labels {
		for _, s := range syns {
			if n := textnorm.Tight(s); n != "" {
				c.partyLabels[n] = role
			}
		}
	}
	return c
}
