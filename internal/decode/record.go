// Package decode turns a semi-structured workbook sheet into a shipment
// record. Layouts vary wildly: headers are multilingual, merged or missing,
// metadata lives in free-form label/value spans above the table. The decoder
// runs a small state machine over rows and scores candidate header rows
// probabilistically instead of assuming a fixed layout.
package decode

// Header field names owned by the decoder itself. Party and station fields
// come from the catalog; enrichment fields are appended by the identity
// layer.
const (
	KeyOriginalFileName = "original_file_name"
	KeyParsedOn         = "original_file_parsed_on"
	KeyInputData        = "input_data"
)

// Record is the decoded shipment: harvested header metadata plus the ordered
// line items. Items are denormalized on purpose, each one carries the full
// header snapshot taken when it was emitted.
type Record struct {
	Header map[string]string
	Items  []map[string]string
}
