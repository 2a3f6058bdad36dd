package decode

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var containerNumberRe = regexp.MustCompile(`[A-Z]{4}\d{7}`)

// Workbook wraps an open spreadsheet and serves the decoder rows.
type Workbook struct {
	f    *excelize.File
	path string
}

// OpenWorkbook opens an xls/xlsx file for decoding.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the workbook's file path.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames lists the workbook's sheets in order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// ChooseSheet picks the sheet to decode first: the first one whose name
// contains a priority entry, otherwise the first sheet. The match is
// case-sensitive, the priority entries carry the exact spellings seen in
// real workbooks.
func (w *Workbook) ChooseSheet(priority []string) string {
	names := w.f.GetSheetList()
	if len(names) == 0 {
		return ""
	}
	for _, name := range names {
		for _, p := range priority {
			if strings.Contains(name, p) {
				return name
			}
		}
	}
	return names[0]
}

// Rows reads one sheet as a string grid, dropping rows whose every cell is
// blank. Cells keep their raw text; an absent cell is the empty string.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	raw, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	rows := make([][]string, 0, len(raw))
	for _, row := range raw {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ContainerNumber extracts the first ISO container number (four letters,
// seven digits) found in the text, or "".
func ContainerNumber(text string) string {
	return containerNumberRe.FindString(text)
}
