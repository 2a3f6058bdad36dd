package catalog

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the synonym workbook.
const (
	sheetLabels  = "labels_before_table"
	sheetHeaders = "headers_table"
	sheetStation = "station"
)

// Load reads the synonym workbook and builds a catalog from it. Each column
// of labels_before_table and headers_table is headed by a canonical name and
// filled with its synonyms; the station sheet pairs a substring column with
// its unified replacement.
func Load(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer f.Close()

	labels, err := synonymColumns(f, sheetLabels)
	if err != nil {
		return nil, err
	}
	headers, err := synonymColumns(f, sheetHeaders)
	if err != nil {
		return nil, err
	}
	stations, err := stationAliases(f)
	if err != nil {
		return nil, err
	}

	for _, field := range Default().TableFields() {
		if _, ok := headers[field]; !ok {
			return nil, fmt.Errorf("catalog workbook: headers_table misses column %q", field)
		}
	}

	return build(headers, labels, stations, defaultPrioritySheets, defaultDoubleLabels), nil
}

// synonymColumns turns a sheet into canonical-name -> synonyms.
func synonymColumns(f *excelize.File, sheet string) (map[string][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("catalog workbook: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog workbook: sheet %q is empty", sheet)
	}

	out := make(map[string][]string)
	names := rows[0]
	for col, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			if syn := strings.TrimSpace(row[col]); syn != "" {
				out[name] = append(out[name], syn)
			}
		}
	}
	return out, nil
}

// stationAliases reads the aligned station / station_unified columns.
func stationAliases(f *excelize.File) ([]StationAlias, error) {
	rows, err := f.GetRows(sheetStation)
	if err != nil {
		return nil, fmt.Errorf("catalog workbook: read sheet %q: %w", sheetStation, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog workbook: sheet %q is empty", sheetStation)
	}

	substrCol, unifiedCol := -1, -1
	for col, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "station":
			substrCol = col
		case "station_unified":
			unifiedCol = col
		}
	}
	if substrCol < 0 || unifiedCol < 0 {
		return nil, fmt.Errorf("catalog workbook: station sheet needs station and station_unified columns")
	}

	var aliases []StationAlias
	for _, row := range rows[1:] {
		var substr, unified string
		if substrCol < len(row) {
			substr = strings.TrimSpace(row[substrCol])
		}
		if unifiedCol < len(row) {
			unified = strings.TrimSpace(row[unifiedCol])
		}
		if substr == "" || unified == "" {
			continue
		}
		aliases = append(aliases, StationAlias{Substr: strings.ToUpper(substr), Unified: unified})
	}
	return aliases, nil
}
