package filestore

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ColumnMap maps a source spreadsheet column header to a target field name.
type ColumnMap map[string]string

// ReadSpreadsheet reads the first sheet of an xlsx file, remapping columns
// per colMap and returning one map[targetField]string per row. Cells that
// are absent or blank become "". Rows where every mapped field is empty are
// dropped, matching the file-store contract.
func ReadSpreadsheet(path string, colMap ColumnMap) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows from %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[h] = i
	}

	var records []map[string]string
	for _, row := range rows[1:] {
		record := make(map[string]string, len(colMap))
		anyNonEmpty := false
		for src, target := range colMap {
			idx, ok := colIndex[src]
			value := ""
			if ok && idx < len(row) {
				value = row[idx]
			}
			record[target] = value
			if value != "" {
				anyNonEmpty = true
			}
		}
		if anyNonEmpty {
			records = append(records, record)
		}
	}

	return records, nil
}

// TestCaseColumnMap is the fixed spreadsheet-to-canonical-field mapping for
// test-case import (§6 External Interfaces: test-case spreadsheet).
func TestCaseColumnMap() ColumnMap {
	return ColumnMap{
		"用例ID":  "id",
		"用例标题":  "title",
		"前置条件":  "precondition",
		"步骤描述":  "steps",
		"预期结果":  "expected",
		"等级":    "priority",
	}
}
