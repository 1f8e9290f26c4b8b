package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Format identifies a workbook encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatXLSX
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return "unknown"
	}
}

// Column headers read from the first row.
const (
	HeaderName     = "Name"
	HeaderPosition = "Position"
	HeaderLevel    = "Level"
)

var (
	zipSignature = []byte("PK\x03\x04")
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// maxXLSRows bounds how far a legacy sheet is scanned.
const maxXLSRows = 100000

// Detect sniffs the workbook format from its leading bytes, falling back to the filename extension.
func Detect(data []byte, filename string) Format {
	switch {
	case bytes.HasPrefix(data, zipSignature):
		return FormatXLSX
	case bytes.HasPrefix(data, oleSignature):
		return FormatXLS
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	default:
		return FormatUnknown
	}
}

// Decode reads the first sheet of a workbook into record fields.
//
// Any failure to open or read the workbook wraps [shared.ErrDecode]. An empty sheet decodes to an empty batch.
func Decode(data []byte, filename string) ([]models.RecordFields, error) {
	var (
		rows [][]string
		err  error
	)

	switch Detect(data, filename) {
	case FormatXLS:
		rows, err = readXLS(data)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}

	return toFields(rows), nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	return file.GetRows(sheetName)
}

// readXLS reads the first sheet of a legacy workbook. The decoder panics on some malformed
// inputs, so panics are turned into errors.
func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("malformed workbook: %v", r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	last := min(int(sheet.MaxRow), maxXLSRows)
	for i := 0; i <= last; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// toFields maps data rows onto record fields using the header row. Blank rows are dropped.
//
// The header is the first non-blank row, so sheets whose used range starts below row 1 still map.
func toFields(rows [][]string) []models.RecordFields {
	batch := []models.RecordFields{}
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return batch
	}

	columns := map[string]int{}
	for i, header := range rows[0] {
		if _, seen := columns[header]; !seen {
			columns[header] = i
		}
	}

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		batch = append(batch, models.RecordFields{
			Name:     cell(row, columns, HeaderName),
			Position: cell(row, columns, HeaderPosition),
			Level:    cell(row, columns, HeaderLevel),
		})
	}

	return batch
}

func cell(row []string, columns map[string]int, header string) string {
	idx, ok := columns[header]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
