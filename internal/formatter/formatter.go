// package formatter renders record sets to export formats (CSV, Markdown, plain text, JSON, XLSX)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/roster/internal/importer"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/xuri/excelize/v2"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
)

// Formats lists every supported export format.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON, FormatXLSX}

// ParseFormat resolves a format name. "md" and "text" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// ExportToCSV converts records to CSV with columns: ID, Name, Position, Level
func ExportToCSV(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", importer.HeaderName, importer.HeaderPosition, importer.HeaderLevel}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range records {
		if err := writer.Write([]string{r.ID, r.Name, r.Position, r.Level}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders records as a table under a heading.
func ExportToMarkdown(records []models.Record, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Records"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", len(records)))

	if len(records) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Name | Position | Level |\n")
	buf.WriteString("|---|------|----------|-------|\n")
	for i, r := range records {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1, cell(r.Name), cell(r.Position), cell(r.Level)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts records to a numbered plain text listing
func ExportToText(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Records: %d\n\n", len(records)))
	for i, r := range records {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, orDash(r.Name), orDash(r.Position), orDash(r.Level)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes records as an indented JSON array. A nil slice encodes as [].
func ExportToJSON(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	return shared.MarshalJSON(records, true)
}

// ExportToXLSX writes a single sheet workbook with a Name, Position, Level header row.
//
// The output can be fed back through the spreadsheet importer.
func ExportToXLSX(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []any{importer.HeaderName, importer.HeaderPosition, importer.HeaderLevel}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write XLSX header: %w", err)
	}

	for i, r := range records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []any{r.Name, r.Position, r.Level}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, fmt.Errorf("failed to write XLSX row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes records in the given format.
func Render(records []models.Record, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(records)
	case FormatMarkdown:
		return ExportToMarkdown(records, "")
	case FormatText:
		return ExportToText(records)
	case FormatJSON:
		return ExportToJSON(records)
	case FormatXLSX:
		return ExportToXLSX(records)
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}
}

// Write renders records and writes them to w.
func Write(w io.Writer, records []models.Record, format Format) error {
	data, err := Render(records, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}

// WriteExport renders records to a file and returns its path.
//
// Defaults to records{ext} in the working directory.
func WriteExport(records []models.Record, format Format, path string) (string, error) {
	if path == "" {
		path = "records" + format.Extension()
	}

	data, err := Render(records, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func cell(s string) string {
	return strings.ReplaceAll(orDash(s), "|", `\|`)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
