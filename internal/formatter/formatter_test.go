package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/roster/internal/importer"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	th "github.com/desertthunder/roster/internal/testing"
)

var roster = []models.Record{
	{ID: "id-1", Name: "Ada", Position: "Engineer", Level: "Senior"},
	{ID: "id-2", Name: "Linus", Position: "Manager", Level: "Junior"},
	{ID: "id-3", Name: "Pipe|Name", Position: "", Level: "Intern"},
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(roster)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Name,Position,Level" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "id-1,Ada,Engineer,Senior" {
			t.Errorf("unexpected first row: %s", lines[1])
		}
	})

	t.Run("ExportToCSV Empty", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "ID,Name,Position,Level" {
			t.Errorf("expected header only, got %q", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(roster, "Team")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "# Team\n") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Total**: 3") {
			t.Errorf("Markdown missing total")
		}
		if !strings.Contains(output, "| 1 | Ada | Engineer | Senior |") {
			t.Errorf("Markdown missing first row, got: %s", output)
		}
		if !strings.Contains(output, `| 3 | Pipe\|Name | - | Intern |`) {
			t.Errorf("Markdown should escape pipes and dash empty cells, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		data, err := ExportToMarkdown(nil, "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "# Records\n") {
			t.Errorf("expected default title, got: %s", output)
		}
		if strings.Contains(output, "| Name |") {
			t.Errorf("empty export should not render a table")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(roster)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Records: 3") {
			t.Errorf("text missing count")
		}
		if !strings.Contains(output, "2. Linus - Manager (Junior)") {
			t.Errorf("text missing second record, got: %s", output)
		}
		if !strings.Contains(output, "3. Pipe|Name - - (Intern)") {
			t.Errorf("text should dash empty fields, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(roster)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []models.Record
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if len(decoded) != 3 || decoded[0] != roster[0] {
			t.Errorf("unexpected decoded records: %+v", decoded)
		}
		if !strings.Contains(string(data), `"_id": "id-1"`) {
			t.Errorf("expected indented output with _id keys, got: %s", data)
		}
	})

	t.Run("ExportToJSON Nil", func(t *testing.T) {
		data, err := ExportToJSON(nil)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("expected [], got %s", data)
		}
	})

	t.Run("ExportToXLSX Reimports", func(t *testing.T) {
		data, err := ExportToXLSX(roster)
		if err != nil {
			t.Fatalf("ExportToXLSX failed: %v", err)
		}

		if importer.Detect(data, "") != importer.FormatXLSX {
			t.Fatalf("expected an xlsx signature")
		}

		fields, err := importer.Decode(data, "records.xlsx")
		if err != nil {
			t.Fatalf("importer could not read the export: %v", err)
		}
		if len(fields) != len(roster) {
			t.Fatalf("expected %d rows, got %d", len(roster), len(fields))
		}
		for i, f := range fields {
			if f != roster[i].Fields() {
				t.Errorf("row %d: expected %+v, got %+v", i, roster[i].Fields(), f)
			}
		}
	})
}

func TestFormats(t *testing.T) {
	t.Run("ParseFormat", func(t *testing.T) {
		tests := []struct {
			in   string
			want Format
		}{
			{"csv", FormatCSV},
			{"markdown", FormatMarkdown},
			{"md", FormatMarkdown},
			{"TXT", FormatText},
			{"text", FormatText},
			{" json ", FormatJSON},
			{"xlsx", FormatXLSX},
		}

		for _, tt := range tests {
			got, err := ParseFormat(tt.in)
			if err != nil {
				t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		}
	})

	t.Run("ParseFormat Unknown", func(t *testing.T) {
		if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Extension", func(t *testing.T) {
		if FormatMarkdown.Extension() != ".md" || FormatXLSX.Extension() != ".xlsx" {
			t.Errorf("unexpected extensions: %s %s", FormatMarkdown.Extension(), FormatXLSX.Extension())
		}
	})

	t.Run("Render Unknown", func(t *testing.T) {
		if _, err := Render(roster, Format("pdf")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("Write", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, roster, FormatText); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "1. Ada") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("Write Failure", func(t *testing.T) {
		if err := Write(&th.FWriter{}, roster, FormatCSV); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("Write Limited", func(t *testing.T) {
		var buf bytes.Buffer
		w := th.NewLimitedWriter(0, 0, &buf)
		if err := Write(&w, roster, FormatJSON); err == nil {
			t.Error("expected error once the write limit is reached")
		}
		if buf.Len() != 0 {
			t.Errorf("nothing should reach the target, got %d bytes", buf.Len())
		}
	})

	t.Run("WriteExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "team.csv")

		got, err := WriteExport(roster, FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.Contains(content, "id-2,Linus,Manager,Junior") {
			t.Errorf("file missing row, got: %s", content)
		}
	})

	t.Run("WriteExport Default Path", func(t *testing.T) {
		t.Chdir(t.TempDir())

		got, err := WriteExport(roster, FormatMarkdown, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != "records.md" {
			t.Errorf("expected records.md, got %s", got)
		}
		th.AssertFileExists(t, got)
	})

	t.Run("WriteExport Bad Path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		if _, err := WriteExport(roster, FormatText, path); err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}
