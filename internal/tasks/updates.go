package tasks

import (
	"fmt"
	"path/filepath"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadFile Phase = iota
	UploadFile
	ImportComplete
	ImportFailed
	FetchRecords
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case ReadFile:
		return "read_file"
	case UploadFile:
		return "upload_file"
	case ImportComplete:
		return "import_complete"
	case ImportFailed:
		return "import_failed"
	case FetchRecords:
		return "fetch_records"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func readFileUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Reading %s...", step, total, filepath.Base(path)),
	}
}

func uploadFileUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading %s...", step, total, filepath.Base(path)),
	}
}

func importCompletedUpdate(step, total int, res FileImportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportComplete,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d records)", step, total, filepath.Base(res.Path), len(res.Records)),
		Data:    res,
	}
}

func importFailedUpdate(step, total int, res FileImportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, filepath.Base(res.Path), res.Error),
		Data:    res,
	}
}

func fetchRecordsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecords,
		Step:    1,
		Total:   1,
		Message: "Fetching records...",
	}
}

func writeExportUpdate(count int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d records to %s...", count, path),
	}
}
