// Package tasks runs multi-step record operations against the API with real-time progress reporting.
//
// # Core Operations
//
// [RecordEngine] exposes two operations:
//
//  1. [RecordEngine.BatchImport] : Upload several spreadsheets
//     - Reads each file from disk
//     - Uploads it through [services.RecordService.Import] on a bounded worker pool
//     - Paces uploads with a token bucket so the server's rate limit is respected
//     - Returns per-file results; one bad file never stops the others
//
//  2. [RecordEngine.Export] : Snapshot the collection to disk
//     - Lists every record
//     - Renders them with the formatter package
//
// # Progress Reporting
//
// Both operations accept an optional channel of [ProgressUpdate] values.
// Updates use select with default to prevent blocking, so a slow or absent reader only loses updates.
package tasks
