package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/tasks"
	"github.com/desertthunder/roster/internal/ui"
	"github.com/urfave/cli/v3"
)

// RecordsList prints the collection, optionally narrowed by search text and level.
func (r *Runner) RecordsList(ctx context.Context, cmd *cli.Command) error {
	search := cmd.String("search")
	level := cmd.String("level")

	records, err := r.client.List(ctx)
	if err != nil {
		return err
	}

	records = ui.FilterRecords(records, search, level)
	r.logger.Debug("listed records", "count", len(records), "search", search, "level", level)

	if cmd.Bool("json") {
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d records:\n\n", len(records))
	for i, rec := range records {
		r.writeRecord(i+1, rec)
	}
	return nil
}

// RecordsGet prints one record.
func (r *Runner) RecordsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	record, err := r.client.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(record, true)
	}
	r.writeRecord(0, *record)
	return nil
}

// RecordsCreate inserts a record from the field flags.
func (r *Runner) RecordsCreate(ctx context.Context, cmd *cli.Command) error {
	fields := fieldsFromFlags(cmd)

	res, err := r.client.Create(ctx, fields)
	if err != nil {
		return err
	}

	r.logger.Info("record created", "id", res.InsertedID)
	if cmd.Bool("json") {
		return r.writeJSON(res, true)
	}
	return r.writePlain("✓ Created %s\n", res.InsertedID)
}

// RecordsUpdate replaces every field of a record.
func (r *Runner) RecordsUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	res, err := r.client.Update(ctx, id, fieldsFromFlags(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(res, true)
	}
	if res.MatchedCount == 0 {
		return r.writePlain("No record with id %s\n", id)
	}
	return r.writePlain("✓ Updated %s (matched %d, modified %d)\n", id, res.MatchedCount, res.ModifiedCount)
}

// RecordsDelete removes one record. Deleting an unknown id is reported, not treated as an error.
func (r *Runner) RecordsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	res, err := r.client.Delete(ctx, id)
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return r.writePlain("No record with id %s\n", id)
	}
	return r.writePlain("✓ Deleted %s\n", id)
}

// RecordsBulkDelete removes every id given as an argument.
func (r *Runner) RecordsBulkDelete(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one id is required", shared.ErrMissingArgument)
	}

	res, err := r.client.BulkDelete(ctx, ids)
	if err != nil {
		return err
	}

	r.writePlain("✓ Deleted %d of %d records\n", res.DeletedCount, len(ids))
	if len(res.SkippedIDs) > 0 {
		r.writePlain("Skipped %d malformed ids:\n", len(res.SkippedIDs))
		for _, id := range res.SkippedIDs {
			r.writePlain("  - %s\n", id)
		}
	}
	return nil
}

// RecordsImport uploads each file given as an argument through the batch import engine.
func (r *Runner) RecordsImport(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one spreadsheet is required", shared.ErrMissingArgument)
	}

	r.logger.Info("starting import", "files", len(paths))
	r.writePlain("Importing %d files...\n\n", len(paths))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.UploadFile:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.ImportComplete, tasks.ImportFailed:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BatchImport(ctx, progressCh, paths, tasks.BatchImportOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete!")
	r.writePlain("Files: %d/%d succeeded\n", result.Succeeded, result.TotalFiles)
	r.writePlain("Records inserted: %d\n", result.InsertedCount)

	if result.Failed > 0 {
		r.writePlain("\nFailed files:\n")
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.Path, res.Error)
			}
		}
		return fmt.Errorf("%d of %d files failed to import", result.Failed, result.TotalFiles)
	}
	return nil
}

// RecordsExport writes the collection to a file.
func (r *Runner) RecordsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	result, err := r.engine.Export(ctx, nil, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("export written", "path", result.Path, "format", result.Format, "count", result.Count)
	return r.writePlain("✓ Exported %d records to %s\n", result.Count, result.Path)
}

func (r *Runner) writeRecord(n int, rec models.Record) {
	if n > 0 {
		r.writePlain("%d. %s\n", n, rec.Name)
	} else {
		r.writePlain("%s\n", rec.Name)
	}
	r.writePlain("   ID: %s\n", rec.ID)
	r.writePlain("   Position: %s\n", rec.Position)
	r.writePlain("   Level: %s\n", rec.Level)
	r.writePlain("\n")
}

func requireID(cmd *cli.Command) (string, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return "", fmt.Errorf("%w: record id is required", shared.ErrMissingArgument)
	}
	return id, nil
}

func fieldsFromFlags(cmd *cli.Command) models.RecordFields {
	return models.RecordFields{
		Name:     cmd.String("name"),
		Position: cmd.String("position"),
		Level:    cmd.String("level"),
	}
}
