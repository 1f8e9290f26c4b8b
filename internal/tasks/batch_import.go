package tasks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/desertthunder/roster/internal/importer"
	"github.com/desertthunder/roster/internal/shared"
	"golang.org/x/time/rate"
)

// BatchImportOpts contains configuration for batch imports.
type BatchImportOpts struct {
	NumWorkers int     // Concurrent uploads (default: 5, max: 10)
	RateLimit  float64 // Uploads per second (default: 5)
}

type importJob struct {
	index int
	path  string
}

type indexedResult struct {
	index int
	FileImportResult
}

// BatchImport uploads several spreadsheets concurrently with rate limiting and progress tracking.
//
// Files that cannot be read or are not spreadsheets fail locally without an upload.
// A failed file does not stop the batch; files never reached because ctx ended are reported with ctx's error.
func (e *RecordEngine) BatchImport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	paths []string,
	opts BatchImportOpts,
) (*BatchImportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: record service not initialized", shared.ErrServiceUnavailable)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files to import", shared.ErrMissingArgument)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	total := len(paths)
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan importJob, total)
	results := make(chan indexedResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.importWorker(ctx, &wg, jobs, results, prog, total)
	}

	go func() {
		defer close(jobs)
		for i, path := range paths {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- importJob{index: i, path: path}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]*FileImportResult, total)
	completed := 0
	for res := range results {
		completed++
		collected[res.index] = &res.FileImportResult

		if res.Success {
			e.sendProgress(prog, importCompletedUpdate(completed, total, res.FileImportResult))
		} else {
			e.sendProgress(prog, importFailedUpdate(completed, total, res.FileImportResult))
		}
	}

	result := &BatchImportResult{
		TotalFiles: total,
		Results:    make([]FileImportResult, 0, total),
	}
	for i, res := range collected {
		if res == nil {
			res = &FileImportResult{Path: paths[i], Error: fmt.Errorf("import not attempted: %w", stopped(ctx))}
		}

		if res.Success {
			result.Succeeded++
			result.InsertedCount += len(res.Records)
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, *res)
	}

	return result, nil
}

// importWorker is a worker goroutine that uploads files from the jobs channel.
func (e *RecordEngine) importWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan importJob,
	results chan<- indexedResult,
	prog chan<- ProgressUpdate,
	total int,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- indexedResult{index: job.index, FileImportResult: e.importFile(ctx, job, prog, total)}
	}
}

func (e *RecordEngine) importFile(ctx context.Context, j importJob, prog chan<- ProgressUpdate, total int) FileImportResult {
	result := FileImportResult{Path: j.path}

	e.sendProgress(prog, readFileUpdate(j.index+1, total, j.path))
	data, err := os.ReadFile(j.path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read file: %w", err)
		return result
	}

	name := filepath.Base(j.path)
	if importer.Detect(data, name) == importer.FormatUnknown {
		result.Error = fmt.Errorf("%w: %s is not a spreadsheet", shared.ErrDecode, name)
		return result
	}

	e.sendProgress(prog, uploadFileUpdate(j.index+1, total, j.path))
	records, err := e.svc.Import(ctx, name, bytes.NewReader(data))
	if err != nil {
		result.Error = fmt.Errorf("upload failed: %w", err)
		return result
	}

	result.Records = records
	result.Success = true
	return result
}

// stopped reports why the producer stopped early. The limiter also gives up before a deadline that a wait would overrun.
func stopped(ctx context.Context) error {
	if err := context.Cause(ctx); err != nil {
		return err
	}
	return context.DeadlineExceeded
}
