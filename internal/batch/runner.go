// Package batch runs the heuristics engine over directories of OCR block
// files. The engine itself is a pure per-call pipeline; all concurrency
// lives here, on the caller's side of that boundary.
package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-core/internal/common"
	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/heuristics"
	"github.com/chamchi6619/pantry-core/internal/ocr"
)

// Job is one block file to parse.
type Job struct {
	ID   uuid.UUID
	Path string
}

// Outcome pairs a job with its parse result or boundary error.
type Outcome struct {
	Job    Job
	Result entity.HeuristicsResult
	Err    error
}

// Runner fans block files out to a fixed worker pool.
type Runner struct {
	engine  *heuristics.Engine
	workers int
	logger  *slog.Logger
}

func NewRunner(engine *heuristics.Engine, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{engine: engine, workers: workers, logger: logger}
}

// RunDir parses every *.json file in dir. File read or decode failures
// surface per job; a bad file never aborts the batch.
func (r *Runner) RunDir(ctx context.Context, dir string) ([]Outcome, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, common.WrapError(err, "list block files")
	}
	sort.Strings(paths)

	jobs := make(chan Job)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- r.runOne(job)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- Job{ID: uuid.New(), Path: p}:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, 0, len(paths))
	for out := range results {
		outcomes = append(outcomes, out)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Job.Path < outcomes[j].Job.Path })
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func (r *Runner) runOne(job Job) Outcome {
	data, err := os.ReadFile(job.Path)
	if err != nil {
		return Outcome{Job: job, Err: common.WrapError(err, "read blocks")}
	}
	blocks, err := ocr.DecodeBlocks(data)
	if err != nil {
		r.logger.Warn("batch.decode_failed", "job_id", job.ID, "path", job.Path, "error", err)
		return Outcome{Job: job, Err: err}
	}
	res := r.engine.ParseReceipt(blocks)
	r.logger.Info("batch.parsed",
		"job_id", job.ID,
		"path", job.Path,
		"items", len(res.Items),
		"needs_review", res.NeedsReview,
	)
	return Outcome{Job: job, Result: res}
}
