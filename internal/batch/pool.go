// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/marginal"
)

type indexedJob struct {
	index int
	job   job
}

// runPool executes jobs on b.opts.Workers goroutines and returns their
// outcomes in job order. The first fatal error cancels the remaining jobs.
func (b *Orchestrator) runPool(ctx context.Context, dir string, jobs []job) ([]outcome, error) {
	logger := ctxlog.FromContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]outcome, len(jobs))
	readyChan := make(chan indexedJob)
	var wg sync.WaitGroup

	workers := min(b.opts.Workers, max(len(jobs), 1))
	logger.Debug("Starting worker pool.", "workers", workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			b.worker(ctx, readyChan, outcomes, cancel, dir, workerID)
		}(i + 1)
	}

feed:
	for i, j := range jobs {
		select {
		case readyChan <- indexedJob{index: i, job: j}:
		case <-ctx.Done():
			break feed
		}
	}
	close(readyChan)
	wg.Wait()

	if err := rootCause(outcomes); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// The caller's context ended before every job was handed out.
		return nil, fmt.Errorf("plot batch interrupted: %w", err)
	}
	return outcomes, nil
}

// worker is the processing loop for a single concurrent worker.
func (b *Orchestrator) worker(ctx context.Context, readyChan <-chan indexedJob, outcomes []outcome, cancel context.CancelFunc, dir string, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for ij := range readyChan {
		jobCtx, workerLogger := ctxlog.With(ctx, "workerID", workerID, "param", strings.Join(ij.job.params, ","))
		if ctx.Err() != nil {
			outcomes[ij.index] = outcome{err: ctx.Err()}
			continue
		}

		workerLogger.Debug("Worker picked up plot job.")
		rec, err := ij.job.run(jobCtx, dir)

		var skip *skipError
		switch {
		case err == nil:
			outcomes[ij.index] = outcome{plot: rec}
			workerLogger.Debug("Plot job succeeded.", "file", rec.File)
		case errors.As(err, &skip):
			workerLogger.Warn("Skipping plot.", "reason", skip.reason)
			outcomes[ij.index] = outcome{skip: &SkipRecord{Parameters: ij.job.params, Reason: skip.reason}}
		case marginal.IsSkippable(err):
			workerLogger.Warn("Skipping plot.", "reason", err.Error())
			outcomes[ij.index] = outcome{skip: &SkipRecord{Parameters: ij.job.params, Reason: err.Error()}}
		default:
			workerLogger.Error("Plot job failed.", "error", err)
			outcomes[ij.index] = outcome{err: err}
			cancel()
		}
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// rootCause returns the first job error that is not a cancellation
// side-effect of another failure.
func rootCause(outcomes []outcome) error {
	var canceled error
	for _, out := range outcomes {
		if out.err == nil {
			continue
		}
		if errors.Is(out.err, context.Canceled) || errors.Is(out.err, context.DeadlineExceeded) {
			if canceled == nil {
				canceled = out.err
			}
			continue
		}
		return fmt.Errorf("plot batch failed: %w", out.err)
	}
	if canceled != nil {
		return fmt.Errorf("plot batch interrupted: %w", canceled)
	}
	return nil
}
