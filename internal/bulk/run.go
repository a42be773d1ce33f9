package bulk

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// RunResult is the outcome of a full scan job: results plus whatever
// SolverInvariantViolation (if any) stopped it early.
type RunResult struct {
	Reporter      *Reporter
	NextSeedIndex int
	Err           error
}

// Run executes a full scan job against scanner starting at
// cfg.SeedStart for cfg.SeedCount seeds, checkpointing every
// cfg.CheckpointEvery seeds, and optionally driving a live terminal
// progress bar (ProgressModel) while it runs. It does not write the
// CSV or YAML summary files; the caller writes them from the returned
// Reporter.
func Run(ctx context.Context, scanner *Scanner, cp *Checkpoint, showProgress bool) RunResult {
	cfg := cp.Config
	reporter := NewReporter(cp.RunID)

	updates := make(chan ProgressUpdate, cfg.Parallel*4+8)
	done := make(chan ProgressDone, 1)

	// OnResult is invoked from concurrent scan workers.
	var mu sync.Mutex
	count := 0
	var saveErr error
	scanner.OnResult = func(r SeedResult) {
		mu.Lock()
		reporter.Add(r)
		count++
		if cfg.CheckpointPath != "" && cfg.CheckpointEvery > 0 && count%cfg.CheckpointEvery == 0 {
			cp.NextSeedIndex = cfg.SeedStart + count
			if err := cp.Save(cfg.CheckpointPath); err != nil && saveErr == nil {
				saveErr = err
			}
		}
		mu.Unlock()
		select {
		case updates <- ProgressUpdate{Seed: r.Seed, Infeasible: r.Infeasible}:
		default:
		}
	}

	scanDone := make(chan error, 1)
	go func() {
		scanDone <- scanner.Run(ctx, cfg.SeedStart, cfg.SeedCount)
		close(updates)
		close(done)
	}()

	var runErr error
	if showProgress {
		model := NewProgressModel(cfg.SeedCount, updates, done)
		p := tea.NewProgram(model)
		finalModel, err := p.Run()
		if err != nil {
			runErr = fmt.Errorf("bulk: progress UI: %w", err)
		} else if fm, ok := finalModel.(ProgressModel); ok {
			runErr = fm.Err()
		}
	}
	if scanErr := <-scanDone; scanErr != nil && runErr == nil {
		runErr = scanErr
	}
	if saveErr != nil && runErr == nil {
		runErr = saveErr
	}

	next := cfg.SeedStart + count
	if cfg.CheckpointPath != "" {
		cp.NextSeedIndex = next
		if err := cp.Save(cfg.CheckpointPath); err != nil && runErr == nil {
			runErr = err
		}
	}

	return RunResult{Reporter: reporter, NextSeedIndex: next, Err: runErr}
}
