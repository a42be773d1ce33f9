package bulk

import (
	"context"
	"fmt"
	"runtime"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hanabi-infeasible/internal/deck"
	"github.com/lox/hanabi-infeasible/internal/infeasible"
	"github.com/lox/hanabi-infeasible/internal/replay"
	"github.com/lox/hanabi-infeasible/internal/variant"
)

// Scanner drives Solve over an indexed range of seeds in parallel.
// Each seed solves an independent Deck against a shared, read-only
// variant.Spec, so workers share nothing but the Spec.
type Scanner struct {
	Spec     *variant.Spec
	Cfg      ScanConfig
	Logger   zerolog.Logger
	Clock    quartz.Clock
	OnResult func(SeedResult)
}

// NewScanner builds a Scanner over spec with cfg, defaulting Parallel
// to runtime.NumCPU() and Clock to the real wall clock.
func NewScanner(spec *variant.Spec, cfg ScanConfig, logger zerolog.Logger) *Scanner {
	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.NumCPU()
	}
	return &Scanner{Spec: spec, Cfg: cfg, Logger: logger, Clock: quartz.NewReal()}
}

// seedString builds the seed string for index i, e.g. "seed3".
func (s *Scanner) seedString(i int) string {
	return fmt.Sprintf("%s%d", s.Cfg.SeedPrefix, i)
}

// Run scans seeds [startIndex, startIndex+count) concurrently across
// Cfg.Parallel workers, invoking OnResult for each one in arbitrary
// order (the caller, e.g. Reporter, is responsible for any ordering it
// needs downstream). Run returns the first SolverInvariantViolation
// encountered, if any, after logging the offending deck and replay
// URL; other seeds keep scanning concurrently until then.
func (s *Scanner) Run(ctx context.Context, startIndex, count int) error {
	indices := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indices)
		for i := startIndex; i < startIndex+count; i++ {
			select {
			case indices <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < s.Cfg.Parallel; w++ {
		g.Go(func() error {
			for i := range indices {
				result, err := s.solveOne(i)
				if err != nil {
					return err
				}
				if s.OnResult != nil {
					s.OnResult(result)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// solveOne builds and solves the deck for seed index i, returning an
// error only for a SolverInvariantViolation: the solver never errors
// for "deck is hard", so any other outcome is a SeedResult.
func (s *Scanner) solveOne(i int) (SeedResult, error) {
	seed := s.seedString(i)
	d := deck.New(s.Spec)
	d.Shuffle(seed)

	view := infeasible.NewDeckView(d, s.Cfg.Players, s.Cfg.HandSize)

	start := s.Clock.Now()
	infeas, forced, err := infeasible.Solve(view)
	duration := s.Clock.Since(start)

	result := SeedResult{
		Seed:             seed,
		Deck:             d.String(),
		Infeasible:       infeas,
		ForcedToPaceZero: forced,
		Duration:         duration,
	}

	if err != nil {
		result.ReplayURL = replay.URL(d, s.Cfg.Players)
		result.Err = err
		s.Logger.Error().
			Str("seed", seed).
			Str("deck", result.Deck).
			Str("replay_url", result.ReplayURL).
			Err(err).
			Msg("solver invariant violation")
		return result, err
	}
	return result, nil
}
