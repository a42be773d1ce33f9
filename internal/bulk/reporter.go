package bulk

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Reporter accumulates SeedResults and writes the bulk CSV plus a
// YAML run summary of the aggregate statistics.
type Reporter struct {
	RunID   string
	results []SeedResult
}

// NewReporter returns an empty Reporter stamped with runID, so the
// summary file can be matched back to the checkpoint it resumed from.
func NewReporter(runID string) *Reporter {
	return &Reporter{RunID: runID}
}

// Add records one seed's result.
func (r *Reporter) Add(res SeedResult) {
	r.results = append(r.results, res)
}

// WriteCSV writes every recorded result to path in a fixed column
// order: Seed, Deck, Infeasible, Forced to Pace Zero, Duration.
func (r *Reporter) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bulk: create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Seed", "Deck", "Infeasible", "Forced to Pace Zero", "Duration"}); err != nil {
		return fmt.Errorf("bulk: write csv header: %w", err)
	}
	for _, res := range r.results {
		row := []string{
			res.Seed,
			res.Deck,
			strconv.FormatBool(res.Infeasible),
			strconv.FormatBool(res.ForcedToPaceZero),
			res.Duration.String(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("bulk: write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Summary holds the aggregate scan statistics: infeasible fraction,
// duration spread, and the forced-to-pace-zero rate.
type Summary struct {
	RunID              string  `yaml:"run_id"`
	TotalSeeds         int     `yaml:"total_seeds"`
	InfeasibleCount    int     `yaml:"infeasible_count"`
	InfeasibleFraction float64 `yaml:"infeasible_fraction"`
	ForcedToPaceZero   int     `yaml:"forced_to_pace_zero_count"`
	ForcedFraction     float64 `yaml:"forced_to_pace_zero_fraction"`
	MinDurationMS      float64 `yaml:"min_duration_ms"`
	MaxDurationMS      float64 `yaml:"max_duration_ms"`
	AvgDurationMS      float64 `yaml:"avg_duration_ms"`
	AvgInfeasibleMS    float64 `yaml:"avg_infeasible_duration_ms"`
	AvgFeasibleMS      float64 `yaml:"avg_feasible_duration_ms"`
}

// Summary computes the aggregate Summary over every recorded result.
func (r *Reporter) Summary() Summary {
	s := Summary{RunID: r.RunID, TotalSeeds: len(r.results)}
	if len(r.results) == 0 {
		return s
	}

	var totalMS, infeasMS, feasMS float64
	var infeasCount, feasCount int
	s.MinDurationMS = r.results[0].Duration.Seconds() * 1000
	for _, res := range r.results {
		ms := res.Duration.Seconds() * 1000
		totalMS += ms
		if ms < s.MinDurationMS {
			s.MinDurationMS = ms
		}
		if ms > s.MaxDurationMS {
			s.MaxDurationMS = ms
		}
		if res.Infeasible {
			s.InfeasibleCount++
			infeasMS += ms
			infeasCount++
		} else {
			feasMS += ms
			feasCount++
		}
		if res.ForcedToPaceZero {
			s.ForcedToPaceZero++
		}
	}

	n := float64(len(r.results))
	s.InfeasibleFraction = float64(s.InfeasibleCount) / n
	s.ForcedFraction = float64(s.ForcedToPaceZero) / n
	s.AvgDurationMS = totalMS / n
	if infeasCount > 0 {
		s.AvgInfeasibleMS = infeasMS / float64(infeasCount)
	}
	if feasCount > 0 {
		s.AvgFeasibleMS = feasMS / float64(feasCount)
	}
	return s
}

// WriteSummary writes the YAML-rendered Summary to path.
func (r *Reporter) WriteSummary(path string) error {
	data, err := yaml.Marshal(r.Summary())
	if err != nil {
		return fmt.Errorf("bulk: marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bulk: write summary: %w", err)
	}
	return nil
}
