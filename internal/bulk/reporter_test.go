package bulk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReporterWriteCSVColumns(t *testing.T) {
	r := NewReporter("run-1")
	r.Add(SeedResult{Seed: "seed0", Deck: "r1 y2", Infeasible: true, ForcedToPaceZero: false, Duration: 2 * time.Millisecond})
	r.Add(SeedResult{Seed: "seed1", Deck: "g3 b4", Infeasible: false, ForcedToPaceZero: true, Duration: 5 * time.Millisecond})

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, r.WriteCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Seed,Deck,Infeasible,Forced to Pace Zero,Duration")
	require.Contains(t, string(data), "seed0,r1 y2,true,false,")
	require.Contains(t, string(data), "seed1,g3 b4,false,true,")
}

func TestReporterSummaryAggregates(t *testing.T) {
	r := NewReporter("run-2")
	r.Add(SeedResult{Seed: "a", Infeasible: true, Duration: 10 * time.Millisecond})
	r.Add(SeedResult{Seed: "b", Infeasible: true, Duration: 20 * time.Millisecond})
	r.Add(SeedResult{Seed: "c", Infeasible: false, ForcedToPaceZero: true, Duration: 30 * time.Millisecond})

	s := r.Summary()
	require.Equal(t, 3, s.TotalSeeds)
	require.Equal(t, 2, s.InfeasibleCount)
	require.InDelta(t, 2.0/3.0, s.InfeasibleFraction, 1e-9)
	require.Equal(t, 1, s.ForcedToPaceZero)
	require.InDelta(t, 10.0, s.MinDurationMS, 1e-9)
	require.InDelta(t, 30.0, s.MaxDurationMS, 1e-9)
}

func TestReporterWriteSummaryIsValidYAML(t *testing.T) {
	r := NewReporter("run-3")
	r.Add(SeedResult{Seed: "a", Infeasible: true, Duration: time.Millisecond})

	dir := t.TempDir()
	path := filepath.Join(dir, "summary.yaml")
	require.NoError(t, r.WriteSummary(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, "run-3", decoded.RunID)
	require.Equal(t, 1, decoded.TotalSeeds)
}

func TestReporterSummaryEmpty(t *testing.T) {
	r := NewReporter("run-empty")
	s := r.Summary()
	require.Equal(t, 0, s.TotalSeeds)
	require.Equal(t, 0.0, s.InfeasibleFraction)
}
