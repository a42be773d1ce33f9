package bulk

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ScanConfig is the optional HCL driver config file for a scan job:
// seed ranges, variant, parallelism, checkpoint interval, and output
// paths carry more structure than CLI flags comfortably hold.
type ScanConfig struct {
	Variant         string `hcl:"variant,optional"`
	SeedPrefix      string `hcl:"seed_prefix,optional"`
	SeedStart       int    `hcl:"seed_start,optional"`
	SeedCount       int    `hcl:"seed_count,optional"`
	Parallel        int    `hcl:"parallel,optional"`
	Players         int    `hcl:"players,optional"`
	HandSize        int    `hcl:"hand_size,optional"`
	CheckpointPath  string `hcl:"checkpoint_path,optional"`
	CheckpointEvery int    `hcl:"checkpoint_every,optional"`
	OutputCSV       string `hcl:"output_csv,optional"`
	OutputSummary   string `hcl:"output_summary,optional"`
}

// DefaultScanConfig is the default "No Variant" five-suit, two-player,
// five-card-hand configuration.
func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{
		Variant:         "No Variant",
		SeedPrefix:      "seed",
		SeedStart:       0,
		SeedCount:       1000,
		Parallel:        0,
		Players:         2,
		HandSize:        5,
		CheckpointEvery: 10000,
	}
}

// LoadScanConfig loads a scan job config from an HCL file, falling
// back to DefaultScanConfig when filename is empty or absent. A
// missing file is not an error; CLI flags override whatever the file
// supplies.
func LoadScanConfig(filename string) (*ScanConfig, error) {
	cfg := DefaultScanConfig()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("bulk: parse scan config: %s", diags.Error())
	}

	var parsed ScanConfig
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("bulk: decode scan config: %s", diags.Error())
	}

	if parsed.Variant != "" {
		cfg.Variant = parsed.Variant
	}
	if parsed.SeedPrefix != "" {
		cfg.SeedPrefix = parsed.SeedPrefix
	}
	if parsed.SeedCount > 0 {
		cfg.SeedCount = parsed.SeedCount
	}
	if parsed.SeedStart > 0 {
		cfg.SeedStart = parsed.SeedStart
	}
	if parsed.Parallel > 0 {
		cfg.Parallel = parsed.Parallel
	}
	if parsed.Players > 0 {
		cfg.Players = parsed.Players
	}
	if parsed.HandSize > 0 {
		cfg.HandSize = parsed.HandSize
	}
	if parsed.CheckpointPath != "" {
		cfg.CheckpointPath = parsed.CheckpointPath
	}
	if parsed.CheckpointEvery > 0 {
		cfg.CheckpointEvery = parsed.CheckpointEvery
	}
	if parsed.OutputCSV != "" {
		cfg.OutputCSV = parsed.OutputCSV
	}
	if parsed.OutputSummary != "" {
		cfg.OutputSummary = parsed.OutputSummary
	}
	return cfg, nil
}

// Validate reports whether the config describes a runnable scan.
func (c *ScanConfig) Validate() error {
	if c.SeedCount <= 0 {
		return fmt.Errorf("bulk: seed_count must be positive")
	}
	if c.Players <= 0 || c.HandSize <= 0 {
		return fmt.Errorf("bulk: players and hand_size must be positive")
	}
	if c.OutputCSV == "" {
		return fmt.Errorf("bulk: output_csv is required")
	}
	return nil
}
