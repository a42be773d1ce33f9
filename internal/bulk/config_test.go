package bulk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadScanConfigMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadScanConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.Equal(t, DefaultScanConfig(), cfg)
}

func TestLoadScanConfigEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := LoadScanConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultScanConfig(), cfg)
}

func TestLoadScanConfigParsesHCL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.hcl")
	hcl := `
variant         = "No Variant"
seed_prefix     = "egocentric"
seed_count      = 5000
parallel        = 4
players         = 2
hand_size       = 5
checkpoint_path = "checkpoint.json"
output_csv      = "out.csv"
output_summary  = "out.summary.yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(hcl), 0o644))

	cfg, err := LoadScanConfig(path)
	require.NoError(t, err)
	require.Equal(t, "egocentric", cfg.SeedPrefix)
	require.Equal(t, 5000, cfg.SeedCount)
	require.Equal(t, 4, cfg.Parallel)
	require.Equal(t, "out.csv", cfg.OutputCSV)
}

func TestScanConfigValidate(t *testing.T) {
	cfg := DefaultScanConfig()
	require.Error(t, cfg.Validate(), "output_csv is required")

	cfg.OutputCSV = "out.csv"
	require.NoError(t, cfg.Validate())

	cfg.SeedCount = 0
	require.Error(t, cfg.Validate())
}
