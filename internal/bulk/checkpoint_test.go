package bulk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckpointSaveAndLoadRoundTrip(t *testing.T) {
	cfg := *DefaultScanConfig()
	cfg.OutputCSV = "out.csv"
	cp := NewCheckpoint(cfg)
	cp.NextSeedIndex = 42
	require.NotEmpty(t, cp.RunID)

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, cp.Save(path))

	loaded, err := LoadCheckpoint(path)
	require.NoError(t, err)
	require.Equal(t, cp.RunID, loaded.RunID)
	require.Equal(t, 42, loaded.NextSeedIndex)
	require.Equal(t, cfg.SeedPrefix, loaded.Config.SeedPrefix)
}

func TestLoadCheckpointMissingFile(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
