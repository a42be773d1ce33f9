package bulk

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lox/hanabi-infeasible/internal/fileutil"
)

const checkpointFileVersion = 1

// Checkpoint is the resumable state of a scan run, written atomically
// every CheckpointEvery seeds so an interrupted bulk scan over
// millions of seeds can resume instead of restarting. RunID
// distinguishes two interrupted/resumed runs from each other in the
// YAML summary output.
type Checkpoint struct {
	Version       int        `json:"version"`
	RunID         string     `json:"run_id"`
	Config        ScanConfig `json:"config"`
	NextSeedIndex int        `json:"next_seed_index"`
	SavedAt       time.Time  `json:"saved_at"`
}

// NewCheckpoint starts a fresh checkpoint for cfg with a new run ID.
func NewCheckpoint(cfg ScanConfig) *Checkpoint {
	return &Checkpoint{
		Version: checkpointFileVersion,
		RunID:   uuid.NewString(),
		Config:  cfg,
	}
}

// Save writes the checkpoint atomically to path.
func (c *Checkpoint) Save(path string) error {
	c.SavedAt = savedAtNow()
	if err := fileutil.WriteJSONAtomic(path, c, 0o644); err != nil {
		return fmt.Errorf("bulk: save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint restores a Checkpoint previously written by Save. A
// missing file is reported via os.IsNotExist so callers can start a
// fresh run instead of treating it as fatal.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	var c Checkpoint
	if err := fileutil.ReadJSON(path, &c); err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("bulk: load checkpoint: %w", err)
	}
	return &c, nil
}

// savedAtNow supplies the SavedAt timestamp; it is a package variable
// so the time source can be replaced.
var savedAtNow = func() time.Time { return time.Now() }
