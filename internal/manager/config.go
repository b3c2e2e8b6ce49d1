package manager

import (
	"time"

	"predictd/internal/artifact"
	"predictd/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxLoaded     = 4
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultDrainTimeout  = 5 * time.Second
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry      []types.Model
	DefaultModel  string
	MaxLoaded     int
	MaxQueueDepth int
	MaxWait       time.Duration
	DrainTimeout  time.Duration
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
	// Load overrides artifact deserialization; nil uses the artifact format.
	Load LoadFunc
}

func defaultLoad(path string) (Predictor, error) {
	return artifact.DecodeFile(path)
}
