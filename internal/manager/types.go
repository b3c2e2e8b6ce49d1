package manager

import (
	"time"

	"predictd/internal/artifact"
)

// State represents lifecycle state of an instance.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateDraining State = "draining"
)

// Predictor evaluates one feature row. Implementations must be immutable
// after construction and safe for concurrent use.
type Predictor interface {
	Predict(features []float64) (artifact.Prediction, error)
}

// LoadFunc deserializes the artifact at path into a Predictor. The default
// reads the predictd artifact format; tests inject their own.
type LoadFunc func(path string) (Predictor, error)

// Instance represents a loaded (or loading) predictor for one model id.
type Instance struct {
	ID        string
	State     State
	LastUsed  time.Time
	Predictor Predictor
	// Queueing primitives
	genCh   chan struct{} // size 1: single in-flight evaluation slot
	queueCh chan struct{} // buffered: queue slots
	// ready is closed when the load finishes (successfully or not).
	// loadErr is written before the close, so waiters may read it after.
	ready   chan struct{}
	loadErr error
}

// busy reports whether the instance has queued or in-flight work.
func (i *Instance) busy() bool {
	return len(i.genCh) > 0 || len(i.queueCh) > 0
}
