package manager

import (
	"context"
	"time"
)

// beginPredict reserves a queue slot and then the single in-flight slot for
// the instance serving modelID. Returns the instance and a release func to
// be deferred.
func (m *Manager) beginPredict(ctx context.Context, modelID string) (*Instance, func(), error) {
	m.mu.Lock()
	inst, ok := m.instances.Get(modelID)
	if !ok {
		m.mu.Unlock()
		return nil, nil, ErrModelNotFound(modelID)
	}
	switch inst.State {
	case StateReady:
	case StateDraining:
		// Reject new work to allow graceful unload.
		m.mu.Unlock()
		return nil, nil, tooBusyError{modelID: modelID}
	default:
		// A loading instance has no Predictor yet. This happens when the
		// ensured instance was evicted and a concurrent caller started a
		// fresh load under the same id; report not-found so the caller
		// re-ensures and waits for that load.
		m.mu.Unlock()
		return nil, nil, ErrModelNotFound(modelID)
	}
	m.mu.Unlock()

	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Try to reserve a queue slot with timeout
	timer := time.NewTimer(m.maxWait)
	defer timer.Stop()
	select {
	case inst.queueCh <- struct{}{}:
		// reserved queue slot
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case <-timer.C:
		return nil, nil, tooBusyError{modelID: modelID}
	}

	// Wait to acquire the single in-flight slot
	acquired := false
	defer func() {
		if !acquired {
			<-inst.queueCh
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	timer2 := time.NewTimer(m.maxWait)
	defer timer2.Stop()
	select {
	case inst.genCh <- struct{}{}:
		acquired = true
		m.mu.Lock()
		inst.LastUsed = time.Now()
		m.mu.Unlock()
		return inst, func() { <-inst.genCh; <-inst.queueCh }, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case <-timer2.C:
		return nil, nil, tooBusyError{modelID: modelID}
	}
}
