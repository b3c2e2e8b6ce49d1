package manager

import (
	"context"
	"time"
)

// EnsureInstance loads the predictor for modelID exactly once. Concurrent
// callers for the same id are single-flighted: the first performs the load,
// the rest wait on the instance's ready channel.
func (m *Manager) EnsureInstance(ctx context.Context, modelID string) error {
	if modelID == "" {
		modelID = m.defaultModel
		if modelID == "" {
			return modelNotFoundError{id: "(unspecified)"}
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.mu.Lock()
		if inst, ok := m.instances.Get(modelID); ok {
			switch inst.State {
			case StateReady:
				inst.LastUsed = time.Now()
				m.mu.Unlock()
				return nil
			case StateLoading:
				ready := inst.ready
				m.mu.Unlock()
				select {
				case <-ready:
				case <-ctx.Done():
					return ctx.Err()
				}
				// loadErr is written before ready is closed.
				if inst.loadErr != nil {
					return inst.loadErr
				}
				// Re-check: the instance may have been evicted since.
				continue
			case StateDraining:
				m.mu.Unlock()
				return tooBusyError{modelID: modelID}
			}
		}

		mdl, ok := m.getModelByID(modelID)
		if !ok {
			m.mu.Unlock()
			return ErrModelNotFound(modelID)
		}
		m.evictIdleForSlot()
		inst := &Instance{
			ID:       modelID,
			State:    StateLoading,
			LastUsed: time.Now(),
			genCh:    make(chan struct{}, 1),
			queueCh:  make(chan struct{}, m.maxQueueDepth),
			ready:    make(chan struct{}),
		}
		m.instances.Add(modelID, inst)
		m.mu.Unlock()
		m.publisher.Publish(Event{Name: "load_start", ModelID: modelID})

		p, err := m.loadFn(mdl.Path)

		m.mu.Lock()
		if err != nil {
			inst.loadErr = ErrArtifactUnavailable(modelID, err)
			m.lastErr = err.Error()
			m.removing = true
			m.instances.Remove(modelID)
			m.removing = false
			close(inst.ready)
			m.mu.Unlock()
			m.publisher.Publish(Event{Name: "load_error", ModelID: modelID, Fields: map[string]any{"error": err.Error()}})
			return inst.loadErr
		}
		inst.Predictor = p
		inst.State = StateReady
		inst.LastUsed = time.Now()
		close(inst.ready)
		m.mu.Unlock()
		m.loadsTotal.Add(1)
		m.publisher.Publish(Event{Name: "load_done", ModelID: modelID})
		return nil
	}
}

// evictIdleForSlot removes the least recently used idle instances until a
// slot is free. Called with mu held. When every instance is busy or loading
// it returns without evicting; the cache bound then applies to the oldest
// entry on Add, which is safe because in-flight requests hold their own
// instance pointer.
func (m *Manager) evictIdleForSlot() {
	for m.instances.Len() >= m.maxLoaded {
		evicted := false
		for _, id := range m.instances.Keys() { // oldest first
			inst, ok := m.instances.Peek(id)
			if !ok || inst.State != StateReady || inst.busy() {
				continue
			}
			m.instances.Remove(id) // counted via onEvict
			evicted = true
			break
		}
		if !evicted {
			return
		}
	}
}
