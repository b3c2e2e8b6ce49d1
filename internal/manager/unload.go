package manager

import (
	"time"
)

// Unload initiates a graceful drain of a model instance and removes it.
// - Sets instance state to draining to reject new admissions.
// - Waits up to the drain timeout for in-flight and queued requests to finish.
// - Removes the instance entry; the predictor memory is released when the
//   last in-flight request drops its reference.
func (m *Manager) Unload(modelID string) error {
	if modelID == "" {
		return ErrModelNotFound("(unspecified)")
	}
	m.mu.Lock()
	inst, ok := m.instances.Peek(modelID)
	if !ok {
		m.mu.Unlock()
		return ErrModelNotFound(modelID)
	}
	inst.State = StateDraining
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "unload_start", ModelID: modelID})

	deadline := time.Now().Add(m.drainTimeout)
	for {
		if !inst.busy() {
			break
		}
		if time.Now().After(deadline) {
			m.publisher.Publish(Event{Name: "unload_timeout", ModelID: modelID,
				Fields: map[string]any{"inflight": len(inst.genCh), "queue": len(inst.queueCh)}})
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	m.mu.Lock()
	m.removing = true
	m.instances.Remove(modelID)
	m.removing = false
	m.mu.Unlock()

	m.publisher.Publish(Event{Name: "unload_done", ModelID: modelID})
	return nil
}
