package manager

import (
	"time"

	"predictd/pkg/types"
)

// Status builds a detailed status response for /api/v1/status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := types.StatusResponse{
		MaxLoaded:      m.maxLoaded,
		DefaultModel:   m.defaultModel,
		LastError:      m.lastErr,
		UptimeSeconds:  int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
		LoadsTotal:     m.loadsTotal.Load(),
		EvictionsTotal: m.evictionsTotal.Load(),
	}
	keys := m.instances.Keys()
	resp.Instances = make([]types.InstanceStatus, 0, len(keys))
	warmups := 0
	draining := 0
	for _, id := range keys {
		inst, ok := m.instances.Peek(id)
		if !ok {
			continue
		}
		if inst.State == StateLoading {
			warmups++
		}
		if inst.State == StateDraining {
			draining++
		}
		resp.Instances = append(resp.Instances, types.InstanceStatus{
			ModelID:       inst.ID,
			State:         string(inst.State),
			LastUsed:      inst.LastUsed.Unix(),
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.genCh),
			MaxQueueDepth: cap(inst.queueCh),
		})
	}
	resp.WarmupsInProgress = warmups
	resp.DrainingCount = draining
	return resp
}
