package manager

import (
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"predictd/pkg/types"
)

type Manager struct {
	mu           sync.Mutex
	registry     []types.Model
	defaultModel string

	// instances holds loaded predictors in recency order, bounded by
	// maxLoaded. Mutations happen under mu; the cache's own locking is
	// incidental.
	instances *lru.Cache[string, *Instance]
	// removing suppresses eviction accounting during deliberate Removes
	// (unload, failed load). Only toggled while mu is held.
	removing bool

	maxLoaded     int
	maxQueueDepth int
	maxWait       time.Duration
	drainTimeout  time.Duration

	loadFn    LoadFunc
	publisher EventPublisher

	startTime      time.Time
	loadsTotal     atomic.Uint64
	evictionsTotal atomic.Uint64
	lastErr        string
}

// New constructs a Manager with package defaults.
func New(reg []types.Model, defaultModel string) *Manager {
	return NewWithConfig(ManagerConfig{Registry: reg, DefaultModel: defaultModel})
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		registry:     cfg.Registry,
		defaultModel: cfg.DefaultModel,
	}
	if cfg.MaxLoaded <= 0 {
		m.maxLoaded = defaultMaxLoaded
	} else {
		m.maxLoaded = cfg.MaxLoaded
	}
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if cfg.Load == nil {
		m.loadFn = defaultLoad
	} else {
		m.loadFn = cfg.Load
	}
	if cfg.Publisher == nil {
		m.publisher = noopPublisher{}
	} else {
		m.publisher = cfg.Publisher
	}
	// Size can only be rejected for values <= 0, which the clamp above rules out.
	cache, _ := lru.NewWithEvict(m.maxLoaded, m.onEvict)
	m.instances = cache
	m.startTime = time.Now()
	return m
}

// onEvict runs synchronously inside cache Add/Remove calls while mu is held,
// so it must not take mu itself.
func (m *Manager) onEvict(id string, _ *Instance) {
	if m.removing {
		return
	}
	m.evictionsTotal.Add(1)
	m.publisher.Publish(Event{Name: "evict", ModelID: id})
}

// Ready reports whether the service can answer predictions without a warmup.
// With no default model configured there is nothing to warm, so the service
// is ready as soon as it is constructed.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.defaultModel == "" {
		return true
	}
	for _, id := range m.instances.Keys() {
		if inst, ok := m.instances.Peek(id); ok && inst.State == StateReady {
			return true
		}
	}
	return false
}

// ListModels returns the discovered registry.
func (m *Manager) ListModels() []types.Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Model, len(m.registry))
	copy(out, m.registry)
	return out
}

// DefaultModel returns the configured default model id ("" when unset).
func (m *Manager) DefaultModel() string { return m.defaultModel }

// getModelByID finds a model in the registry by id.
func (m *Manager) getModelByID(id string) (types.Model, bool) {
	for _, mdl := range m.registry {
		if mdl.ID == id {
			return mdl, true
		}
	}
	return types.Model{}, false
}
