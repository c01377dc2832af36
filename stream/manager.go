package stream

import (
	"errors"
	"sync"

	"shelfsense/catalog"
	"shelfsense/models"
)

var ErrAlreadyRunning = errors.New("a stream simulation is already running")

// Manager serializes access to a single active simulation run. The HTTP
// layer talks to the manager, never to the scheduler directly.
type Manager struct {
	mu          sync.Mutex
	scheduler   *Scheduler
	broadcaster *Broadcaster
	run         *Run
}

// NewManager wires a scheduler whose events reach the live-feed broadcaster
// plus any extra sinks (e.g. Kafka).
func NewManager(cat *catalog.Catalog, extra ...Sink) *Manager {
	broadcaster := NewBroadcaster()
	sinks := append([]Sink{broadcaster}, extra...)
	return &Manager{
		scheduler:   NewScheduler(cat, sinks...),
		broadcaster: broadcaster,
	}
}

// Start launches a run. Fails with ErrAlreadyRunning while one is active.
func (m *Manager) Start(cfg SimulationConfig) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run != nil && m.run.Running() {
		return nil, ErrAlreadyRunning
	}
	run, err := m.scheduler.Simulate(cfg)
	if err != nil {
		return nil, err
	}
	m.run = run
	return run, nil
}

// Stop cancels the active run, if any, and reports whether one was active.
func (m *Manager) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil || !m.run.Running() {
		return false
	}
	m.run.Cancel()
	return true
}

// Metrics returns the active or most recent run's metrics.
func (m *Manager) Metrics() (models.StreamMetrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil {
		return models.StreamMetrics{}, false
	}
	return m.run.Metrics(), true
}

// Running reports whether a simulation is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run != nil && m.run.Running()
}

// Broadcaster exposes the live-feed fan-out for websocket subscribers.
func (m *Manager) Broadcaster() *Broadcaster {
	return m.broadcaster
}
