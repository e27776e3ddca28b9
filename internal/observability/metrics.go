package observability

import (
	"slices"
	"strings"
	"sync"
)

// Outcome labels recorded for each operation.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu         sync.Mutex
	operations map[string]int64
	events     map[string]int64
}

// Counter is one row of a metrics snapshot.
type Counter struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: make(map[string]int64),
		events:     make(map[string]int64),
	}
}

// RecordOperation increments the counter for a store operation and its outcome.
func (m *Metrics) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[operation+"|"+outcome]++
}

// RecordEvent increments the counter for an event delivery result.
func (m *Metrics) RecordEvent(eventType, result string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[eventType+"|"+result]++
}

// Snapshot returns all counters sorted by name.
func (m *Metrics) Snapshot() []Counter {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make([]Counter, 0, len(m.operations)+len(m.events))
	for key, value := range m.operations {
		counters = append(counters, Counter{Name: "operation|" + key, Value: value})
	}
	for key, value := range m.events {
		counters = append(counters, Counter{Name: "event|" + key, Value: value})
	}
	slices.SortFunc(counters, func(a, b Counter) int { return strings.Compare(a.Name, b.Name) })
	return counters
}
