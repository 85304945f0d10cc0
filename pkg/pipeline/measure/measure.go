package measure

import (
	"sort"
	"sync"
)

type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

// AddMetric registers a metric for name. A name already registered keeps its metric,
// which happens for the branches of a splitter.
func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Steps[name]; ok {
		return mt
	}
	if concurrent < 1 {
		concurrent = 1
	}
	mt := &DefaultMetric{
		mu:            &sync.Mutex{},
		allTransports: make(map[string]*TransportInfo),
		concurrent:    concurrent,
	}
	m.Steps[name] = mt

	return mt
}

// GetMetric returns the metric registered for name, registering it on first use.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	mt, ok := m.Steps[name]
	m.mu.Unlock()
	if ok {
		return mt
	}

	return m.AddMetric(name, 1)
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.Steps))
	for name, mt := range m.Steps {
		all[name] = mt
	}

	return all
}

// SortedNames returns the step names ordered by decreasing average duration, then by name.
func SortedNames(msr Measure) []string {
	all := msr.AllMetrics()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := all[names[i]].AVGDuration(), all[names[j]].AVGDuration()
		if di != dj {
			return di > dj
		}

		return names[i] < names[j]
	})

	return names
}

var _ Measure = (*DefaultMeasure)(nil)
