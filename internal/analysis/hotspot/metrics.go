package hotspot

import (
	"fmt"
	"sort"
	"sync"
)

// Built-in hotspot metric names
const (
	MetricCount    = "count"
	MetricSeverity = "severity"
	MetricDamage   = "damage"
)

// Metric describes how a hotspot metric is read from a cell and which cells
// are eligible for it
type Metric struct {
	Name    string
	Value   func(*CellAggregate) float64
	Include InclusionPredicate

	// RankByValue orders hotspots by metric value instead of z-score
	RankByValue bool
}

var (
	metricsMu       sync.RWMutex
	metricsRegistry = make(map[string]Metric)
)

// RegisterMetric registers a metric under its name, replacing any previous one
func RegisterMetric(m Metric) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metricsRegistry[m.Name] = m
}

// LookupMetric retrieves a registered metric by name
func LookupMetric(name string) (Metric, error) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	m, ok := metricsRegistry[name]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return m, nil
}

// MetricNames lists the registered metric names in sorted order
func MetricNames() []string {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	names := make([]string, 0, len(metricsRegistry))
	for name := range metricsRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// severity and damage ignore cells with a zero value entirely
	RegisterMetric(Metric{
		Name:    MetricCount,
		Value:   func(c *CellAggregate) float64 { return float64(c.Count) },
		Include: AllCells,
	})
	RegisterMetric(Metric{
		Name:        MetricSeverity,
		Value:       func(c *CellAggregate) float64 { return float64(c.SeverityScore) },
		Include:     PositiveOnly,
		RankByValue: true,
	})
	RegisterMetric(Metric{
		Name:        MetricDamage,
		Value:       func(c *CellAggregate) float64 { return float64(c.Damage) },
		Include:     PositiveOnly,
		RankByValue: true,
	})
}
