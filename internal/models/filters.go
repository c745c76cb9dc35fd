package models

import "strings"

// Severity filter levels
const (
	SeverityAll     = "all"
	SeverityFatal   = "fatal"
	SeveritySerious = "serious"
	SeverityInjury  = "injury"
)

// AccidentFilter represents the upstream filters shared by every analysis endpoint
type AccidentFilter struct {
	Severity  string `form:"severity"`  // all, fatal, serious, injury
	MinDamage int64  `form:"minDamage"` // CZK, 0 disables
	Types     string `form:"types"`     // accident types separated by "|"
}

// TypeList splits the pipe separated Types parameter, dropping blanks
func (f AccidentFilter) TypeList() []string {
	if f.Types == "" {
		return nil
	}
	var types []string
	for _, t := range strings.Split(f.Types, "|") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// HotspotFilter represents query parameters for the hotspot endpoint
type HotspotFilter struct {
	AccidentFilter
	CellSize float64 `form:"cellSize"` // meters
	Metric   string  `form:"metric"`   // count, severity, damage
}

// AnomalyFilter represents query parameters for the day/night anomaly endpoint
type AnomalyFilter struct {
	AccidentFilter
	CellSize float64 `form:"cellSize"` // meters
}

// ClusterFilter represents query parameters for the DBSCAN endpoint
type ClusterFilter struct {
	AccidentFilter
	Eps        float64 `form:"eps"`        // kilometers
	MinSamples int     `form:"minSamples"` // minimum points per cluster
}
