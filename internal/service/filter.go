package service

import (
	"errors"
	"fmt"

	"github.com/jengzang/accident-hotspots-go/internal/models"
)

var (
	// ErrInvalidFilter is returned for filter values outside their accepted set
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrNoDataSource is returned when a reload is requested without a data file
	ErrNoDataSource = errors.New("no data source configured")
)

// ValidateFilter checks the upstream accident filter
func ValidateFilter(f models.AccidentFilter) error {
	switch f.Severity {
	case "", models.SeverityAll, models.SeverityFatal, models.SeveritySerious, models.SeverityInjury:
	default:
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidFilter, f.Severity)
	}
	if f.MinDamage < 0 {
		return fmt.Errorf("%w: minDamage must not be negative", ErrInvalidFilter)
	}
	return nil
}

// FilterAccidents returns the accidents matching f. The input is not modified.
func FilterAccidents(accidents []models.Accident, f models.AccidentFilter) []models.Accident {
	types := make(map[string]bool)
	for _, t := range f.TypeList() {
		types[t] = true
	}

	out := make([]models.Accident, 0, len(accidents))
	for i := range accidents {
		a := &accidents[i]
		if !matchesSeverity(a, f.Severity) {
			continue
		}
		if f.MinDamage > 0 && a.Damage < f.MinDamage {
			continue
		}
		if len(types) > 0 && !types[a.Category] {
			continue
		}
		out = append(out, *a)
	}
	return out
}

func matchesSeverity(a *models.Accident, severity string) bool {
	switch severity {
	case models.SeverityFatal:
		return a.Fatalities > 0
	case models.SeveritySerious:
		return a.Fatalities > 0 || a.SeriousInjuries > 0
	case models.SeverityInjury:
		return a.Fatalities > 0 || a.SeriousInjuries > 0 || a.MinorInjuries > 0
	default:
		return true
	}
}
