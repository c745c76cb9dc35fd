package models

import "time"

// Period is the time-of-day tag assigned to an accident by the loader
type Period string

const (
	PeriodDay   Period = "Day"
	PeriodNight Period = "Night"
)

// UnknownLabel is reported for a category or cause no accident carries
const UnknownLabel = "Unknown"

// Severity weights used for the composite severity score
const (
	FatalityWeight      = 10
	SeriousInjuryWeight = 5
	MinorInjuryWeight   = 1
)

// Accident represents a single traffic accident event.
// Values are owned by the loader and treated as read-only by the analysis code.
type Accident struct {
	ID         int64     `json:"id" db:"id"`
	Lat        float64   `json:"lat" db:"latitude"`
	Lon        float64   `json:"lon" db:"longitude"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
	Period     Period    `json:"period" db:"period"`

	// Classification
	Category string `json:"category,omitempty" db:"category"` // accident type ("druh")
	Cause    string `json:"cause,omitempty" db:"cause"`       // main cause ("pricina")

	// Consequences
	Fatalities      int   `json:"fatalities" db:"fatalities"`
	SeriousInjuries int   `json:"serious_injuries" db:"serious_injuries"`
	MinorInjuries   int   `json:"minor_injuries" db:"minor_injuries"`
	Damage          int64 `json:"damage" db:"damage"` // material damage in CZK
}

// SeverityScore returns the weighted injury score of the accident
func (a *Accident) SeverityScore() int {
	return a.Fatalities*FatalityWeight +
		a.SeriousInjuries*SeriousInjuryWeight +
		a.MinorInjuries*MinorInjuryWeight
}

// IsNight reports whether the accident happened during the night period
func (a *Accident) IsNight() bool {
	return a.Period == PeriodNight
}
