package loader

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// PeriodClassifier assigns Day or Night from the local hour of an accident
type PeriodClassifier struct {
	Location *time.Location
	DayStart int // inclusive
	DayEnd   int // inclusive
}

// NewPeriodClassifier creates a classifier for the named IANA time zone
func NewPeriodClassifier(timezone string, dayStart, dayEnd int) (*PeriodClassifier, error) {
	if dayStart < 0 || dayEnd > 23 || dayStart > dayEnd {
		return nil, fmt.Errorf("invalid day hours %d-%d", dayStart, dayEnd)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", timezone, err)
	}
	return &PeriodClassifier{Location: loc, DayStart: dayStart, DayEnd: dayEnd}, nil
}

// Local converts t to the classifier's time zone
func (p *PeriodClassifier) Local(t time.Time) time.Time {
	return t.In(p.Location)
}

// Classify returns Day when the local hour falls within [DayStart, DayEnd]
func (p *PeriodClassifier) Classify(t time.Time) models.Period {
	hour := p.Local(t).Hour()
	if hour >= p.DayStart && hour <= p.DayEnd {
		return models.PeriodDay
	}
	return models.PeriodNight
}
