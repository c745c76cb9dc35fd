package loader

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// Property names of the police accident export
const (
	propDate            = "datum"
	propCategory        = "druh"
	propCause           = "pricina"
	propFatalities      = "usmrceno"
	propSeriousInjuries = "tezce_zraneno"
	propMinorInjuries   = "lehce_zraneno"
	propDamage          = "hmotna_skoda"
)

// naive layouts are interpreted as UTC
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Result is the outcome of loading one GeoJSON document
type Result struct {
	Accidents []models.Accident
	Skipped   int // features without a point geometry or a parseable datum
}

// LoadFile loads accidents from a GeoJSON file on disk
func LoadFile(path string, periods *PeriodClassifier) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return LoadGeoJSON(f, periods)
}

// LoadGeoJSON parses a FeatureCollection of accident points
func LoadGeoJSON(r io.Reader, periods *PeriodClassifier) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	result := &Result{Accidents: make([]models.Accident, 0, len(fc.Features))}
	for i, f := range fc.Features {
		a, ok := toAccident(f, periods)
		if !ok {
			result.Skipped++
			continue
		}
		a.ID = int64(i + 1)
		result.Accidents = append(result.Accidents, a)
	}

	if result.Skipped > 0 {
		log.Printf("[Loader] Skipped %d of %d features without a point or a valid datum",
			result.Skipped, len(fc.Features))
	}
	log.Printf("[Loader] Loaded %d accidents", len(result.Accidents))
	return result, nil
}

func toAccident(f *geojson.Feature, periods *PeriodClassifier) (models.Accident, bool) {
	if f == nil {
		return models.Accident{}, false
	}
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return models.Accident{}, false
	}
	lon, lat := pt.Lon(), pt.Lat()
	if !finite(lat) || !finite(lon) {
		return models.Accident{}, false
	}

	occurred, ok := ParseTimestamp(f.Properties[propDate])
	if !ok {
		return models.Accident{}, false
	}
	occurred = periods.Local(occurred)

	return models.Accident{
		Lat:             lat,
		Lon:             lon,
		OccurredAt:      occurred,
		Period:          periods.Classify(occurred),
		Category:        f.Properties.MustString(propCategory, ""),
		Cause:           f.Properties.MustString(propCause, ""),
		Fatalities:      int(toInt(f.Properties[propFatalities])),
		SeriousInjuries: int(toInt(f.Properties[propSeriousInjuries])),
		MinorInjuries:   int(toInt(f.Properties[propMinorInjuries])),
		Damage:          ParseDamage(f.Properties[propDamage]),
	}, true
}

// ParseTimestamp reads an RFC 3339 or naive timestamp string, or a number of
// milliseconds since the Unix epoch
func ParseTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	case float64:
		if finite(t) {
			return time.UnixMilli(int64(t)).UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseDamage reads the property damage in CZK. Strings such as "35 000 Kč"
// keep only their digits; anything else counts as zero.
func ParseDamage(v interface{}) int64 {
	switch d := v.(type) {
	case float64:
		if finite(d) {
			return int64(d)
		}
	case string:
		var digits strings.Builder
		for _, r := range d {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		if digits.Len() == 0 {
			return 0
		}
		n, err := strconv.ParseInt(digits.String(), 10, 64)
		if err == nil {
			return n
		}
	}
	return 0
}

func toInt(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		if finite(n) {
			return int64(n)
		}
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err == nil {
			return i
		}
	}
	return 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
