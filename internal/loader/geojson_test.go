package loader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/accident-hotspots-go/internal/models"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [15.0543, 50.7663]},
      "properties": {
        "datum": "2023-06-01T10:30:00Z",
        "druh": "srážka s jedoucím nekolejovým vozidlem",
        "pricina": "nepřizpůsobení rychlosti",
        "usmrceno": 0,
        "tezce_zraneno": 1,
        "lehce_zraneno": 2,
        "hmotna_skoda": "35 000 Kč"
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [15.06, 50.77]},
      "properties": {
        "datum": "2023-01-15 22:10:00",
        "druh": "srážka se zvěří",
        "usmrceno": 1,
        "hmotna_skoda": 12000
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [15.07, 50.78]},
      "properties": {"datum": "not a date"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[15.0, 50.7], [15.1, 50.8]]},
      "properties": {"datum": "2023-01-15T12:00:00Z"}
    }
  ]
}`

func pragueDay(t *testing.T) *PeriodClassifier {
	t.Helper()
	p, err := NewPeriodClassifier("Europe/Prague", 6, 18)
	require.NoError(t, err)
	return p
}

func TestLoadGeoJSON(t *testing.T) {
	t.Parallel()

	result, err := LoadGeoJSON(strings.NewReader(sampleCollection), pragueDay(t))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Accidents, 2)

	first := result.Accidents[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, 50.7663, first.Lat)
	assert.Equal(t, 15.0543, first.Lon)
	assert.Equal(t, models.PeriodDay, first.Period)
	assert.Equal(t, 12, first.OccurredAt.Hour(), "summer time is UTC+2")
	assert.Equal(t, "nepřizpůsobení rychlosti", first.Cause)
	assert.Equal(t, 1, first.SeriousInjuries)
	assert.Equal(t, 2, first.MinorInjuries)
	assert.Equal(t, int64(35000), first.Damage)

	second := result.Accidents[1]
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, models.PeriodNight, second.Period)
	assert.Equal(t, 23, second.OccurredAt.Hour(), "naive timestamps are UTC")
	assert.Equal(t, "", second.Cause)
	assert.Equal(t, 1, second.Fatalities)
	assert.Equal(t, int64(12000), second.Damage)
}

func TestLoadGeoJSON_Invalid(t *testing.T) {
	t.Parallel()
	_, err := LoadGeoJSON(strings.NewReader(`{"type": "FeatureCollection", "features": [`), pragueDay(t))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()
	_, err := LoadFile("does-not-exist.geojson", pragueDay(t))
	assert.Error(t, err)
}

func TestPeriodClassifier(t *testing.T) {
	t.Parallel()
	p := pragueDay(t)

	tests := []struct {
		utc  string
		want models.Period
	}{
		{"2023-01-10T05:00:00Z", models.PeriodDay},   // 06:00 CET
		{"2023-01-10T04:59:00Z", models.PeriodNight}, // 05:59 CET
		{"2023-01-10T17:59:00Z", models.PeriodDay},   // 18:59 CET
		{"2023-01-10T18:00:00Z", models.PeriodNight}, // 19:00 CET
		{"2023-07-10T16:30:00Z", models.PeriodDay},   // 18:30 CEST
		{"2023-07-10T17:00:00Z", models.PeriodNight}, // 19:00 CEST
	}
	for _, tt := range tests {
		ts, err := time.Parse(time.RFC3339, tt.utc)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Classify(ts), tt.utc)
	}
}

func TestNewPeriodClassifier_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewPeriodClassifier("Mars/Olympus", 6, 18)
	assert.Error(t, err)

	_, err = NewPeriodClassifier("Europe/Prague", 19, 6)
	assert.Error(t, err)

	_, err = NewPeriodClassifier("Europe/Prague", 6, 24)
	assert.Error(t, err)
}

func TestParseDamage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   interface{}
		want int64
	}{
		{"35 000 Kč", 35000},
		{"1 200 Kč", 1200},
		{"", 0},
		{"bez škody", 0},
		{float64(5400), 5400},
		{nil, 0},
		{true, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDamage(tt.in), "%v", tt.in)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	ts, ok := ParseTimestamp("2023-03-05T08:15:00+01:00")
	require.True(t, ok)
	assert.Equal(t, 7, ts.UTC().Hour())

	ts, ok = ParseTimestamp(float64(1672531200000))
	require.True(t, ok)
	assert.Equal(t, 2023, ts.Year())

	_, ok = ParseTimestamp(nil)
	assert.False(t, ok)
	_, ok = ParseTimestamp("yesterday")
	assert.False(t, ok)
}
