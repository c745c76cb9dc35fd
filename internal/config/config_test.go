package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "KNN_K", "ALPHA", "DEFAULT_CELL_SIZE_M", "TIMEZONE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "Europe/Prague", cfg.Timezone)
	assert.Equal(t, 6, cfg.DayStartHour)
	assert.Equal(t, 18, cfg.DayEndHour)
	assert.Equal(t, 300.0, cfg.DefaultCellSizeM)
	assert.Equal(t, 5, cfg.KNNK)
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, 5, cfg.MinAnomalySamples)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("KNN_K", "8")
	t.Setenv("ALPHA", "0.01")
	t.Setenv("DEFAULT_CELL_SIZE_M", "250")
	t.Setenv("MIN_ANOMALY_SAMPLES", "not-a-number")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, 8, cfg.KNNK)
	assert.Equal(t, 0.01, cfg.Alpha)
	assert.Equal(t, 250.0, cfg.DefaultCellSizeM)
	assert.Equal(t, 5, cfg.MinAnomalySamples)
}
