package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/accident-hotspots-go/internal/analysis/hotspot"
	"github.com/jengzang/accident-hotspots-go/internal/config"
	"github.com/jengzang/accident-hotspots-go/internal/database"
	"github.com/jengzang/accident-hotspots-go/internal/handler"
	"github.com/jengzang/accident-hotspots-go/internal/loader"
	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/repository"
	"github.com/jengzang/accident-hotspots-go/internal/service"
)

const testSecret = "router-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *hotspot.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := database.Open(database.Config{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn).RunMigrations())

	periods, err := loader.NewPeriodClassifier("Europe/Prague", 6, 18)
	require.NoError(t, err)

	engine := hotspot.NewEngine(hotspot.BoundingBox{}, nil, hotspot.DefaultParams())
	dataset := service.NewDatasetService(repository.NewAccidentRepository(conn), engine, periods, "")

	// 7x7 cells of 300 m; night anchors pin the extent to the grid corners
	const spanLat, spanLon = 0.0184, 0.0291
	occurred := time.Date(2023, 5, 4, 10, 0, 0, 0, time.UTC)
	night := func(lat, lon float64, fatalities int) models.Accident {
		return models.Accident{
			Lat: lat, Lon: lon, OccurredAt: occurred, Period: models.PeriodNight,
			Category: "náraz do stromu", Fatalities: fatalities,
		}
	}
	accidents := []models.Accident{
		night(50.76, 15.05, 0),
		night(50.76+spanLat, 15.05+spanLon, 0),
		night(50.77, 15.06, 1),
	}
	for row := 0; row < 7; row++ {
		for col := 0; col < 7; col++ {
			n := 1
			switch {
			case row == 0 && col == 0:
				n = 20
			case row == 0 && col == 2, row == 2 && col == 0:
				n = 3
			}
			for i := 0; i < n; i++ {
				accidents = append(accidents, models.Accident{
					Lat:           50.76 + (float64(row)+0.5)*spanLat/7,
					Lon:           15.05 + (float64(col)+0.5)*spanLon/7,
					OccurredAt:    occurred,
					Period:        models.PeriodDay,
					Category:      "srážka se zvěří",
					MinorInjuries: 1,
				})
			}
		}
	}
	dataset.Replace(accidents)

	cfg := &config.Config{JWTSecret: testSecret, RateLimit: 1000}
	r := SetupRouter(cfg, Handlers{
		Hotspots:  handler.NewHotspotHandler(service.NewHotspotService(dataset, engine, 300)),
		Clusters:  handler.NewClusterHandler(service.NewClusterService(dataset)),
		Accidents: handler.NewAccidentHandler(service.NewAccidentService(dataset), dataset),
	})
	return r, engine
}

func do(t *testing.T, r *gin.Engine, method, target, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_Hotspots(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/hotspots?cellSize=300&metric=count", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, env.Code)

	var report hotspot.HotspotReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, hotspot.MetricCount, report.Metric)
	require.NotEmpty(t, report.Day.Hotspots)
	assert.Equal(t, 20, report.Day.Hotspots[0].Count)
	assert.Equal(t, 0, report.Day.Hotspots[0].CellID)
	assert.Equal(t, 7, report.Grid.Rows)
	assert.Equal(t, 7, report.Grid.Cols)
	assert.Equal(t, 3, report.Night.Points)
}

func TestRouter_BadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, target := range []string{
		"/api/v1/hotspots?metric=speed",
		"/api/v1/hotspots?cellSize=-10",
		"/api/v1/hotspots?cellSize=wide",
		"/api/v1/hotspots?cellSize=0.000001",
		"/api/v1/anomalies?severity=minor",
		"/api/v1/clusters?minSamples=many",
		"/api/v1/accidents?minDamage=-1",
	} {
		w, env := do(t, r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, http.StatusBadRequest, env.Code, target)
		assert.NotEmpty(t, env.Error, target)
	}
}

func TestRouter_AnomaliesAndClusters(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/anomalies", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var anomalies hotspot.AnomalyReport
	require.NoError(t, json.Unmarshal(env.Data, &anomalies))
	assert.Equal(t, 300.0, anomalies.CellSizeM)
	assert.Equal(t, 3, anomalies.NightCount)

	w, env = do(t, r, http.MethodGet, "/api/v1/clusters?eps=0.1&minSamples=5", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var clusters service.ClusterReport
	require.NoError(t, json.Unmarshal(env.Data, &clusters))
	assert.Equal(t, 0.1, clusters.Eps)
	require.NotEmpty(t, clusters.Day)
	assert.Equal(t, 20, clusters.Day[0].Count)
}

func TestRouter_AccidentsAndStats(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/accidents?severity=fatal", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var collections struct {
		Day struct {
			Type     string            `json:"type"`
			Features []json.RawMessage `json:"features"`
		} `json:"day"`
		Night struct {
			Features []json.RawMessage `json:"features"`
		} `json:"night"`
		NightCount int `json:"night_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &collections))
	assert.Equal(t, "FeatureCollection", collections.Day.Type)
	assert.Empty(t, collections.Day.Features)
	assert.Len(t, collections.Night.Features, 1)
	assert.Equal(t, 1, collections.NightCount)

	w, env = do(t, r, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var st models.DatasetStatistics
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 75, st.Total)
	assert.Equal(t, 3, st.Night)
	assert.Equal(t, "srážka se zvěří", st.Types[0].Name)

	w, env = do(t, r, http.MethodGet, "/api/v1/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), hotspot.MetricSeverity)
}

func TestRouter_Admin(t *testing.T) {
	r, engine := newTestRouter(t)

	_, err := engine.Grid(300)
	require.NoError(t, err)

	w, _ := do(t, r, http.MethodPost, "/api/admin/grid-cache/clear", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, engine.CachedGrids())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w, env := do(t, r, http.MethodPost, "/api/admin/grid-cache/clear", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"cleared": 1, "cleared_by": "ops"}`, string(env.Data))
	assert.Zero(t, engine.CachedGrids())

	// no data file is configured in tests
	w, _ = do(t, r, http.MethodPost, "/api/admin/dataset/reload", token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(t, r, http.MethodOptions, "/api/v1/hotspots", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
