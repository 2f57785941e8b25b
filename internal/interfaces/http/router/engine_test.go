package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labbench/backend/internal/application/dilution"
	"github.com/labbench/backend/internal/infrastructure/cache"
	"github.com/labbench/backend/internal/infrastructure/config"
	"github.com/labbench/backend/internal/infrastructure/persistence"
	"github.com/labbench/backend/internal/interfaces/http/dto"
	"github.com/labbench/backend/internal/interfaces/http/handler"
	"github.com/labbench/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, logger *zap.Logger) http.Handler {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	catalog := cache.NewInMemorySubstanceCatalog()
	svc := dilution.NewService(persistence.NewGormEntryRepository(db.DB), catalog)
	health := handler.NewHealthHandler("labbench", "test", map[string]handler.Pinger{
		"database":   handler.PingFunc(db.PingContext),
		"substances": catalog,
	})

	return NewEngine(
		EngineConfig{Logger: logger, BodyLimit: 4096},
		health,
		BenchRoutes(handler.NewDilutionHandler(svc), handler.NewQuantityHandler(svc))...,
	)
}

func request(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const procedure = `{
	"title": "Mohr salt standard",
	"solute": {"name": "Mohr", "molar_mass": {"value": 392.1, "digits": 4}},
	"mass": {"value": 0.4019, "digits": 4},
	"beaker": {"capacity": 100, "fill_to": {"value": 20, "digits": 2}},
	"flask": 100,
	"stages": [{"pipette": 5, "flask": 200}]
}`

func TestNewEngine_EndToEnd(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	engine := newTestEngine(t, zap.New(core))

	w := request(engine, "POST", "/api/v1/dilutions", procedure)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	var created struct {
		Data dilution.EntryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "2.6 [10^-4 mol dm^-3]", created.Data.FinalConcentration.Display)

	w = request(engine, "GET", "/api/v1/dilutions/"+created.Data.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched struct {
		Data dilution.EntryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Data.FinalConcentration, fetched.Data.FinalConcentration)
	assert.Equal(t, created.Data.Stages, fetched.Data.Stages)

	w = request(engine, "GET", "/api/v1/dilutions?search=mohr", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.NotNil(t, listed.Meta)
	assert.Equal(t, int64(1), listed.Meta.Total)

	assert.Equal(t, 3, logs.FilterMessage("HTTP Request").Len())
}

func TestNewEngine_Health(t *testing.T) {
	engine := newTestEngine(t, zap.NewNop())

	w := request(engine, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
	assert.Contains(t, w.Body.String(), `"substances":"ok"`)
}

func TestNewEngine_BodyLimit(t *testing.T) {
	engine := newTestEngine(t, zap.NewNop())

	w := request(engine, "POST", "/api/v1/dilutions", `{"title":"`+strings.Repeat("x", 5000)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestNewEngine_UnknownRoute(t *testing.T) {
	engine := newTestEngine(t, zap.NewNop())
	w := request(engine, "GET", "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewEngine_Defaults(t *testing.T) {
	engine := NewEngine(EngineConfig{}, nil)
	w := request(engine, "GET", "/health", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
