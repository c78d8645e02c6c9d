package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"painel-etl/internal/client"
	"painel-etl/internal/config"
	"painel-etl/internal/engine"
	"painel-etl/internal/export"
	"painel-etl/internal/metrics"
	"painel-etl/internal/models"
	"painel-etl/internal/storage"
	"painel-etl/internal/transformer"
)

func newTestRouter(cfg *config.Config, store *storage.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	httpClient := client.NewWebhookClient(cfg, logger)
	exporter := export.NewExporter(cfg.SinkSecret, httpClient, logger)
	handler := New(cfg, httpClient, transformer.New(), store, metrics.NewCalculator(), exporter, logger)

	router := gin.New()
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/readyz", handler.ReadinessCheck)
	router.POST("/ingest/run", handler.IngestRun)
	router.GET("/quality/report", handler.QualityReport)
	router.GET("/dashboards/:dashboard", handler.Dashboard)
	router.POST("/export/run", handler.ExportRun)
	return router
}

func testConfig() *config.Config {
	return &config.Config{
		WebhookURLs:   map[string]string{},
		SinkSecret:    "segredo",
		Port:          "8080",
		LogLevel:      "error",
		HTTPTimeout:   time.Second,
		RetryAttempts: 1,
	}
}

func seedLeads(store *storage.MemoryStore, rows []engine.Row) {
	gen := store.Begin("leads")
	store.Complete("leads", gen, rows, 0)
}

func leadRow(date, seller, area string) engine.Row {
	return engine.Row{
		"entry_date": date,
		"seller":     seller,
		"area":       area,
		"channel":    "Google",
		"money":      "yes",
		"team":       "1-2",
		"stage":      engine.StagePresentation,
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(testConfig(), storage.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadinessBeforeAndAfterIngest(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(testConfig(), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	seedLeads(store, []engine.Row{leadRow("2024-01-05", "Ana", "Vendas")})

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardUnknownName(t *testing.T) {
	router := newTestRouter(testConfig(), storage.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboards/inexistente", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardPipeline(t *testing.T) {
	store := storage.NewMemoryStore()
	rows := make([]engine.Row, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, leadRow(fmt.Sprintf("2024-01-%02d", i%28+1), "Ana", "Vendas"))
	}
	seedLeads(store, rows)
	router := newTestRouter(testConfig(), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboards/leads?page=5&page_size=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Page clamped to the last page, 5 rows remaining.
	assert.Equal(t, 3, resp.Table.Page)
	assert.Equal(t, 3, resp.Table.TotalPages)
	assert.Len(t, resp.Table.Rows, 5)
	assert.Equal(t, 25, resp.Table.TotalRows)
}

func TestDashboardMultiSelectNotInformed(t *testing.T) {
	store := storage.NewMemoryStore()
	seedLeads(store, []engine.Row{
		leadRow("2024-01-01", "Ana", "Vendas"),
		leadRow("2024-01-02", "Bia", ""),
		leadRow("2024-01-03", "Caio", "Marketing"),
	})
	router := newTestRouter(testConfig(), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboards/leads?area="+engine.SelectionNotInformed, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Table.Rows, 1)
	assert.Equal(t, "Bia", resp.Table.Rows[0]["seller"])
}

func TestDashboardDateRangeFilter(t *testing.T) {
	store := storage.NewMemoryStore()
	seedLeads(store, []engine.Row{
		leadRow("2024-01-01", "Ana", "Vendas"),
		leadRow("2024-02-15", "Bia", "Vendas"),
		leadRow("2024-03-30", "Caio", "Vendas"),
	})
	router := newTestRouter(testConfig(), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboards/leads?entry_start=2024-02-01&entry_end=2024-02-28", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Table.Rows, 1)
	assert.Equal(t, "Bia", resp.Table.Rows[0]["seller"])
}

func TestIngestRunSkipsUnconfiguredWebhooks(t *testing.T) {
	router := newTestRouter(testConfig(), storage.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest/run", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.IngestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.IngestID)
	assert.Equal(t, "ok", resp.Status)
	for dashboard, result := range resp.Results {
		assert.True(t, result.Skipped, dashboard)
	}
}

func TestIngestRunFetchesConfiguredWebhook(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"VENDEDOR":"Ana","DATA DE ENTRADA":"2024-01-05"},{"sem":"nada"}]}`)
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.WebhookURLs["leads"] = upstream.URL
	store := storage.NewMemoryStore()
	router := newTestRouter(cfg, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest/run?dashboard=leads", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.IngestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Results["leads"].Records)
	assert.Equal(t, 1, resp.Results["leads"].Fallbacks)
	assert.Len(t, store.Rows("leads"), 2)
}

func TestIngestRunUnknownDashboard(t *testing.T) {
	router := newTestRouter(testConfig(), storage.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest/run?dashboard=nada", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQualityReport(t *testing.T) {
	store := storage.NewMemoryStore()
	gen := store.Begin("leads")
	store.Complete("leads", gen, []engine.Row{{}, {}, {}, {}}, 1)
	router := newTestRouter(testConfig(), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quality/report", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var report models.QualityReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))

	leads := report.Dashboards["leads"]
	assert.Equal(t, 4, leads.Records)
	assert.Equal(t, 1, leads.FallbackRows)
	require.NotNil(t, leads.FallbackShare)
	assert.Equal(t, 25.0, *leads.FallbackShare)

	sales := report.Dashboards["sales"]
	assert.Equal(t, 0, sales.Records)
	assert.Nil(t, sales.FallbackShare)
}

func TestExportRunWithoutSink(t *testing.T) {
	router := newTestRouter(testConfig(), storage.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/export/run", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportRunDeliversSignedSnapshot(t *testing.T) {
	var gotSignature string
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Signature")
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	cfg := testConfig()
	cfg.SinkURL = sink.URL
	store := storage.NewMemoryStore()
	seedLeads(store, []engine.Row{leadRow("2024-01-05", "Ana", "Vendas")})
	router := newTestRouter(cfg, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/export/run", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, gotSignature, "sha256=")
}
