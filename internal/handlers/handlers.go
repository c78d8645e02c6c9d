package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"painel-etl/internal/client"
	"painel-etl/internal/config"
	"painel-etl/internal/engine"
	"painel-etl/internal/export"
	"painel-etl/internal/metrics"
	"painel-etl/internal/models"
	"painel-etl/internal/storage"
	"painel-etl/internal/transformer"
)

type Handler struct {
	config      *config.Config
	httpClient  *client.WebhookClient
	transformer *transformer.Transformer
	store       *storage.MemoryStore
	calculator  *metrics.Calculator
	exporter    *export.Exporter
	logger      *logrus.Logger
}

func New(cfg *config.Config, httpClient *client.WebhookClient, trans *transformer.Transformer,
	store *storage.MemoryStore, calculator *metrics.Calculator, exporter *export.Exporter,
	logger *logrus.Logger) *Handler {
	return &Handler{
		config:      cfg,
		httpClient:  httpClient,
		transformer: trans,
		store:       store,
		calculator:  calculator,
		exporter:    exporter,
		logger:      logger,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "painel-etl",
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store.HasData() {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"has_data":    true,
			"last_ingest": h.store.LastIngest().Format(time.RFC3339),
		})
	} else {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not ready",
			"has_data": false,
			"message":  "No data ingested yet",
		})
	}
}

// IngestRun fetches and normalizes every configured webhook, or a
// single one with ?dashboard=. Each dashboard's collection is replaced
// wholesale; stale fetches lose to newer ones via store generations.
func (h *Handler) IngestRun(c *gin.Context) {
	ingestID := uuid.New().String()
	log := h.logger.WithField("ingest_id", ingestID)
	log.Info("Starting data ingestion")

	targets := h.config.Dashboards()
	if only := c.Query("dashboard"); only != "" {
		if _, err := transformer.DomainFor(only); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		targets = []string{only}
	}

	results := make(map[string]models.IngestResult, len(targets))
	failed := false

	for _, dashboard := range targets {
		url := h.config.WebhookURLs[dashboard]
		if url == "" {
			results[dashboard] = models.IngestResult{Skipped: true}
			continue
		}

		d, _ := transformer.DomainFor(dashboard)
		generation := h.store.Begin(dashboard)

		payload, err := h.httpClient.FetchPayload(c.Request.Context(), url)
		if err != nil {
			log.WithError(err).WithField("dashboard", dashboard).Error("Failed to fetch webhook data")
			results[dashboard] = models.IngestResult{Error: err.Error()}
			failed = true
			continue
		}

		rows, fallbacks := h.transformer.NormalizeAll(d, payload)
		if !h.store.Complete(dashboard, generation, rows, fallbacks) {
			log.WithField("dashboard", dashboard).Warn("Discarding stale ingest result")
			results[dashboard] = models.IngestResult{Skipped: true}
			continue
		}

		log.WithFields(logrus.Fields{
			"dashboard": dashboard,
			"records":   len(rows),
			"fallbacks": fallbacks,
		}).Info("Dashboard ingested")
		results[dashboard] = models.IngestResult{Records: len(rows), Fallbacks: fallbacks}
	}

	status := "ok"
	code := http.StatusOK
	if failed {
		status = "partial"
		code = http.StatusBadGateway
	}
	c.JSON(code, models.IngestResponse{
		IngestID:    ingestID,
		Status:      status,
		Results:     results,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// Dashboard runs the full pipeline for one dashboard: filter, sort,
// paginate for the table, aggregate and derive KPIs for the cards.
func (h *Handler) Dashboard(c *gin.Context) {
	name := c.Param("dashboard")
	d, err := transformer.DomainFor(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	rows := h.store.Rows(name)
	filtered := engine.Apply(rows, d, h.parseFilter(c, d))
	sorted := engine.Sort(filtered, d, h.parseSort(c, d))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(engine.DefaultPageSize)))
	table := engine.Paginate(sorted, page, pageSize)

	h.logger.WithFields(logrus.Fields{
		"dashboard": name,
		"rows":      len(rows),
		"filtered":  len(filtered),
		"page_rows": len(table.Rows),
	}).Debug("Dashboard pipeline")

	c.JSON(http.StatusOK, models.DashboardResponse{
		Dashboard:   name,
		Table:       table,
		Summary:     h.calculator.Summary(name, filtered),
		GeneratedAt: time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) parseFilter(c *gin.Context, d engine.Domain) engine.Filter {
	filter := engine.Filter{
		Start:    c.Query("entry_start"),
		End:      c.Query("entry_end"),
		Query:    c.Query("q"),
		Exact:    make(map[string]string),
		Selected: make(map[string][]string),
	}

	if stage := c.Query("stage"); stage != "" {
		filter.Exact["stage"] = engine.FunnelStage(stage)
	}

	for _, field := range d.MultiSelect {
		if raw := c.Query(field); raw != "" {
			values := make([]string, 0)
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			filter.Selected[field] = values
		}
	}
	return filter
}

func (h *Handler) parseSort(c *gin.Context, d engine.Domain) engine.SortState {
	state := d.DefaultSort
	if key := c.Query("sort_by"); key != "" {
		state.Key = key
	}
	switch c.Query("sort_dir") {
	case string(engine.Asc):
		state.Direction = engine.Asc
	case string(engine.Desc):
		state.Direction = engine.Desc
	}
	return state
}

// QualityReport surfaces how defensively each dashboard's last payload
// had to be normalized.
func (h *Handler) QualityReport(c *gin.Context) {
	report := models.QualityReport{
		Dashboards: make(map[string]models.DashboardQuality),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
	for _, dashboard := range h.config.Dashboards() {
		records, fallbacks := h.store.Fallbacks(dashboard)
		report.Dashboards[dashboard] = models.DashboardQuality{
			Records:       records,
			FallbackRows:  fallbacks,
			FallbackShare: engine.Percentage(float64(fallbacks), float64(records)),
		}
	}
	c.JSON(http.StatusOK, report)
}

// ExportRun pushes today's KPI snapshot to the sink webhook.
func (h *Handler) ExportRun(c *gin.Context) {
	if h.config.SinkURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No sink URL configured"})
		return
	}
	if !h.store.HasData() {
		c.JSON(http.StatusConflict, gin.H{"error": "No data to export"})
		return
	}

	snapshot := models.ExportSnapshot{
		Date:      time.Now().Format("2006-01-02"),
		Leads:     h.calculator.LeadsSummary(h.store.Rows("leads")),
		Sales:     h.calculator.SalesSummary(h.store.Rows("sales")),
		MRR:       h.calculator.MRRSummary(h.store.Rows("mrr")),
		Campaigns: h.calculator.CampaignsSummary(h.store.Rows("campaigns")),
	}

	if err := h.exporter.ExportSnapshot(c.Request.Context(), h.config.SinkURL, snapshot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	c.JSON(http.StatusOK, models.ExportResponse{
		Status:     "exported",
		ExportedAt: time.Now().Format(time.RFC3339),
	})
}
