package models

import "painel-etl/internal/engine"

// ——— API response structures ———

type DashboardResponse struct {
	Dashboard   string      `json:"dashboard"`
	Table       engine.Page `json:"table"`
	Summary     any         `json:"summary"`
	GeneratedAt string      `json:"generated_at"`
}

type IngestResult struct {
	Records   int    `json:"records"`
	Fallbacks int    `json:"fallbacks"`
	Skipped   bool   `json:"skipped,omitempty"`
	Error     string `json:"error,omitempty"`
}

type IngestResponse struct {
	IngestID    string                  `json:"ingest_id"`
	Status      string                  `json:"status"`
	Results     map[string]IngestResult `json:"results"`
	ProcessedAt string                  `json:"processed_at"`
}

// QualityReport summarizes how defensively each dashboard's payload had
// to be normalized: a fallback row is one where every field extraction
// missed and only sentinel values remain.
type QualityReport struct {
	Dashboards map[string]DashboardQuality `json:"dashboards"`
	Timestamp  string                      `json:"timestamp"`
}

type DashboardQuality struct {
	Records       int      `json:"records"`
	FallbackRows  int      `json:"fallback_rows"`
	FallbackShare *float64 `json:"fallback_share"`
}

// ——— Dashboard summaries ———

type LeadsSummary struct {
	Total      int                 `json:"total"`
	ByChannel  engine.Distribution `json:"by_channel"`
	ByMoney    engine.Distribution `json:"by_money"`
	ByTeam     engine.Distribution `json:"by_team"`
	TopSellers engine.Distribution `json:"top_sellers"`
	LeadsMoM   *float64            `json:"leads_mom"`
}

type SalesSummary struct {
	Count             int                 `json:"count"`
	Revenue           float64             `json:"revenue"`
	AvgTicket         *float64            `json:"avg_ticket"`
	AvgDaysToPurchase *float64            `json:"avg_days_to_purchase"`
	RevenueMoM        *float64            `json:"revenue_mom"`
	ByPlan            engine.Distribution `json:"by_plan"`
	BySeller          engine.Distribution `json:"by_seller"`
}

type MRRSummary struct {
	Total          float64             `json:"total"`
	Customers      int                 `json:"customers"`
	AvgPerCustomer float64             `json:"avg_per_customer"`
	MRRMoM         *float64            `json:"mrr_mom"`
	ByPlan         engine.Distribution `json:"by_plan"`
}

type StageCount struct {
	Stage          string   `json:"stage"`
	Name           string   `json:"name"`
	Count          int      `json:"count"`
	StepConversion *float64 `json:"step_conversion"`
}

type FunnelSummary struct {
	Total    int                 `json:"total"`
	Stages   []StageCount        `json:"stages"`
	ByOrigin engine.Distribution `json:"by_origin"`
}

type LandingSummary struct {
	Visits         float64             `json:"visits"`
	Conversions    float64             `json:"conversions"`
	ConversionRate *float64            `json:"conversion_rate"`
	ByPage         engine.Distribution `json:"by_page"`
}

type CampaignsSummary struct {
	Investment  float64             `json:"investment"`
	Clicks      float64             `json:"clicks"`
	Leads       float64             `json:"leads"`
	CostPerLead *float64            `json:"cost_per_lead"`
	CPC         *float64            `json:"cpc"`
	ByChannel   engine.Distribution `json:"by_channel"`
}

// ——— Export structures ———

// ExportSnapshot is one day's KPI roll-up pushed to the sink webhook.
type ExportSnapshot struct {
	Date      string           `json:"date"`
	Leads     LeadsSummary     `json:"leads"`
	Sales     SalesSummary     `json:"sales"`
	MRR       MRRSummary       `json:"mrr"`
	Campaigns CampaignsSummary `json:"campaigns"`
}

type ExportResponse struct {
	Status     string `json:"status"`
	ExportedAt string `json:"exported_at"`
}
