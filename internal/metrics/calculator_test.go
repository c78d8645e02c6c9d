package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"painel-etl/internal/engine"
)

func TestLeadsSummary(t *testing.T) {
	rows := []engine.Row{
		{"seller": "Ana", "channel": "Google", "money": "yes", "team": "1-2", "entry_date": "2024-01-10"},
		{"seller": "Ana", "channel": "Google", "money": "no", "team": "3-5", "entry_date": "2024-01-15"},
		{"seller": "Bia", "channel": "Meta", "money": "unknown", "team": "1-2", "entry_date": "2024-02-01"},
		{"seller": "Bia", "channel": "Meta", "money": "yes", "team": "1-2", "entry_date": "2024-02-20"},
	}
	got := NewCalculator().LeadsSummary(rows)

	assert.Equal(t, 4, got.Total)
	assert.Equal(t, []string{"Google", "Meta"}, got.ByChannel.Labels)
	assert.Contains(t, got.ByMoney.Labels, "Sim")
	assert.Contains(t, got.ByMoney.Labels, "Não informado")
	require.NotNil(t, got.LeadsMoM)
	assert.Equal(t, 0.0, *got.LeadsMoM) // 2 leads in each month
}

func TestLeadsSummaryEmptyRows(t *testing.T) {
	got := NewCalculator().LeadsSummary(nil)
	assert.Equal(t, 0, got.Total)
	assert.Empty(t, got.ByChannel.Labels)
	assert.Nil(t, got.LeadsMoM)
}

func TestSalesSummary(t *testing.T) {
	rows := []engine.Row{
		{"customer": "Acme", "seller": "Ana", "plan": "Pro", "amount": "1000", "days_to_purchase": "10", "quantity": "2", "sale_date": "2024-01-05"},
		{"customer": "Beta", "seller": "Bia", "plan": "Basic", "amount": "500", "days_to_purchase": "40", "quantity": "1", "sale_date": "2024-02-07"},
	}
	got := NewCalculator().SalesSummary(rows)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 1500.0, got.Revenue)
	require.NotNil(t, got.AvgTicket)
	assert.Equal(t, 750.0, *got.AvgTicket)
	require.NotNil(t, got.AvgDaysToPurchase)
	assert.InDelta(t, 20.0, *got.AvgDaysToPurchase, 0.0001)
	require.NotNil(t, got.RevenueMoM)
	assert.Equal(t, -0.5, *got.RevenueMoM)
	assert.Equal(t, "Pro", got.ByPlan.Labels[0])
}

func TestSalesSummarySingleMonthHasNoMoM(t *testing.T) {
	rows := []engine.Row{
		{"amount": "100", "sale_date": "2024-01-05", "quantity": "1", "days_to_purchase": "3"},
		{"amount": "200", "sale_date": "2024-01-20", "quantity": "1", "days_to_purchase": "5"},
	}
	got := NewCalculator().SalesSummary(rows)
	assert.Nil(t, got.RevenueMoM)
}

func TestMRRSummary(t *testing.T) {
	rows := []engine.Row{
		{"customer": "Acme", "amount": "300", "plan": "Pro", "month": "2024-01-01"},
		{"customer": "Beta", "amount": "200", "plan": "Basic", "month": "2024-01-01"},
		{"customer": "Acme", "amount": "350", "plan": "Pro", "month": "2024-02-01"},
	}
	got := NewCalculator().MRRSummary(rows)

	assert.Equal(t, 850.0, got.Total)
	assert.Equal(t, 2, got.Customers)
	assert.Equal(t, 425.0, got.AvgPerCustomer)
	require.NotNil(t, got.MRRMoM)
	assert.Equal(t, -0.3, *got.MRRMoM) // 500 → 350
}

func TestMRRSummaryNoCustomersAverageIsZero(t *testing.T) {
	got := NewCalculator().MRRSummary(nil)
	assert.Equal(t, 0.0, got.AvgPerCustomer)
	assert.Nil(t, got.MRRMoM)
}

func TestFunnelSummaryOrderedStagesAndConversions(t *testing.T) {
	rows := []engine.Row{
		{"stage": engine.StageLead},
		{"stage": engine.StageLead},
		{"stage": engine.StageLead},
		{"stage": engine.StageLead},
		{"stage": engine.StagePresentation},
		{"stage": engine.StagePresentation},
		{"stage": engine.StageSignature},
	}
	got := NewCalculator().FunnelSummary(rows)

	require.Len(t, got.Stages, len(engine.StageOrder))
	assert.Equal(t, engine.StageLead, got.Stages[0].Stage)
	assert.Equal(t, 4, got.Stages[0].Count)
	assert.Nil(t, got.Stages[0].StepConversion)

	// first_interaction: 0 of 4
	require.NotNil(t, got.Stages[1].StepConversion)
	assert.Equal(t, 0.0, *got.Stages[1].StepConversion)

	// presentation follows a zero-count stage: conversion undefined.
	assert.Equal(t, 2, got.Stages[2].Count)
	assert.Nil(t, got.Stages[2].StepConversion)
}

func TestLandingSummary(t *testing.T) {
	rows := []engine.Row{
		{"page": "/precos", "visits": "400", "conversions": "20"},
		{"page": "/home", "visits": "600", "conversions": "5"},
	}
	got := NewCalculator().LandingSummary(rows)

	assert.Equal(t, 1000.0, got.Visits)
	assert.Equal(t, 25.0, got.Conversions)
	require.NotNil(t, got.ConversionRate)
	assert.Equal(t, 2.5, *got.ConversionRate)
	assert.Equal(t, "/precos", got.ByPage.Labels[0])
}

func TestLandingSummaryNoVisitsRateIsNil(t *testing.T) {
	got := NewCalculator().LandingSummary(nil)
	assert.Nil(t, got.ConversionRate)
}

func TestCampaignsSummary(t *testing.T) {
	rows := []engine.Row{
		{"channel": "Google", "investment": "1.000,00", "clicks": "500", "leads": "40"},
		{"channel": "Meta", "investment": "500", "clicks": "250", "leads": "10"},
	}
	got := NewCalculator().CampaignsSummary(rows)

	assert.Equal(t, 1500.0, got.Investment)
	require.NotNil(t, got.CostPerLead)
	assert.Equal(t, 30.0, *got.CostPerLead)
	require.NotNil(t, got.CPC)
	assert.Equal(t, 2.0, *got.CPC)
	assert.Equal(t, []string{"Google", "Meta"}, got.ByChannel.Labels)
}

func TestCampaignsSummaryZeroLeadsCostIsNil(t *testing.T) {
	rows := []engine.Row{{"channel": "Google", "investment": "100", "clicks": "0", "leads": "0"}}
	got := NewCalculator().CampaignsSummary(rows)
	assert.Nil(t, got.CostPerLead)
	assert.Nil(t, got.CPC)
}

func TestSummaryDispatch(t *testing.T) {
	calc := NewCalculator()
	for _, name := range []string{"leads", "sales", "mrr", "funnel", "landing", "campaigns"} {
		assert.NotNil(t, calc.Summary(name, nil), name)
	}
	assert.Nil(t, calc.Summary("outra", nil))
}
