// Package metrics assembles the per-dashboard KPI summaries on top of
// the engine primitives. Everything operates on the already-filtered
// row set; an empty set produces well-formed empty summaries.
package metrics

import (
	"sort"

	"painel-etl/internal/engine"
	"painel-etl/internal/models"
)

const (
	chartTopN     = 5
	chartMinShare = 3.0 // percent of total below which a bucket folds into Outros
)

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) LeadsSummary(rows []engine.Row) models.LeadsSummary {
	return models.LeadsSummary{
		Total:      len(rows),
		ByChannel:  topN(engine.CountBy(rows, "channel", nil)),
		ByMoney:    topN(engine.CountBy(rows, "money", moneyLabel)),
		ByTeam:     topN(engine.CountBy(rows, "team", nil)),
		TopSellers: topN(engine.CountBy(rows, "seller", nil)),
		LeadsMoM:   engine.MonthOverMonth(monthlyCounts(rows, "entry_date")),
	}
}

func (c *Calculator) SalesSummary(rows []engine.Row) models.SalesSummary {
	var revenue float64
	for _, row := range rows {
		revenue += engine.ParseDecimal(row["amount"])
	}
	return models.SalesSummary{
		Count:             len(rows),
		Revenue:           revenue,
		AvgTicket:         engine.CostPerUnit(revenue, float64(len(rows))),
		AvgDaysToPurchase: engine.WeightedAverage(rows, "days_to_purchase", "quantity"),
		RevenueMoM:        engine.MonthOverMonth(monthlySums(rows, "sale_date", "amount")),
		ByPlan:            topN(engine.SumBy(rows, "plan", "amount")),
		BySeller:          topN(engine.SumBy(rows, "seller", "amount")),
	}
}

func (c *Calculator) MRRSummary(rows []engine.Row) models.MRRSummary {
	var total float64
	customers := make(map[string]bool)
	for _, row := range rows {
		total += engine.ParseDecimal(row["amount"])
		if label := engine.MakeLabel(row["customer"]); label.Kind == engine.LabelValue {
			customers[label.Text] = true
		}
	}
	return models.MRRSummary{
		Total:          total,
		Customers:      len(customers),
		AvgPerCustomer: engine.AveragePerCustomer(total, len(customers)),
		MRRMoM:         engine.MonthOverMonth(monthlySums(rows, "month", "amount")),
		ByPlan:         topN(engine.SumBy(rows, "plan", "amount")),
	}
}

func (c *Calculator) FunnelSummary(rows []engine.Row) models.FunnelSummary {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row["stage"]]++
	}

	stages := make([]models.StageCount, 0, len(engine.StageOrder))
	previous := -1
	for _, stage := range engine.StageOrder {
		count := counts[stage]
		var conversion *float64
		if previous >= 0 {
			conversion = engine.Percentage(float64(count), float64(previous))
		}
		stages = append(stages, models.StageCount{
			Stage:          stage,
			Name:           engine.StageNames[stage],
			Count:          count,
			StepConversion: conversion,
		})
		previous = count
	}

	return models.FunnelSummary{
		Total:    len(rows),
		Stages:   stages,
		ByOrigin: topN(engine.CountBy(rows, "origin", nil)),
	}
}

func (c *Calculator) LandingSummary(rows []engine.Row) models.LandingSummary {
	var visits, conversions float64
	for _, row := range rows {
		visits += engine.ParseDecimal(row["visits"])
		conversions += engine.ParseDecimal(row["conversions"])
	}
	return models.LandingSummary{
		Visits:         visits,
		Conversions:    conversions,
		ConversionRate: engine.Percentage(conversions, visits),
		ByPage:         topN(engine.SumBy(rows, "page", "conversions")),
	}
}

func (c *Calculator) CampaignsSummary(rows []engine.Row) models.CampaignsSummary {
	var investment, clicks, leads float64
	for _, row := range rows {
		investment += engine.ParseDecimal(row["investment"])
		clicks += engine.ParseDecimal(row["clicks"])
		leads += engine.ParseDecimal(row["leads"])
	}
	return models.CampaignsSummary{
		Investment:  investment,
		Clicks:      clicks,
		Leads:       leads,
		CostPerLead: engine.CostPerUnit(investment, leads),
		CPC:         engine.CostPerUnit(investment, clicks),
		ByChannel:   topN(engine.SumBy(rows, "channel", "investment")),
	}
}

// Summary dispatches to the dashboard's summary builder.
func (c *Calculator) Summary(dashboard string, rows []engine.Row) any {
	switch dashboard {
	case "leads":
		return c.LeadsSummary(rows)
	case "sales":
		return c.SalesSummary(rows)
	case "mrr":
		return c.MRRSummary(rows)
	case "funnel":
		return c.FunnelSummary(rows)
	case "landing":
		return c.LandingSummary(rows)
	case "campaigns":
		return c.CampaignsSummary(rows)
	}
	return nil
}

func topN(buckets []engine.Bucket) engine.Distribution {
	return engine.TopNWithOthers(buckets, chartTopN, chartMinShare)
}

func moneyLabel(raw string) engine.Label {
	switch raw {
	case engine.MoneyYes:
		return engine.MakeLabel("Sim")
	case engine.MoneyNo:
		return engine.MakeLabel("Não")
	default:
		return engine.Label{Kind: engine.LabelNotInformed}
	}
}

// monthlyCounts and monthlySums build the chronological period series
// feeding MonthOverMonth. Rows without a parseable date are left out of
// the series rather than lumped into a fake period.
func monthlyCounts(rows []engine.Row, dateField string) []float64 {
	totals := make(map[string]float64)
	for _, row := range rows {
		if key := engine.MonthKey(row[dateField]); key != "" {
			totals[key]++
		}
	}
	return chronological(totals)
}

func monthlySums(rows []engine.Row, dateField, valueField string) []float64 {
	totals := make(map[string]float64)
	for _, row := range rows {
		if key := engine.MonthKey(row[dateField]); key != "" {
			totals[key] += engine.ParseDecimal(row[valueField])
		}
	}
	return chronological(totals)
}

func chronological(totals map[string]float64) []float64 {
	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make([]float64, 0, len(keys))
	for _, key := range keys {
		series = append(series, totals[key])
	}
	return series
}
