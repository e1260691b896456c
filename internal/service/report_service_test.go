package service

import (
	"context"
	"testing"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/model"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReportRepo returns canned joined rows.
type stubReportRepo struct {
	overview    []dto.OverviewRow
	stockStatus []dto.StockStatusRow
	sold        []dto.SoldItemRow
}

func (r *stubReportRepo) Overview(_ context.Context) ([]dto.OverviewRow, error) {
	return r.overview, nil
}
func (r *stubReportRepo) StockStatusRows(_ context.Context) ([]dto.StockStatusRow, error) {
	return r.stockStatus, nil
}
func (r *stubReportRepo) SoldItemsBetween(_ context.Context, _, _ time.Time) ([]dto.SoldItemRow, error) {
	return r.sold, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func strPtr(s string) *string { return &s }

// ── StockStatusSummary ────────────────────────────────────────────────────────

func TestStockStatusSummary_GroupsAndAggregates(t *testing.T) {
	svc := NewReportService(&stubReportRepo{stockStatus: []dto.StockStatusRow{
		// Necklace / Pearl: one in stock, one sold with amount.
		{Category: "Necklace", Subcategory: strPtr("Pearl"), Status: model.StatusInStock,
			FinalCost: dec("580"), FinalSP: dec("852.60"), SPMargin: "40%", TaxPct: dec("5")},
		{Category: "Necklace", Subcategory: strPtr("Pearl"), Status: model.StatusSold, SaleAmount: decPtr("900"),
			FinalCost: dec("580"), FinalSP: dec("852.60"), SPMargin: "30%", TaxPct: dec("5")},
		// Bangle (no subcategory): sold WITHOUT a recorded amount.
		{Category: "Bangle", Status: model.StatusSold,
			FinalCost: dec("100"), FinalSP: dec("150"), SPMargin: "50%", TaxPct: dec("10")},
	}})

	groups, err := svc.StockStatusSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	necklace := groups[0]
	assert.Equal(t, "Necklace", necklace.Category)
	require.NotNil(t, necklace.Subcategory)
	assert.Equal(t, "Pearl", *necklace.Subcategory)
	assert.Equal(t, 2, necklace.ItemCount)
	assert.Equal(t, 1, necklace.InStock)
	assert.Equal(t, 1, necklace.Sold)
	assert.Equal(t, "1160.00", necklace.TotalFinalCost.StringFixed(2))
	assert.Equal(t, "1705.20", necklace.TotalFinalSP.StringFixed(2))
	// Actual value: 852.60 expected for the in-stock item + 900 realized.
	assert.Equal(t, "1752.60", necklace.ActualValue.StringFixed(2))
	assert.Equal(t, "35.00", necklace.AvgMarginPct.StringFixed(2))
	assert.Equal(t, "5.00", necklace.AvgTaxPct.StringFixed(2))

	bangle := groups[1]
	assert.Equal(t, "Bangle", bangle.Category)
	assert.Nil(t, bangle.Subcategory)
	// Sold without a recorded amount falls back to final SP.
	assert.Equal(t, "150.00", bangle.ActualValue.StringFixed(2))
}

func TestStockStatusSummary_SkipsMalformedMargins(t *testing.T) {
	svc := NewReportService(&stubReportRepo{stockStatus: []dto.StockStatusRow{
		{Category: "Earring", Status: model.StatusInStock,
			FinalCost: dec("100"), FinalSP: dec("140"), SPMargin: "40%", TaxPct: dec("0")},
		{Category: "Earring", Status: model.StatusInStock,
			FinalCost: dec("100"), FinalSP: dec("120"), SPMargin: "n/a", TaxPct: dec("0")},
	}})

	groups, err := svc.StockStatusSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	// Only the parseable margin participates in the average.
	assert.Equal(t, "40.00", groups[0].AvgMarginPct.StringFixed(2))
	assert.Equal(t, 2, groups[0].ItemCount)
}

// ── SalesReport ───────────────────────────────────────────────────────────────

func TestSalesReport_ProfitsAndTotals(t *testing.T) {
	soldOn := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	svc := NewReportService(&stubReportRepo{sold: []dto.SoldItemRow{
		{SKU: "VSK-001", Category: "Necklace", CustomerName: strPtr("Anita"),
			SaleAmount: decPtr("900"), SoldOn: &soldOn,
			FinalCost: dec("580"), FinalSP: dec("812")},
		// Historical sale without an amount: expected profit only.
		{SKU: "VSK-002", Category: "Bangle", SoldOn: &soldOn,
			FinalCost: dec("100"), FinalSP: dec("150")},
	}})

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	resp, err := svc.SalesReport(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", resp.Start)
	assert.Equal(t, "2026-08-31", resp.End)
	require.Len(t, resp.Items, 2)

	first := resp.Items[0]
	require.NotNil(t, first.ActualProfit)
	assert.Equal(t, "320.00", first.ActualProfit.StringFixed(2))
	assert.Equal(t, "232.00", first.ExpectedProfit.StringFixed(2))
	assert.Equal(t, "2026-08-20", first.SoldOn)

	second := resp.Items[1]
	assert.Nil(t, second.ActualProfit)
	assert.Equal(t, "50.00", second.ExpectedProfit.StringFixed(2))

	assert.Equal(t, "900.00", resp.TotalSales.StringFixed(2))
	assert.Equal(t, "320.00", resp.TotalActualProfit.StringFixed(2))
	assert.Equal(t, "282.00", resp.TotalExpectedProfit.StringFixed(2))
}

func TestSalesReport_EmptyWindow(t *testing.T) {
	svc := NewReportService(&stubReportRepo{})

	resp, err := svc.SalesReport(context.Background(),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0.00", resp.TotalSales.StringFixed(2))
}

// ── Overview ──────────────────────────────────────────────────────────────────

func TestOverview_Passthrough(t *testing.T) {
	rows := []dto.OverviewRow{
		{SKU: "VSK-001", Status: model.StatusInStock},
		// Imported row missing everything but SKU and status.
		{SKU: "VSK-002", Status: model.StatusSold},
	}
	svc := NewReportService(&stubReportRepo{overview: rows})

	got, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Nil(t, got[0].Category)
	assert.Nil(t, got[1].FinalSP)
}
