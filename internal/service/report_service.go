package service

import (
	"context"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/model"
	"github.com/DIBANGI/vasuki-inventory/internal/pricing"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService derives the three read-only views over the catalog and the
// ledger. Grouping and averaging happen here rather than in SQL because the
// stored margin is a verbatim string: historical imports may carry values the
// database cannot parse, and those must degrade per-group, not fail the query.
type ReportService interface {
	Overview(ctx context.Context) ([]dto.OverviewRow, error)
	StockStatusSummary(ctx context.Context) ([]dto.StockStatusGroup, error)
	SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error)
}

type reportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) ReportService {
	return &reportService{reports: reports}
}

// Overview is a straight passthrough: one row per item with every dimension
// and ledger column, nulls preserved for incomplete rows.
func (s *reportService) Overview(ctx context.Context) ([]dto.OverviewRow, error) {
	return s.reports.Overview(ctx)
}

// StockStatusSummary groups items by (category, subcategory) and aggregates
// counts, valuation totals and average rates. Groups appear in the order the
// repository returns them (category, then subcategory, NULL first).
func (s *reportService) StockStatusSummary(ctx context.Context) ([]dto.StockStatusGroup, error) {
	rows, err := s.reports.StockStatusRows(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		group       dto.StockStatusGroup
		marginSum   decimal.Decimal
		marginCount int
		taxSum      decimal.Decimal
		taxCount    int
	}

	var order []string
	groups := make(map[string]*acc)

	for _, row := range rows {
		key := row.Category
		if row.Subcategory != nil {
			key += "\x00" + *row.Subcategory
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{group: dto.StockStatusGroup{
				Category:    row.Category,
				Subcategory: row.Subcategory,
			}}
			groups[key] = a
			order = append(order, key)
		}

		a.group.ItemCount++
		if row.Status == model.StatusSold {
			a.group.Sold++
		} else {
			a.group.InStock++
		}
		a.group.TotalFinalCost = a.group.TotalFinalCost.Add(row.FinalCost)
		a.group.TotalFinalSP = a.group.TotalFinalSP.Add(row.FinalSP)

		// Actual value: realized amount for sold items where recorded,
		// expected final SP otherwise.
		if row.Status == model.StatusSold && row.SaleAmount != nil {
			a.group.ActualValue = a.group.ActualValue.Add(*row.SaleAmount)
		} else {
			a.group.ActualValue = a.group.ActualValue.Add(row.FinalSP)
		}

		// Margins are re-parsed from the verbatim string; rows with
		// unparseable values are left out of the average.
		if frac, err := pricing.Percent(row.SPMargin).Fraction(); err == nil {
			a.marginSum = a.marginSum.Add(frac.Mul(decimal.NewFromInt(100)))
			a.marginCount++
		}
		a.taxSum = a.taxSum.Add(row.TaxPct)
		a.taxCount++
	}

	out := make([]dto.StockStatusGroup, 0, len(order))
	for _, key := range order {
		a := groups[key]
		if a.marginCount > 0 {
			a.group.AvgMarginPct = a.marginSum.Div(decimal.NewFromInt(int64(a.marginCount))).Round(2)
		}
		if a.taxCount > 0 {
			a.group.AvgTaxPct = a.taxSum.Div(decimal.NewFromInt(int64(a.taxCount))).Round(2)
		}
		a.group.TotalFinalCost = a.group.TotalFinalCost.Round(2)
		a.group.TotalFinalSP = a.group.TotalFinalSP.Round(2)
		a.group.ActualValue = a.group.ActualValue.Round(2)
		out = append(out, a.group)
	}
	return out, nil
}

// SalesReport lists sold items in [start, end] with realized and expected
// profit per sale, plus window totals.
func (s *reportService) SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error) {
	rows, err := s.reports.SoldItemsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
		Items: make([]dto.SalesReportEntry, 0, len(rows)),
	}

	for _, row := range rows {
		entry := dto.SalesReportEntry{
			SKU:            row.SKU,
			Category:       row.Category,
			Subcategory:    row.Subcategory,
			CustomerName:   row.CustomerName,
			SaleAmount:     row.SaleAmount,
			FinalCost:      row.FinalCost,
			FinalSP:        row.FinalSP,
			ExpectedProfit: row.FinalSP.Sub(row.FinalCost).Round(2),
		}
		if row.SoldOn != nil {
			entry.SoldOn = row.SoldOn.Format("2006-01-02")
		}
		if row.SaleAmount != nil {
			actual := row.SaleAmount.Sub(row.FinalCost).Round(2)
			entry.ActualProfit = &actual
			resp.TotalSales = resp.TotalSales.Add(*row.SaleAmount)
			resp.TotalActualProfit = resp.TotalActualProfit.Add(actual)
		}
		resp.TotalExpectedProfit = resp.TotalExpectedProfit.Add(entry.ExpectedProfit)
		resp.Items = append(resp.Items, entry)
	}

	resp.TotalSales = resp.TotalSales.Round(2)
	resp.TotalActualProfit = resp.TotalActualProfit.Round(2)
	resp.TotalExpectedProfit = resp.TotalExpectedProfit.Round(2)
	return resp, nil
}
