package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Raw joined rows (scanned by the report repository) ──────────────────────

// OverviewRow is one item LEFT-joined against all four dimension tables and
// the pricing ledger. Every joined column is nullable so items missing a
// dimension or a breakdown still appear instead of being dropped.
type OverviewRow struct {
	SKU             string           `json:"sku"`
	SerialLabel     *string          `json:"serial_label"`
	Category        *string          `json:"category"`
	Subcategory     *string          `json:"subcategory"`
	Stone           *string          `json:"stone"`
	Color           *string          `json:"color"`
	Finish          *string          `json:"finish"`
	Weight          *float64         `json:"weight"`
	Length          *float64         `json:"length"`
	Width           *float64         `json:"width"`
	AcquisitionYear *int             `json:"acquisition_year"`
	Status          string           `json:"status"`
	CustomerName    *string          `json:"customer_name"`
	SaleAmount      *decimal.Decimal `json:"sale_amount"`
	SoldOn          *time.Time       `json:"sold_on"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	ThreadWork      *decimal.Decimal `json:"thread_work"`
	GSTOnCost       *decimal.Decimal `json:"gst_on_cost"`
	PackagingCost   *decimal.Decimal `json:"packaging_cost"`
	SPMargin        *string          `json:"sp_margin"`
	TaxPct          *decimal.Decimal `json:"tax_pct"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	FinalCost       *decimal.Decimal `json:"final_cost"`
	SellingPrice    *decimal.Decimal `json:"selling_price"`
	FinalSP         *decimal.Decimal `json:"final_sp"`
}

// StockStatusRow is one item INNER-joined to its ledger row; items without a
// breakdown never reach the stock-status report.
type StockStatusRow struct {
	Category    string
	Subcategory *string
	Status      string
	SaleAmount  *decimal.Decimal
	FinalCost   decimal.Decimal
	FinalSP     decimal.Decimal
	SPMargin    string
	TaxPct      decimal.Decimal
}

// SoldItemRow is one sold item within a sales-report date window. Sale facts
// are nullable: imported historical rows can be Sold without a recorded
// amount or customer.
type SoldItemRow struct {
	SKU          string
	Category     string
	Subcategory  *string
	CustomerName *string
	SaleAmount   *decimal.Decimal
	SoldOn       *time.Time
	FinalCost    decimal.Decimal
	FinalSP      decimal.Decimal
}

// ─── Aggregated responses ────────────────────────────────────────────────────

// StockStatusGroup is the per-(category, subcategory) aggregate.
// ActualValue counts the sale amount for sold items and the expected final
// SP for everything still in stock.
type StockStatusGroup struct {
	Category       string          `json:"category"`
	Subcategory    *string         `json:"subcategory"`
	ItemCount      int             `json:"item_count"`
	InStock        int             `json:"in_stock"`
	Sold           int             `json:"sold"`
	TotalFinalCost decimal.Decimal `json:"total_final_cost"`
	TotalFinalSP   decimal.Decimal `json:"total_final_sp"`
	ActualValue    decimal.Decimal `json:"actual_value"`
	AvgMarginPct   decimal.Decimal `json:"avg_margin_pct"`
	AvgTaxPct      decimal.Decimal `json:"avg_tax_pct"`
}

// SalesReportEntry carries both profit views per sale: actual (realized
// amount minus final cost, absent when no amount was recorded) and expected
// (final SP minus final cost).
type SalesReportEntry struct {
	SKU            string           `json:"sku"`
	Category       string           `json:"category"`
	Subcategory    *string          `json:"subcategory"`
	CustomerName   *string          `json:"customer_name"`
	SoldOn         string           `json:"sold_on"`
	SaleAmount     *decimal.Decimal `json:"sale_amount"`
	FinalCost      decimal.Decimal  `json:"final_cost"`
	FinalSP        decimal.Decimal  `json:"final_sp"`
	ActualProfit   *decimal.Decimal `json:"actual_profit"`
	ExpectedProfit decimal.Decimal  `json:"expected_profit"`
}

type SalesReportResponse struct {
	Start               string             `json:"start"`
	End                 string             `json:"end"`
	Items               []SalesReportEntry `json:"items"`
	TotalSales          decimal.Decimal    `json:"total_sales"`
	TotalActualProfit   decimal.Decimal    `json:"total_actual_profit"`
	TotalExpectedProfit decimal.Decimal    `json:"total_expected_profit"`
}
