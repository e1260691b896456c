package dto

import "github.com/shopspring/decimal"

// ImportBreakdown carries an already-computed price chain from a historical
// source. The derived fields are stored verbatim — no recomputation.
type ImportBreakdown struct {
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ThreadWork    decimal.Decimal `json:"thread_work"`
	GSTOnCost     decimal.Decimal `json:"gst_on_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	SPMargin      string          `json:"sp_margin"`
	TaxPct        decimal.Decimal `json:"tax_pct"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	FinalCost     decimal.Decimal `json:"final_cost"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	FinalSP       decimal.Decimal `json:"final_sp"`
}

// ImportItemRow is one historical inventory row. Unlike CreateItemRequest it
// may arrive already sold, carrying the sale facts. Field checks happen per
// row in the service so one bad row fails alone instead of the whole batch.
type ImportItemRow struct {
	SerialLabel     *string          `json:"serial_label"`
	SKU             string           `json:"sku"`
	Category        string           `json:"category"`
	Subcategory     *string          `json:"subcategory"`
	Stone           string           `json:"stone"`
	Color           string           `json:"color"`
	Finish          string           `json:"finish"`
	Weight          *float64         `json:"weight"`
	Length          *float64         `json:"length"`
	Width           *float64         `json:"width"`
	AcquisitionYear *int             `json:"acquisition_year"`
	Status          string           `json:"status"`
	CustomerName    *string          `json:"customer_name"`
	SaleAmount      *decimal.Decimal `json:"sale_amount"`
	SoldOn          *string          `json:"sold_on"` // 2006-01-02
	Breakdown       ImportBreakdown  `json:"breakdown"`
}

type ImportRequest struct {
	Items []ImportItemRow `json:"items" validate:"required,min=1"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	SKU    string `json:"sku"`
	Detail string `json:"detail"`
}

type ImportResponse struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
