package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PricingInputs are the raw cost fields supplied at entry time. Absent
// monetary fields are treated as zero; sp_margin keeps its string form.
type PricingInputs struct {
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ThreadWork    decimal.Decimal `json:"thread_work"`
	GSTOnCost     decimal.Decimal `json:"gst_on_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	SPMargin      string          `json:"sp_margin"`
	TaxPct        decimal.Decimal `json:"tax_pct"`
}

type CreateItemRequest struct {
	SerialLabel *string `json:"serial_label"`
	SKU         string  `json:"sku"      validate:"required,min=1,max=64"`
	Category    string  `json:"category" validate:"required"`
	Subcategory *string `json:"subcategory"`
	// Stone/color/finish are free text; blank means no reference is set.
	Stone  string `json:"stone"`
	Color  string `json:"color"`
	Finish string `json:"finish"`
	// Measurements are recorded as given; the engine does not police ranges.
	Weight          *float64      `json:"weight"`
	Length          *float64      `json:"length"`
	Width           *float64      `json:"width"`
	AcquisitionYear *int          `json:"acquisition_year"`
	Pricing         PricingInputs `json:"pricing"`
}

type MarkSoldRequest struct {
	CustomerName string          `json:"customer_name" validate:"required"`
	SaleAmount   decimal.Decimal `json:"sale_amount"   validate:"required"`
	SoldOn       string          `json:"sold_on"       validate:"required,datetime=2006-01-02"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ItemFilter struct {
	SKU      string `form:"sku"`
	Status   string `form:"status"`
	Category string `form:"category"`
	Stone    string `form:"stone"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BreakdownResponse struct {
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

type ItemResponse struct {
	ID              string             `json:"id"`
	SerialLabel     *string            `json:"serial_label"`
	SKU             string             `json:"sku"`
	Category        string             `json:"category"`
	Subcategory     *string            `json:"subcategory"`
	Stone           *string            `json:"stone"`
	Color           *string            `json:"color"`
	Finish          *string            `json:"finish"`
	Weight          *float64           `json:"weight"`
	Length          *float64           `json:"length"`
	Width           *float64           `json:"width"`
	AcquisitionYear *int               `json:"acquisition_year"`
	Status          string             `json:"status"`
	CustomerName    *string            `json:"customer_name"`
	SaleAmount      *decimal.Decimal   `json:"sale_amount"`
	SoldOn          *string            `json:"sold_on"`
	Breakdown       *BreakdownResponse `json:"breakdown"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// PriceCheckResponse is returned by the public price lookup endpoint.
type PriceCheckResponse struct {
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Subcategory *string         `json:"subcategory"`
	FinalSP     decimal.Decimal `json:"final_sp"`
	Status      string          `json:"status"`
}
