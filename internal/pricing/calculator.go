package pricing

import (
	"github.com/shopspring/decimal"
)

// Inputs are the raw cost fields for one item. Monetary fields default to
// zero when absent. GSTOnCost is an absolute amount, not a rate.
type Inputs struct {
	UnitPrice     decimal.Decimal
	ThreadWork    decimal.Decimal
	GSTOnCost     decimal.Decimal
	PackagingCost decimal.Decimal
	SPMargin      Percent
	TaxPct        decimal.Decimal
}

// Breakdown is the derived price chain, each stage rounded to 2 decimals.
type Breakdown struct {
	CostPrice    decimal.Decimal
	FinalCost    decimal.Decimal
	SellingPrice decimal.Decimal
	FinalSP      decimal.Decimal
}

var one = decimal.NewFromInt(1)

// Compute derives the breakdown:
//
//	costPrice    = unitPrice
//	finalCost    = costPrice + threadWork + gst + packaging
//	sellingPrice = finalCost * (1 + margin)
//	finalSP      = sellingPrice * (1 + taxPct/100)
//
// Each stage is rounded to 2 decimals before feeding the next, matching a
// ledger that stores every intermediate as a decimal column: the value shown
// at each stage is exactly the value computed downstream from it.
func Compute(in Inputs) (Breakdown, error) {
	margin, err := in.SPMargin.Fraction()
	if err != nil {
		return Breakdown{}, err
	}

	costPrice := in.UnitPrice.Round(2)
	finalCost := costPrice.
		Add(in.ThreadWork).
		Add(in.GSTOnCost).
		Add(in.PackagingCost).
		Round(2)
	sellingPrice := finalCost.Mul(one.Add(margin)).Round(2)
	finalSP := sellingPrice.Mul(one.Add(in.TaxPct.Div(decimal.NewFromInt(100)))).Round(2)

	return Breakdown{
		CostPrice:    costPrice,
		FinalCost:    finalCost,
		SellingPrice: sellingPrice,
		FinalSP:      finalSP,
	}, nil
}

// FromBreakdown accepts an already-computed chain (bulk imports of historical
// data carry the full breakdown) and stores it verbatim — no recomputation.
// For matching raw inputs it agrees exactly with Compute.
func FromBreakdown(costPrice, finalCost, sellingPrice, finalSP decimal.Decimal) Breakdown {
	return Breakdown{
		CostPrice:    costPrice.Round(2),
		FinalCost:    finalCost.Round(2),
		SellingPrice: sellingPrice.Round(2),
		FinalSP:      finalSP.Round(2),
	}
}
