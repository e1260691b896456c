package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing is the ledger row holding the full cost/price breakdown for one
// item, exactly one per item. ItemID is the primary link; SKU is stored
// redundantly (the original dataset joins pricing by SKU) and must always
// agree with the item's SKU.
//
// Raw inputs come first, derived values after. GSTOnCost is an absolute
// currency amount, not a rate — the column name in the source data is
// misleading but its usage is unambiguous. SPMargin keeps the percent in its
// original string form ("40%"); parsing lives in the pricing package.
// Rows are written once at item creation and never updated by this service.
type Pricing struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SKU    string    `gorm:"column:sku;not null;index"`

	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ThreadWork    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GSTOnCost     decimal.Decimal `gorm:"column:gst_on_cost;type:decimal(12,2);not null;default:0"`
	PackagingCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SPMargin      string          `gorm:"column:sp_margin;not null;default:''"`
	TaxPct        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalSP      decimal.Decimal `gorm:"column:final_sp;type:decimal(12,2);not null"`

	CreatedAt time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}

func (Pricing) TableName() string { return "pricing" }
