package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item lifecycle states. Status is stored as free text to accommodate
// historical imports, but the engine only special-cases these two.
const (
	StatusInStock = "In Stock"
	StatusSold    = "Sold"
)

// Item is one physical inventory piece. The category reference is mandatory;
// stone, color, and finish are optional. Sale fields (CustomerName,
// SaleAmount, SoldOn) are populated only once the item is sold.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SerialLabel *string
	SKU         string     `gorm:"column:sku;uniqueIndex;not null"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	StoneID     *uuid.UUID `gorm:"type:uuid;index"`
	ColorID     *uuid.UUID `gorm:"type:uuid;index"`
	FinishID    *uuid.UUID `gorm:"type:uuid;index"`
	Weight      *float64
	Length      *float64
	Width       *float64
	// Year the piece was acquired (original "Year of Purchase")
	AcquisitionYear *int
	Status          string `gorm:"not null;default:'In Stock';index"`
	CustomerName    *string
	SaleAmount      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SoldOn          *time.Time       `gorm:"type:date"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Stone    *Stone    `gorm:"foreignKey:StoneID"`
	Color    *Color    `gorm:"foreignKey:ColorID"`
	Finish   *Finish   `gorm:"foreignKey:FinishID"`
}
