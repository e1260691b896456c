package model

import (
	"time"

	"github.com/google/uuid"
)

// The four classification dimensions are independent reference tables.
// Rows are append-only: once an item references one, it is never renamed,
// merged, or deleted. Matching is case-sensitive and exact.

// Category classifies an item by category plus optional subcategory.
// Uniqueness is on (name, subcategory); a NULL subcategory is a canonical
// value of its own, equal only to another NULL. GORM's uniqueIndex cannot
// express NULLS NOT DISTINCT, so the index is created by a schema patch
// (see infra.NewDatabase).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null;index"`
	Subcategory *string
	CreatedAt   time.Time
}

func (Category) TableName() string { return "categories" }

// Stone is a canonical stone name (e.g. "Ruby").
type Stone struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// Color is a canonical color name.
type Color struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// Finish is a canonical finish name (e.g. "Antique Gold").
type Finish struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Finish) TableName() string { return "finishes" }
