package repository

import (
	"context"

	"github.com/DIBANGI/vasuki-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingRepository is the ledger store: exactly one breakdown row per item,
// written once inside the item-creation transaction. No update is exposed —
// corrections mean delete-and-reinsert of item and ledger row together,
// which lives outside this service.
type PricingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pricing) error
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*model.Pricing, error)
	FindBySKU(ctx context.Context, sku string) (*model.Pricing, error)
}

type pricingRepo struct{ db *gorm.DB }

func NewPricingRepository(db *gorm.DB) PricingRepository { return &pricingRepo{db: db} }

func (r *pricingRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pricing) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pricingRepo) FindByItemID(ctx context.Context, itemID uuid.UUID) (*model.Pricing, error) {
	var p model.Pricing
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pricingRepo) FindBySKU(ctx context.Context, sku string) (*model.Pricing, error) {
	var p model.Pricing
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
