package repository

import (
	"context"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemRepository defines the data access contract for inventory items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ItemRepository interface {
	// Create inserts inside the caller's transaction.
	Create(ctx context.Context, tx *gorm.DB, item *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindBySKU(ctx context.Context, sku string) (*model.Item, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error)

	// MarkSold flips status to Sold and records the sale facts, guarded by a
	// status predicate so the transition check and the update are one
	// statement. Returns the number of rows changed (0 = item missing or not
	// In Stock — the service disambiguates).
	MarkSold(ctx context.Context, id uuid.UUID, customer string, amount decimal.Decimal, soldOn time.Time) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) DB() *gorm.DB { return r.db }

func (r *itemRepo) Create(ctx context.Context, tx *gorm.DB, item *model.Item) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Stone").Preload("Color").Preload("Finish").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindBySKU(ctx context.Context, sku string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Stone").Preload("Color").Preload("Finish").
		Where("sku = ?", sku).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) SKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

func (r *itemRepo) List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Item{})

	if filter.SKU != "" {
		q = q.Where("sku = ?", filter.SKU)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category_id IN (?)",
			r.db.Model(&model.Category{}).Select("id").Where("name = ?", filter.Category))
	}
	if filter.Stone != "" {
		q = q.Where("stone_id IN (?)",
			r.db.Model(&model.Stone{}).Select("id").Where("name = ?", filter.Stone))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Preload("Stone").Preload("Color").Preload("Finish").
		Order("sku ASC").Limit(filter.Limit).Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *itemRepo) MarkSold(ctx context.Context, id uuid.UUID, customer string, amount decimal.Decimal, soldOn time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ? AND status = ?", id, model.StatusInStock).
		Updates(map[string]interface{}{
			"status":        model.StatusSold,
			"customer_name": customer,
			"sale_amount":   amount,
			"sold_on":       soldOn,
		})
	return res.RowsAffected, res.Error
}
