package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/DIBANGI/vasuki-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DimensionRepository canonicalizes free-text classification values into
// stable reference rows with get-or-create semantics. Resolve* methods accept
// the enclosing transaction handle (nil means the base connection) so item
// creation can fold dimension resolution into its own transaction.
//
// Values are append-only: there is no update or delete. Matching is exact and
// case-sensitive after trimming surrounding whitespace.
type DimensionRepository interface {
	ResolveCategory(ctx context.Context, tx *gorm.DB, name string, subcategory *string) (uuid.UUID, error)
	ResolveStone(ctx context.Context, tx *gorm.DB, name string) (*uuid.UUID, error)
	ResolveColor(ctx context.Context, tx *gorm.DB, name string) (*uuid.UUID, error)
	ResolveFinish(ctx context.Context, tx *gorm.DB, name string) (*uuid.UUID, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	ListStones(ctx context.Context) ([]model.Stone, error)
	ListColors(ctx context.Context) ([]model.Color, error)
	ListFinishes(ctx context.Context) ([]model.Finish, error)
}

type dimensionRepo struct{ db *gorm.DB }

func NewDimensionRepository(db *gorm.DB) DimensionRepository { return &dimensionRepo{db: db} }

func (r *dimensionRepo) use(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// normalizeOptional maps blank values to nil: an absent stone/color/finish
// leaves the item's reference unset rather than minting an empty entity.
func normalizeOptional(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}

// ResolveCategory looks up (name, subcategory) and inserts on a miss. The
// insert uses ON CONFLICT DO NOTHING so two concurrent callers with the same
// key cannot both create a row, and the loser re-reads the winner's row
// instead of surfacing a conflict — all without aborting an enclosing
// transaction. NULL subcategory is a distinct key value equal only to itself
// (enforced by a NULLS NOT DISTINCT unique index, see infra schema patches).
func (r *dimensionRepo) ResolveCategory(ctx context.Context, tx *gorm.DB, name string, subcategory *string) (uuid.UUID, error) {
	db := r.use(tx).WithContext(ctx)
	name = strings.TrimSpace(name)
	subcategory = normalizeSubcategory(subcategory)

	find := func() (uuid.UUID, error) {
		var c model.Category
		q := db.Where("name = ?", name)
		if subcategory == nil {
			q = q.Where("subcategory IS NULL")
		} else {
			q = q.Where("subcategory = ?", *subcategory)
		}
		if err := q.First(&c).Error; err != nil {
			return uuid.Nil, err
		}
		return c.ID, nil
	}

	if id, err := find(); err == nil {
		return id, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	c := model.Category{Name: name, Subcategory: subcategory}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&c)
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the insert race — the row exists now.
		return find()
	}
	return c.ID, nil
}

func normalizeSubcategory(sub *string) *string {
	if sub == nil {
		return nil
	}
	return normalizeOptional(*sub)
}

func (r *dimensionRepo) ResolveStone(ctx context.Context, tx *gorm.DB, name string) (*uuid.UUID, error) {
	return r.resolveNamed(ctx, tx, name, "stones")
}

func (r *dimensionRepo) ResolveColor(ctx context.Context, tx *gorm.DB, name string) (*uuid.UUID, error) {
	return r.resolveNamed(ctx, tx, name, "colors")
}

func (r *dimensionRepo) ResolveFinish(ctx context.Context, tx *gorm.DB, name string) (*uuid.UUID, error) {
	return r.resolveNamed(ctx, tx, name, "finishes")
}

// resolveNamed is the shared get-or-create for the single-column dimensions.
// A nil result with a nil error means the value was blank and no reference
// should be set.
func (r *dimensionRepo) resolveNamed(ctx context.Context, tx *gorm.DB, name, table string) (*uuid.UUID, error) {
	normalized := normalizeOptional(name)
	if normalized == nil {
		return nil, nil
	}
	db := r.use(tx).WithContext(ctx)

	find := func() (uuid.UUID, error) {
		var row struct{ ID uuid.UUID }
		err := db.Table(table).Select("id").Where("name = ?", *normalized).Take(&row).Error
		return row.ID, err
	}

	id, err := find()
	if err == nil {
		return &id, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res := db.Table(table).Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{"name": *normalized})
	if res.Error != nil {
		return nil, res.Error
	}
	id, err = find()
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r *dimensionRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Order("name asc, subcategory asc nulls first").Find(&list).Error
	return list, err
}

func (r *dimensionRepo) ListStones(ctx context.Context) ([]model.Stone, error) {
	var list []model.Stone
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *dimensionRepo) ListColors(ctx context.Context) ([]model.Color, error) {
	var list []model.Color
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *dimensionRepo) ListFinishes(ctx context.Context) ([]model.Finish, error) {
	var list []model.Finish
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}
