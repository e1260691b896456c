package repository

import (
	"context"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/model"

	"gorm.io/gorm"
)

// ReportRepository serves the read-only joined rows the reporting service
// aggregates over. Queries run against whatever rows are committed at the
// time; the item+ledger write transaction guarantees they never see an item
// without its breakdown mid-write.
type ReportRepository interface {
	// Overview LEFT-joins every item against all four dimension tables and
	// the ledger, so incomplete items still appear with nulls.
	Overview(ctx context.Context) ([]dto.OverviewRow, error)

	// StockStatusRows INNER-joins items to the ledger; items without a
	// breakdown are excluded by construction.
	StockStatusRows(ctx context.Context) ([]dto.StockStatusRow, error)

	// SoldItemsBetween returns sold items whose sale date falls in
	// [start, end] inclusive, ordered by sale date ascending.
	SoldItemsBetween(ctx context.Context, start, end time.Time) ([]dto.SoldItemRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Overview(ctx context.Context) ([]dto.OverviewRow, error) {
	var rows []dto.OverviewRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT i.sku,
		       i.serial_label,
		       c.name        AS category,
		       c.subcategory AS subcategory,
		       s.name        AS stone,
		       cl.name       AS color,
		       f.name        AS finish,
		       i.weight, i.length, i.width,
		       i.acquisition_year,
		       i.status, i.customer_name, i.sale_amount, i.sold_on,
		       p.unit_price, p.thread_work, p.gst_on_cost, p.packaging_cost,
		       p.sp_margin, p.tax_pct,
		       p.cost_price, p.final_cost, p.selling_price, p.final_sp
		FROM items i
		LEFT JOIN categories c ON c.id  = i.category_id
		LEFT JOIN stones     s ON s.id  = i.stone_id
		LEFT JOIN colors     cl ON cl.id = i.color_id
		LEFT JOIN finishes   f ON f.id  = i.finish_id
		LEFT JOIN pricing    p ON p.item_id = i.id
		ORDER BY i.sku ASC`).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) StockStatusRows(ctx context.Context) ([]dto.StockStatusRow, error) {
	var rows []dto.StockStatusRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.name        AS category,
		       c.subcategory AS subcategory,
		       i.status,
		       i.sale_amount,
		       p.final_cost,
		       p.final_sp,
		       p.sp_margin,
		       p.tax_pct
		FROM items i
		JOIN pricing    p ON p.item_id = i.id
		JOIN categories c ON c.id = i.category_id
		ORDER BY c.name ASC, c.subcategory ASC NULLS FIRST`).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) SoldItemsBetween(ctx context.Context, start, end time.Time) ([]dto.SoldItemRow, error) {
	var rows []dto.SoldItemRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT i.sku,
		       c.name        AS category,
		       c.subcategory AS subcategory,
		       i.customer_name,
		       i.sale_amount,
		       i.sold_on,
		       p.final_cost,
		       p.final_sp
		FROM items i
		JOIN pricing    p ON p.item_id = i.id
		JOIN categories c ON c.id = i.category_id
		WHERE i.status = ?
		  AND i.sold_on BETWEEN ? AND ?
		ORDER BY i.sold_on ASC, i.sku ASC`,
		model.StatusSold, start, end).Scan(&rows).Error
	return rows, err
}
