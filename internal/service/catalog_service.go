package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/model"
	"github.com/DIBANGI/vasuki-inventory/internal/pricing"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Error taxonomy. All of these are terminal for the operation that raised
// them; none is retryable by the caller with the same arguments.
var (
	// ErrDuplicateSKU — item creation with an already-used SKU.
	ErrDuplicateSKU = errors.New("sku already in use")
	// ErrSKUMismatch — ledger record's SKU disagrees with the item's SKU.
	// Indicates a caller bug, not recoverable by retry.
	ErrSKUMismatch = errors.New("ledger sku does not match item sku")
	// ErrInvalidTransition — sell requested on an item that is not In Stock.
	ErrInvalidTransition = errors.New("item is not in stock")
	ErrItemNotFound      = errors.New("item not found")
)

// CatalogService owns the write path: item creation with dimension
// resolution and ledger recording as one transaction, bulk import of
// historical rows, and the In Stock -> Sold transition.
type CatalogService interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest, enteredAt time.Time) (*dto.ItemResponse, error)
	ImportItems(ctx context.Context, req dto.ImportRequest, enteredAt time.Time) (*dto.ImportResponse, error)
	MarkSold(ctx context.Context, id uuid.UUID, req dto.MarkSoldRequest) (*dto.ItemResponse, error)
	GetBySKU(ctx context.Context, sku string) (*dto.ItemResponse, error)
	List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error)
}

type catalogService struct {
	items  repository.ItemRepository
	ledger repository.PricingRepository
	dims   repository.DimensionRepository
}

func NewCatalogService(
	items repository.ItemRepository,
	ledger repository.PricingRepository,
	dims repository.DimensionRepository,
) CatalogService {
	return &catalogService{items: items, ledger: ledger, dims: dims}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// normalizeSKU mirrors the historical dataset: SKUs are stored trimmed and
// upper-cased so lookups never depend on entry-time casing.
func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// ── CreateItem ────────────────────────────────────────────────────────────────
// One logical unit: resolve the four dimension references, insert the item,
// record its ledger row. If any step fails nothing is committed — an item
// without a breakdown must never exist. The breakdown is computed BEFORE the
// transaction opens so a malformed margin aborts without touching the store.

func (s *catalogService) CreateItem(ctx context.Context, req dto.CreateItemRequest, enteredAt time.Time) (*dto.ItemResponse, error) {
	sku := normalizeSKU(req.SKU)
	if sku == "" {
		return nil, errors.New("sku is required")
	}

	bd, err := pricing.Compute(pricing.Inputs{
		UnitPrice:     req.Pricing.UnitPrice,
		ThreadWork:    req.Pricing.ThreadWork,
		GSTOnCost:     req.Pricing.GSTOnCost,
		PackagingCost: req.Pricing.PackagingCost,
		SPMargin:      pricing.Percent(req.Pricing.SPMargin),
		TaxPct:        req.Pricing.TaxPct,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.items.SKUExists(ctx, sku)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSKU, sku)
	}

	var item model.Item
	var row model.Pricing
	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		catID, err := s.dims.ResolveCategory(ctx, tx, req.Category, req.Subcategory)
		if err != nil {
			return err
		}
		stoneID, err := s.dims.ResolveStone(ctx, tx, req.Stone)
		if err != nil {
			return err
		}
		colorID, err := s.dims.ResolveColor(ctx, tx, req.Color)
		if err != nil {
			return err
		}
		finishID, err := s.dims.ResolveFinish(ctx, tx, req.Finish)
		if err != nil {
			return err
		}

		item = model.Item{
			SerialLabel:     req.SerialLabel,
			SKU:             sku,
			CategoryID:      catID,
			StoneID:         stoneID,
			ColorID:         colorID,
			FinishID:        finishID,
			Weight:          req.Weight,
			Length:          req.Length,
			Width:           req.Width,
			AcquisitionYear: req.AcquisitionYear,
			Status:          model.StatusInStock,
			CreatedAt:       enteredAt,
		}
		if err := s.items.Create(ctx, tx, &item); err != nil {
			return err
		}

		row = model.Pricing{
			UnitPrice:     req.Pricing.UnitPrice,
			ThreadWork:    req.Pricing.ThreadWork,
			GSTOnCost:     req.Pricing.GSTOnCost,
			PackagingCost: req.Pricing.PackagingCost,
			SPMargin:      req.Pricing.SPMargin,
			TaxPct:        req.Pricing.TaxPct,
		}
		return s.record(ctx, tx, &item, sku, bd, &row)
	})
	if txErr != nil {
		// Concurrent create with the same SKU slips past the pre-check and
		// lands on the unique constraint instead.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSKU, sku)
		}
		return nil, txErr
	}

	resp := itemToResponse(&item, &row)
	// Dimension names are not preloaded on a fresh insert — echo the request.
	fillNamesFromRequest(resp, req)
	return resp, nil
}

// record writes the ledger row for a just-created item. The redundant SKU is
// re-checked against the item before insert; a mismatch is a caller bug.
func (s *catalogService) record(ctx context.Context, tx *gorm.DB, item *model.Item, sku string, bd pricing.Breakdown, row *model.Pricing) error {
	if sku != item.SKU {
		return fmt.Errorf("%w: %q vs %q", ErrSKUMismatch, sku, item.SKU)
	}
	row.ItemID = item.ID
	row.SKU = sku
	row.CostPrice = bd.CostPrice
	row.FinalCost = bd.FinalCost
	row.SellingPrice = bd.SellingPrice
	row.FinalSP = bd.FinalSP
	return s.ledger.Create(ctx, tx, row)
}

// ── ImportItems ───────────────────────────────────────────────────────────────
// Bulk surface for historical data. Each row carries a precomputed breakdown
// that is stored verbatim, and may arrive already sold. Rows are independent
// transactions: a bad row is reported and skipped, the batch continues
// (matching the original importer's behavior).

func (s *catalogService) ImportItems(ctx context.Context, req dto.ImportRequest, enteredAt time.Time) (*dto.ImportResponse, error) {
	resp := &dto.ImportResponse{}

	for i, row := range req.Items {
		if err := s.importRow(ctx, row, enteredAt); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportRowError{
				Row:    i,
				SKU:    normalizeSKU(row.SKU),
				Detail: err.Error(),
			})
			log.Warn().Int("row", i).Str("sku", row.SKU).Err(err).Msg("import row skipped")
			continue
		}
		resp.Imported++
	}
	return resp, nil
}

func (s *catalogService) importRow(ctx context.Context, row dto.ImportItemRow, enteredAt time.Time) error {
	sku := normalizeSKU(row.SKU)
	if sku == "" {
		return errors.New("sku is required")
	}
	if strings.TrimSpace(row.Category) == "" {
		return errors.New("category is required")
	}

	exists, err := s.items.SKUExists(ctx, sku)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSKU, sku)
	}

	status := strings.TrimSpace(row.Status)
	if status == "" {
		status = model.StatusInStock
	}

	var soldOn *time.Time
	if row.SoldOn != nil && *row.SoldOn != "" {
		t, err := time.Parse("2006-01-02", *row.SoldOn)
		if err != nil {
			return fmt.Errorf("invalid sold_on date %q: %w", *row.SoldOn, err)
		}
		soldOn = &t
	}

	bd := pricing.FromBreakdown(
		row.Breakdown.CostPrice,
		row.Breakdown.FinalCost,
		row.Breakdown.SellingPrice,
		row.Breakdown.FinalSP,
	)

	return runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		catID, err := s.dims.ResolveCategory(ctx, tx, row.Category, row.Subcategory)
		if err != nil {
			return err
		}
		stoneID, err := s.dims.ResolveStone(ctx, tx, row.Stone)
		if err != nil {
			return err
		}
		colorID, err := s.dims.ResolveColor(ctx, tx, row.Color)
		if err != nil {
			return err
		}
		finishID, err := s.dims.ResolveFinish(ctx, tx, row.Finish)
		if err != nil {
			return err
		}

		item := model.Item{
			SerialLabel:     row.SerialLabel,
			SKU:             sku,
			CategoryID:      catID,
			StoneID:         stoneID,
			ColorID:         colorID,
			FinishID:        finishID,
			Weight:          row.Weight,
			Length:          row.Length,
			Width:           row.Width,
			AcquisitionYear: row.AcquisitionYear,
			Status:          status,
			CustomerName:    row.CustomerName,
			SaleAmount:      row.SaleAmount,
			SoldOn:          soldOn,
			CreatedAt:       enteredAt,
		}
		if err := s.items.Create(ctx, tx, &item); err != nil {
			return err
		}

		ledgerRow := model.Pricing{
			UnitPrice:     row.Breakdown.UnitPrice,
			ThreadWork:    row.Breakdown.ThreadWork,
			GSTOnCost:     row.Breakdown.GSTOnCost,
			PackagingCost: row.Breakdown.PackagingCost,
			SPMargin:      row.Breakdown.SPMargin,
			TaxPct:        row.Breakdown.TaxPct,
		}
		return s.record(ctx, tx, &item, sku, bd, &ledgerRow)
	})
}

// ── MarkSold ──────────────────────────────────────────────────────────────────

func (s *catalogService) MarkSold(ctx context.Context, id uuid.UUID, req dto.MarkSoldRequest) (*dto.ItemResponse, error) {
	soldOn, err := time.Parse("2006-01-02", req.SoldOn)
	if err != nil {
		return nil, fmt.Errorf("invalid sold_on date %q: %w", req.SoldOn, err)
	}

	rows, err := s.items.MarkSold(ctx, id, req.CustomerName, req.SaleAmount, soldOn)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Either the item does not exist or it is not In Stock.
		if _, err := s.items.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row, err := s.ledger.FindByItemID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return itemToResponse(item, row), nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *catalogService) GetBySKU(ctx context.Context, sku string) (*dto.ItemResponse, error) {
	item, err := s.items.FindBySKU(ctx, normalizeSKU(sku))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	row, err := s.ledger.FindByItemID(ctx, item.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return itemToResponse(item, row), nil
}

func (s *catalogService) List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	items, total, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		row, err := s.ledger.FindByItemID(ctx, items[i].ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		data = append(data, *itemToResponse(&items[i], row))
	}
	return &dto.ItemListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func itemToResponse(item *model.Item, row *model.Pricing) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:              item.ID.String(),
		SerialLabel:     item.SerialLabel,
		SKU:             item.SKU,
		Weight:          item.Weight,
		Length:          item.Length,
		Width:           item.Width,
		AcquisitionYear: item.AcquisitionYear,
		Status:          item.Status,
		CustomerName:    item.CustomerName,
		SaleAmount:      item.SaleAmount,
	}
	if item.SoldOn != nil {
		d := item.SoldOn.Format("2006-01-02")
		resp.SoldOn = &d
	}
	if item.Category != nil {
		resp.Category = item.Category.Name
		resp.Subcategory = item.Category.Subcategory
	}
	if item.Stone != nil {
		resp.Stone = &item.Stone.Name
	}
	if item.Color != nil {
		resp.Color = &item.Color.Name
	}
	if item.Finish != nil {
		resp.Finish = &item.Finish.Name
	}
	if row != nil {
		resp.Breakdown = &dto.BreakdownResponse{
			UnitPrice:     row.UnitPrice,
			ThreadWork:    row.ThreadWork,
			GSTOnCost:     row.GSTOnCost,
			PackagingCost: row.PackagingCost,
			SPMargin:      row.SPMargin,
			TaxPct:        row.TaxPct,
			CostPrice:     row.CostPrice,
			FinalCost:     row.FinalCost,
			SellingPrice:  row.SellingPrice,
			FinalSP:       row.FinalSP,
		}
	}
	return resp
}

func fillNamesFromRequest(resp *dto.ItemResponse, req dto.CreateItemRequest) {
	resp.Category = strings.TrimSpace(req.Category)
	if req.Subcategory != nil {
		if sub := strings.TrimSpace(*req.Subcategory); sub != "" {
			resp.Subcategory = &sub
		}
	}
	if v := strings.TrimSpace(req.Stone); v != "" {
		resp.Stone = &v
	}
	if v := strings.TrimSpace(req.Color); v != "" {
		resp.Color = &v
	}
	if v := strings.TrimSpace(req.Finish); v != "" {
		resp.Finish = &v
	}
}
