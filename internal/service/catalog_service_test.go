package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/model"
	"github.com/DIBANGI/vasuki-inventory/internal/pricing"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubDimensionRepo is an in-memory DimensionRepository with the same
// get-or-create semantics as the real one.
type stubDimensionRepo struct {
	categories map[string]uuid.UUID
	stones     map[string]uuid.UUID
	colors     map[string]uuid.UUID
	finishes   map[string]uuid.UUID
}

func newStubDimensionRepo() *stubDimensionRepo {
	return &stubDimensionRepo{
		categories: make(map[string]uuid.UUID),
		stones:     make(map[string]uuid.UUID),
		colors:     make(map[string]uuid.UUID),
		finishes:   make(map[string]uuid.UUID),
	}
}

func (r *stubDimensionRepo) ResolveCategory(_ context.Context, _ *gorm.DB, name string, subcategory *string) (uuid.UUID, error) {
	key := strings.TrimSpace(name)
	if subcategory != nil && strings.TrimSpace(*subcategory) != "" {
		key += "\x00" + strings.TrimSpace(*subcategory)
	}
	if id, ok := r.categories[key]; ok {
		return id, nil
	}
	id := uuid.New()
	r.categories[key] = id
	return id, nil
}

func (r *stubDimensionRepo) resolve(m map[string]uuid.UUID, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if id, ok := m[name]; ok {
		return &id, nil
	}
	id := uuid.New()
	m[name] = id
	return &id, nil
}

func (r *stubDimensionRepo) ResolveStone(_ context.Context, _ *gorm.DB, name string) (*uuid.UUID, error) {
	return r.resolve(r.stones, name)
}
func (r *stubDimensionRepo) ResolveColor(_ context.Context, _ *gorm.DB, name string) (*uuid.UUID, error) {
	return r.resolve(r.colors, name)
}
func (r *stubDimensionRepo) ResolveFinish(_ context.Context, _ *gorm.DB, name string) (*uuid.UUID, error) {
	return r.resolve(r.finishes, name)
}
func (r *stubDimensionRepo) ListCategories(_ context.Context) ([]model.Category, error) {
	return nil, nil
}
func (r *stubDimensionRepo) ListStones(_ context.Context) ([]model.Stone, error) { return nil, nil }
func (r *stubDimensionRepo) ListColors(_ context.Context) ([]model.Color, error) { return nil, nil }
func (r *stubDimensionRepo) ListFinishes(_ context.Context) ([]model.Finish, error) {
	return nil, nil
}

var _ repository.DimensionRepository = (*stubDimensionRepo)(nil)

// stubItemRepo is an in-memory ItemRepository.
type stubItemRepo struct {
	items map[uuid.UUID]*model.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, _ *gorm.DB, item *model.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	for _, existing := range r.items {
		if existing.SKU == item.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *stubItemRepo) FindBySKU(_ context.Context, sku string) (*model.Item, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			clone := *item
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubItemRepo) SKUExists(_ context.Context, sku string) (bool, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubItemRepo) List(_ context.Context, _ dto.ItemFilter) ([]model.Item, int64, error) {
	out := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *stubItemRepo) MarkSold(_ context.Context, id uuid.UUID, customer string, amount decimal.Decimal, soldOn time.Time) (int64, error) {
	item, ok := r.items[id]
	if !ok || item.Status != model.StatusInStock {
		return 0, nil
	}
	item.Status = model.StatusSold
	item.CustomerName = &customer
	item.SaleAmount = &amount
	item.SoldOn = &soldOn
	return 1, nil
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

var _ repository.ItemRepository = (*stubItemRepo)(nil)

// stubPricingRepo captures ledger rows for assertion.
type stubPricingRepo struct {
	rows map[uuid.UUID]*model.Pricing
}

func newStubPricingRepo() *stubPricingRepo {
	return &stubPricingRepo{rows: make(map[uuid.UUID]*model.Pricing)}
}

func (r *stubPricingRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pricing) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	r.rows[p.ItemID] = &clone
	return nil
}

func (r *stubPricingRepo) FindByItemID(_ context.Context, itemID uuid.UUID) (*model.Pricing, error) {
	row, ok := r.rows[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (r *stubPricingRepo) FindBySKU(_ context.Context, sku string) (*model.Pricing, error) {
	for _, row := range r.rows {
		if row.SKU == sku {
			clone := *row
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.PricingRepository = (*stubPricingRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func buildCatalogSvc() (CatalogService, *stubItemRepo, *stubPricingRepo, *stubDimensionRepo) {
	items := newStubItemRepo()
	ledger := newStubPricingRepo()
	dims := newStubDimensionRepo()
	return NewCatalogService(items, ledger, dims), items, ledger, dims
}

func validCreateReq(sku string) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		SKU:      sku,
		Category: "Necklace",
		Stone:    "Pearl",
		Color:    "White",
		Finish:   "Gold",
		Pricing: dto.PricingInputs{
			UnitPrice:     decimal.NewFromInt(500),
			ThreadWork:    decimal.NewFromInt(50),
			GSTOnCost:     decimal.NewFromInt(20),
			PackagingCost: decimal.NewFromInt(10),
			SPMargin:      "40%",
			TaxPct:        decimal.NewFromInt(5),
		},
	}
}

// ── CreateItem ────────────────────────────────────────────────────────────────

func TestCreateItem_ComputesAndRecordsLedger(t *testing.T) {
	svc, items, ledger, _ := buildCatalogSvc()

	resp, err := svc.CreateItem(context.Background(), validCreateReq("vsk-001"), time.Now())
	require.NoError(t, err)

	// SKU is normalized to upper case.
	assert.Equal(t, "VSK-001", resp.SKU)
	assert.Equal(t, model.StatusInStock, resp.Status)

	require.NotNil(t, resp.Breakdown)
	assert.Equal(t, "580.00", resp.Breakdown.FinalCost.StringFixed(2))
	assert.Equal(t, "812.00", resp.Breakdown.SellingPrice.StringFixed(2))
	assert.Equal(t, "852.60", resp.Breakdown.FinalSP.StringFixed(2))

	item, err := items.FindBySKU(context.Background(), "VSK-001")
	require.NoError(t, err)
	row, err := ledger.FindByItemID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "VSK-001", row.SKU)
	assert.Equal(t, "40%", row.SPMargin)
	assert.Equal(t, "852.60", row.FinalSP.StringFixed(2))
}

func TestCreateItem_DuplicateSKULeavesOriginalIntact(t *testing.T) {
	svc, items, ledger, _ := buildCatalogSvc()
	ctx := context.Background()

	first, err := svc.CreateItem(ctx, validCreateReq("VSK-002"), time.Now())
	require.NoError(t, err)

	// Same SKU in different case collides after normalization.
	req := validCreateReq("vsk-002")
	req.Pricing.UnitPrice = decimal.NewFromInt(999)
	_, err = svc.CreateItem(ctx, req, time.Now())
	assert.ErrorIs(t, err, ErrDuplicateSKU)

	item, err := items.FindBySKU(ctx, "VSK-002")
	require.NoError(t, err)
	row, err := ledger.FindByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Breakdown.UnitPrice.StringFixed(2), row.UnitPrice.StringFixed(2))
	assert.Len(t, items.items, 1)
}

func TestCreateItem_MalformedMarginCreatesNothing(t *testing.T) {
	svc, items, ledger, dims := buildCatalogSvc()

	req := validCreateReq("VSK-003")
	req.Pricing.SPMargin = "abc%"
	_, err := svc.CreateItem(context.Background(), req, time.Now())
	assert.ErrorIs(t, err, pricing.ErrInvalidPercent)

	assert.Empty(t, items.items)
	assert.Empty(t, ledger.rows)
	assert.Empty(t, dims.categories)
}

func TestCreateItem_BlankStoneLeavesReferenceUnset(t *testing.T) {
	svc, items, _, dims := buildCatalogSvc()

	req := validCreateReq("VSK-004")
	req.Stone = "   "
	resp, err := svc.CreateItem(context.Background(), req, time.Now())
	require.NoError(t, err)
	assert.Nil(t, resp.Stone)

	item, err := items.FindBySKU(context.Background(), "VSK-004")
	require.NoError(t, err)
	assert.Nil(t, item.StoneID)
	assert.Empty(t, dims.stones)
}

func TestCreateItem_ReusesDimensionValues(t *testing.T) {
	svc, items, _, dims := buildCatalogSvc()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, validCreateReq("VSK-005"), time.Now())
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, validCreateReq("VSK-006"), time.Now())
	require.NoError(t, err)

	assert.Len(t, dims.categories, 1)
	assert.Len(t, dims.stones, 1)

	a, err := items.FindBySKU(ctx, "VSK-005")
	require.NoError(t, err)
	b, err := items.FindBySKU(ctx, "VSK-006")
	require.NoError(t, err)
	assert.Equal(t, a.CategoryID, b.CategoryID)
	assert.Equal(t, *a.StoneID, *b.StoneID)
}

// ── MarkSold ──────────────────────────────────────────────────────────────────

func TestMarkSold_TransitionsOnce(t *testing.T) {
	svc, items, _, _ := buildCatalogSvc()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, validCreateReq("VSK-010"), time.Now())
	require.NoError(t, err)
	item, err := items.FindBySKU(ctx, "VSK-010")
	require.NoError(t, err)

	req := dto.MarkSoldRequest{
		CustomerName: "Anita",
		SaleAmount:   decimal.NewFromInt(900),
		SoldOn:       "2026-08-20",
	}
	resp, err := svc.MarkSold(ctx, item.ID, req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, resp.Status)
	require.NotNil(t, resp.SaleAmount)
	assert.Equal(t, "900.00", resp.SaleAmount.StringFixed(2))
	require.NotNil(t, resp.SoldOn)
	assert.Equal(t, "2026-08-20", *resp.SoldOn)

	// Selling again is rejected and the recorded facts stay untouched.
	req.SaleAmount = decimal.NewFromInt(100)
	_, err = svc.MarkSold(ctx, item.ID, req)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	after, err := items.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "900.00", after.SaleAmount.StringFixed(2))
}

func TestMarkSold_UnknownItem(t *testing.T) {
	svc, _, _, _ := buildCatalogSvc()

	_, err := svc.MarkSold(context.Background(), uuid.New(), dto.MarkSoldRequest{
		CustomerName: "Anita",
		SaleAmount:   decimal.NewFromInt(100),
		SoldOn:       "2026-08-20",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMarkSold_BadDate(t *testing.T) {
	svc, _, _, _ := buildCatalogSvc()

	_, err := svc.MarkSold(context.Background(), uuid.New(), dto.MarkSoldRequest{
		CustomerName: "Anita",
		SaleAmount:   decimal.NewFromInt(100),
		SoldOn:       "20/08/2026",
	})
	require.Error(t, err)
}

// ── ImportItems ───────────────────────────────────────────────────────────────

func TestImportItems_StoresBreakdownVerbatim(t *testing.T) {
	svc, items, ledger, _ := buildCatalogSvc()
	ctx := context.Background()

	sold := "2024-11-02"
	customer := "Walk-in"
	amount := decimal.NewFromInt(700)
	resp, err := svc.ImportItems(ctx, dto.ImportRequest{Items: []dto.ImportItemRow{{
		SKU:          "vsk-100",
		Category:     "Bangle",
		Status:       model.StatusSold,
		CustomerName: &customer,
		SaleAmount:   &amount,
		SoldOn:       &sold,
		Breakdown: dto.ImportBreakdown{
			UnitPrice: decimal.NewFromInt(500),
			SPMargin:  "n/a", // malformed but historical: stored verbatim
			// Deliberately inconsistent chain; import must not recompute.
			CostPrice:    decimal.NewFromInt(500),
			FinalCost:    decimal.NewFromInt(480),
			SellingPrice: decimal.NewFromInt(650),
			FinalSP:      decimal.NewFromInt(640),
		},
	}}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 0, resp.Failed)

	item, err := items.FindBySKU(ctx, "VSK-100")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, item.Status)
	require.NotNil(t, item.SoldOn)
	assert.Equal(t, "2024-11-02", item.SoldOn.Format("2006-01-02"))

	row, err := ledger.FindByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "n/a", row.SPMargin)
	assert.Equal(t, "480.00", row.FinalCost.StringFixed(2))
	assert.Equal(t, "640.00", row.FinalSP.StringFixed(2))
}

func TestImportItems_BadRowsAreReportedAndSkipped(t *testing.T) {
	svc, items, _, _ := buildCatalogSvc()

	badDate := "not-a-date"
	resp, err := svc.ImportItems(context.Background(), dto.ImportRequest{Items: []dto.ImportItemRow{
		{SKU: "", Category: "Bangle"},
		{SKU: "VSK-101", Category: "Bangle", SoldOn: &badDate},
		{SKU: "VSK-102", Category: "Bangle"},
	}}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 2, resp.Failed)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, 0, resp.Errors[0].Row)
	assert.Equal(t, 1, resp.Errors[1].Row)
	assert.Equal(t, "VSK-101", resp.Errors[1].SKU)

	_, err = items.FindBySKU(context.Background(), "VSK-102")
	assert.NoError(t, err)
}

func TestImportItems_DuplicateSKUSkipsRow(t *testing.T) {
	svc, _, _, _ := buildCatalogSvc()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, validCreateReq("VSK-110"), time.Now())
	require.NoError(t, err)

	resp, err := svc.ImportItems(ctx, dto.ImportRequest{Items: []dto.ImportItemRow{
		{SKU: "vsk-110", Category: "Bangle"},
	}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 1, resp.Failed)
}

// ── GetBySKU ──────────────────────────────────────────────────────────────────

func TestGetBySKU_NormalizesLookup(t *testing.T) {
	svc, _, _, _ := buildCatalogSvc()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, validCreateReq("VSK-120"), time.Now())
	require.NoError(t, err)

	resp, err := svc.GetBySKU(ctx, "  vsk-120 ")
	require.NoError(t, err)
	assert.Equal(t, "VSK-120", resp.SKU)

	_, err = svc.GetBySKU(ctx, "VSK-999")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
