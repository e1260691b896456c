package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/apierror"
	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// priceCacheKey builds the Redis key for one SKU's cached price payload.
// The sell path deletes this key so status changes show up immediately.
func priceCacheKey(sku string) string { return "price:" + sku }

// PriceCheckHandler serves the quick price lookup used at the counter.
// Read-only, cached in Redis keyed by SKU.
type PriceCheckHandler struct {
	items  repository.ItemRepository
	ledger repository.PricingRepository
	rdb    *redis.Client
	ttl    time.Duration
}

func NewPriceCheckHandler(items repository.ItemRepository, ledger repository.PricingRepository, rdb *redis.Client, ttl time.Duration) *PriceCheckHandler {
	return &PriceCheckHandler{items: items, ledger: ledger, rdb: rdb, ttl: ttl}
}

// GetBySKU godoc
// @Summary Price check by SKU
// @Tags    price
// @Produce json
// @Param   sku path string true "SKU (case-insensitive)"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router  /v1/price/{sku} [get]
func (h *PriceCheckHandler) GetBySKU(c *gin.Context) {
	sku := strings.ToUpper(strings.TrimSpace(c.Param("sku")))
	ctx := c.Request.Context()
	cacheKey := priceCacheKey(sku)

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceCheckResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	item, err := h.items.FindBySKU(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("item not found"))
		return
	}
	row, err := h.ledger.FindByItemID(ctx, item.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("item has no price breakdown"))
		return
	}

	resp := dto.PriceCheckResponse{
		SKU:     item.SKU,
		FinalSP: row.FinalSP,
		Status:  item.Status,
	}
	if item.Category != nil {
		resp.Category = item.Category.Name
		resp.Subcategory = item.Category.Subcategory
	}

	// Populate cache — best effort, ignore errors. Sold items are cached too;
	// status is part of the payload so the counter sees it.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, h.ttl).Err()
	}

	c.JSON(http.StatusOK, resp)
}
