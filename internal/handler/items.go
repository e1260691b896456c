package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/apierror"
	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/pricing"
	"github.com/DIBANGI/vasuki-inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ItemsHandler struct {
	svc service.CatalogService
	rdb *redis.Client
}

func NewItemsHandler(svc service.CatalogService, rdb *redis.Client) *ItemsHandler {
	return &ItemsHandler{svc: svc, rdb: rdb}
}

// Create godoc
// @Summary      Register a new inventory item
// @Description  Creates an item with its price breakdown in one transaction: resolves category/stone/color/finish values, computes the price chain from the raw cost fields and records the ledger row.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateItemRequest true "Item attributes and raw pricing inputs"
// @Success      201  {object} dto.ItemResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateItem(c.Request.Context(), req, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateSKU):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, pricing.ErrInvalidPercent):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBySKU godoc
// @Summary      Look up an item by SKU
// @Tags         items
// @Produce      json
// @Param        sku path string true "SKU (case-insensitive)"
// @Success      200 {object} dto.ItemResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/items/{sku} [get]
func (h *ItemsHandler) GetBySKU(c *gin.Context) {
	resp, err := h.svc.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("item lookup failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List items
// @Description  Paginated listing with optional sku, status, category and stone filters.
// @Tags         items
// @Produce      json
// @Param        sku      query string false "Exact SKU"
// @Param        status   query string false "In Stock | Sold"
// @Param        category query string false "Category name"
// @Param        stone    query string false "Stone name"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Rows per page (default 20)"
// @Success      200 {object} dto.ItemListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/items [get]
func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("item listing failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkSold godoc
// @Summary      Mark an item as sold
// @Description  Transitions In Stock -> Sold and records the sale facts. Selling an already-sold item is rejected.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id   path string              true "Item UUID"
// @Param        body body dto.MarkSoldRequest true "Sale facts"
// @Success      200  {object} dto.ItemResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/items/{id}/sell [post]
func (h *ItemsHandler) MarkSold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid item id"))
		return
	}
	var req dto.MarkSoldRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MarkSold(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, apierror.New("item not found"))
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, apierror.New("item is not in stock"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	// The cached price payload carries the status; drop it so the counter
	// lookup reflects the sale before the TTL runs out. Best effort.
	_ = h.rdb.Del(context.Background(), priceCacheKey(resp.SKU)).Err()

	c.JSON(http.StatusOK, resp)
}

// Import godoc
// @Summary      Bulk import historical items
// @Description  Imports rows with precomputed breakdowns stored verbatim. Each row is its own transaction; failed rows are reported and skipped.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body body dto.ImportRequest true "Rows to import"
// @Success      200  {object} dto.ImportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items/import [post]
func (h *ItemsHandler) Import(c *gin.Context) {
	var req dto.ImportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ImportItems(c.Request.Context(), req, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
