package handler

import (
	"net/http"

	"github.com/DIBANGI/vasuki-inventory/internal/apierror"
	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"

	"github.com/gin-gonic/gin"
)

// DimensionsHandler exposes the read side of the dimension registry. Values
// are only ever created implicitly through item creation and import, so there
// are no write endpoints here.
type DimensionsHandler struct{ repo repository.DimensionRepository }

func NewDimensionsHandler(repo repository.DimensionRepository) *DimensionsHandler {
	return &DimensionsHandler{repo: repo}
}

// ListCategories godoc
// @Summary  List known categories
// @Tags     dimensions
// @Produce  json
// @Success  200 {array} dto.CategoryResponse
// @Router   /v1/dimensions/categories [get]
func (h *DimensionsHandler) ListCategories(c *gin.Context) {
	list, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("category listing failed"))
		return
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, dto.CategoryResponse{
			ID:          cat.ID.String(),
			Name:        cat.Name,
			Subcategory: cat.Subcategory,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListStones godoc
// @Summary  List known stones
// @Tags     dimensions
// @Produce  json
// @Success  200 {array} dto.DimensionValueResponse
// @Router   /v1/dimensions/stones [get]
func (h *DimensionsHandler) ListStones(c *gin.Context) {
	list, err := h.repo.ListStones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("stone listing failed"))
		return
	}
	out := make([]dto.DimensionValueResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.DimensionValueResponse{ID: s.ID.String(), Name: s.Name})
	}
	c.JSON(http.StatusOK, out)
}

// ListColors godoc
// @Summary  List known colors
// @Tags     dimensions
// @Produce  json
// @Success  200 {array} dto.DimensionValueResponse
// @Router   /v1/dimensions/colors [get]
func (h *DimensionsHandler) ListColors(c *gin.Context) {
	list, err := h.repo.ListColors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("color listing failed"))
		return
	}
	out := make([]dto.DimensionValueResponse, 0, len(list))
	for _, cl := range list {
		out = append(out, dto.DimensionValueResponse{ID: cl.ID.String(), Name: cl.Name})
	}
	c.JSON(http.StatusOK, out)
}

// ListFinishes godoc
// @Summary  List known finishes
// @Tags     dimensions
// @Produce  json
// @Success  200 {array} dto.DimensionValueResponse
// @Router   /v1/dimensions/finishes [get]
func (h *DimensionsHandler) ListFinishes(c *gin.Context) {
	list, err := h.repo.ListFinishes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("finish listing failed"))
		return
	}
	out := make([]dto.DimensionValueResponse, 0, len(list))
	for _, f := range list {
		out = append(out, dto.DimensionValueResponse{ID: f.ID.String(), Name: f.Name})
	}
	c.JSON(http.StatusOK, out)
}
