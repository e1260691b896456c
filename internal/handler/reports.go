package handler

import (
	"net/http"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/apierror"
	"github.com/DIBANGI/vasuki-inventory/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler { return &ReportsHandler{svc: svc} }

// Overview godoc
// @Summary      Full inventory overview
// @Description  One row per item with all dimension names and the complete price breakdown. Items missing a dimension or breakdown appear with nulls.
// @Tags         reports
// @Produce      json
// @Success      200 {array} dto.OverviewRow
// @Router       /v1/reports/overview [get]
func (h *ReportsHandler) Overview(c *gin.Context) {
	rows, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("overview report failed"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// StockStatus godoc
// @Summary      Stock status summary
// @Description  Per (category, subcategory) aggregates: counts by status, valuation totals, actual value and average margin/tax rates.
// @Tags         reports
// @Produce      json
// @Success      200 {array} dto.StockStatusGroup
// @Router       /v1/reports/stock-status [get]
func (h *ReportsHandler) StockStatus(c *gin.Context) {
	groups, err := h.svc.StockStatusSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("stock status report failed"))
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Sales godoc
// @Summary      Sales report for a date window
// @Description  Sold items with sale date in [start, end] inclusive, with realized and expected profit per sale and window totals.
// @Tags         reports
// @Produce      json
// @Param        start query string true "Window start YYYY-MM-DD"
// @Param        end   query string true "Window end YYYY-MM-DD"
// @Success      200 {object} dto.SalesReportResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("start must be a YYYY-MM-DD date"))
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("end must be a YYYY-MM-DD date"))
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, apierror.New("end must not precede start"))
		return
	}

	resp, err := h.svc.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("sales report failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
