package controllers

import (
	"net/http"

	"github.com/marcus-bailey/nom-nom-tracker/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc     *services.AnalyticsService
	Reports *services.ReportService
}

func NewAnalyticsController(svc *services.AnalyticsService, reports *services.ReportService) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Reports: reports}
}

// GET /api/analytics/daily/:date
func (h *AnalyticsController) Daily(c *gin.Context) {
	out, err := h.Svc.Daily(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/analytics/weekly/:start_date
func (h *AnalyticsController) Weekly(c *gin.Context) {
	out, err := h.Svc.Weekly(c.Request.Context(), c.Param("start_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/analytics/range/:start_date/:end_date
func (h *AnalyticsController) Range(c *gin.Context) {
	out, err := h.Svc.Range(c.Request.Context(), c.Param("start_date"), c.Param("end_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/analytics/range/:start_date/:end_date/export
func (h *AnalyticsController) ExportRange(c *gin.Context) {
	out, err := h.Reports.ExportRange(c.Request.Context(), c.Param("start_date"), c.Param("end_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
