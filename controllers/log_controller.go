package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/marcus-bailey/nom-nom-tracker/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	Svc       *services.LogService
	Analytics *services.AnalyticsService
	RT        *services.RealtimeHub
}

func NewLogController(svc *services.LogService, analytics *services.AnalyticsService, rt *services.RealtimeHub) *LogController {
	return &LogController{Svc: svc, Analytics: analytics, RT: rt}
}

// GET /api/logs?date=2024-01-15 or ?start_date=…&end_date=…
func (h *LogController) List(c *gin.Context) {
	f := services.LogFilter{
		Date:  c.Query("date"),
		Start: c.Query("start_date"),
		End:   c.Query("end_date"),
	}
	if f.Date == "" && (f.Start == "") != (f.End == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date must be given together"})
		return
	}
	logs, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *LogController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// POST /api/logs  {"log_date":"2024-01-15","log_time":"12:30","meal_id":3,"servings":1.5}
func (h *LogController) Create(c *gin.Context) {
	var req services.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	entry, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c.Request.Context(), "log.created", entry.ID, entry.LogDate)
	c.JSON(http.StatusCreated, entry)
}

func (h *LogController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.LogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	before, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if before.LogDate != entry.LogDate {
		h.notify(c.Request.Context(), "log.updated", id, before.LogDate)
	}
	h.notify(c.Request.Context(), "log.updated", id, entry.LogDate)
	c.JSON(http.StatusOK, entry)
}

func (h *LogController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify(c.Request.Context(), "log.deleted", id, entry.LogDate)
	c.JSON(http.StatusOK, gin.H{"message": "log entry deleted"})
}

// notify pushes the day's fresh totals to connected dashboards. A failed
// summary still sends the event without totals.
func (h *LogController) notify(ctx context.Context, kind string, id uint, date string) {
	if h.RT == nil {
		return
	}
	ev := services.LogEvent{Kind: kind, LogID: id, LogDate: date}
	if h.Analytics != nil {
		daily, err := h.Analytics.Daily(ctx, date)
		if err != nil {
			log.Printf("realtime: daily summary for %s: %v", date, err)
		} else {
			ev.Daily = daily
		}
	}
	h.RT.Broadcast(ev)
}
