package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/response"
	"github.com/sainamthip/resort-booking-backend/internal/report"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type revenueRequest struct {
	Domain      string `form:"domain" binding:"required,oneof=pool conference hotel restaurant"`
	Granularity string `form:"granularity,default=day" binding:"omitempty,oneof=day month"`
	From        string `form:"from" binding:"required,datetime=2006-01-02"`
	To          string `form:"to" binding:"required,datetime=2006-01-02"`
}

func (h *Handler) Revenue(c *gin.Context) {
	var q revenueRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	from, _ := time.Parse("2006-01-02", q.From)
	to, _ := time.Parse("2006-01-02", q.To)

	series, err := h.service.Revenue(c.Request.Context(), q.Domain, report.Granularity(q.Granularity), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
