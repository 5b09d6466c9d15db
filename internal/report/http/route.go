package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reports")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("reports", auth.ActionRead)

		group.GET("/dashboard", read, h.Dashboard)
		group.GET("/revenue", read, h.Revenue)
	}
}
