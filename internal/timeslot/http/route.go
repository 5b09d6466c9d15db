package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/time-slots")
	group.Use(authMiddleware)
	{
		group.GET("", auth.RequirePermission("time-slots", auth.ActionRead), h.List)
		group.GET("/:id", auth.RequirePermission("time-slots", auth.ActionRead), h.Get)
		group.POST("", auth.RequirePermission("time-slots", auth.ActionManage), h.Create)
		group.PATCH("/:id", auth.RequirePermission("time-slots", auth.ActionManage), h.Update)
		group.POST("/seed", auth.RequirePermission("time-slots", auth.ActionManage), h.Seed)
	}
}
