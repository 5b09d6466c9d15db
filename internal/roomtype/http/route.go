package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/room-types")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("room-types", auth.ActionRead)
		manage := auth.RequirePermission("room-types", auth.ActionManage)

		group.GET("", read, h.List)
		group.GET("/:id", read, h.Get)
		group.POST("", manage, h.Create)
		group.PATCH("/:id", manage, h.Update)
		group.POST("/seed", manage, h.Seed)
	}
}
