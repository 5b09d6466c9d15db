package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/halls")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("halls", auth.ActionRead)
		manage := auth.RequirePermission("halls", auth.ActionManage)

		group.GET("", read, h.List)
		group.GET("/:id", read, h.Get)
		group.GET("/:id/photo", read, h.GetPhoto)
		group.POST("", manage, h.Create)
		group.PATCH("/:id", manage, h.Update)
		group.PUT("/:id/photo", manage, h.UploadPhoto)
		group.POST("/seed", manage, h.Seed)
	}
}
