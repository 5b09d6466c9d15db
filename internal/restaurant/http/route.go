package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/restaurant-sales")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("restaurant-sales", auth.ActionRead)
		transition := auth.RequirePermission("restaurant-sales", auth.ActionTransition)

		group.GET("", read, h.List)
		group.GET("/:id", read, h.Get)
		group.POST("", auth.RequirePermission("restaurant-sales", auth.ActionCreate), h.Create)
		group.PATCH("/:id", auth.RequirePermission("restaurant-sales", auth.ActionUpdate), h.Update)
		group.DELETE("/:id", auth.RequirePermission("restaurant-sales", auth.ActionDelete), h.Delete)

		group.POST("/:id/settle", transition, h.Settle)
		group.POST("/:id/cancel", transition, h.Cancel)
		group.POST("/:id/reactivate", transition, h.Reactivate)
		group.POST("/:id/payments", auth.RequirePermission("restaurant-sales", auth.ActionPayment), h.RecordPayment)
	}
}
