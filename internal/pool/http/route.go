package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/pool-bookings")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("pool-bookings", auth.ActionRead)
		transition := auth.RequirePermission("pool-bookings", auth.ActionTransition)

		group.GET("", read, h.List)
		group.GET("/availability", read, h.Availability)
		group.GET("/:id", read, h.Get)
		group.POST("", auth.RequirePermission("pool-bookings", auth.ActionCreate), h.Create)
		group.PATCH("/:id", auth.RequirePermission("pool-bookings", auth.ActionUpdate), h.Update)
		group.DELETE("/:id", auth.RequirePermission("pool-bookings", auth.ActionDelete), h.Delete)

		group.POST("/:id/cancel", transition, h.Cancel)
		group.POST("/:id/reactivate", transition, h.Reactivate)
		group.POST("/:id/complete", transition, h.Complete)
		group.POST("/:id/payments", auth.RequirePermission("pool-bookings", auth.ActionPayment), h.RecordPayment)
	}
}
