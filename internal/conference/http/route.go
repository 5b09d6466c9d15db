package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/conference-bookings")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("conference-bookings", auth.ActionRead)
		transition := auth.RequirePermission("conference-bookings", auth.ActionTransition)

		group.GET("", read, h.List)
		group.GET("/availability", read, h.Availability)
		group.GET("/:id", read, h.Get)
		group.POST("", auth.RequirePermission("conference-bookings", auth.ActionCreate), h.Create)
		group.PATCH("/:id", auth.RequirePermission("conference-bookings", auth.ActionUpdate), h.Update)
		group.DELETE("/:id", auth.RequirePermission("conference-bookings", auth.ActionDelete), h.Delete)

		group.POST("/:id/approve", transition, h.Approve)
		group.POST("/:id/confirm", transition, h.Confirm)
		group.POST("/:id/complete", transition, h.Complete)
		group.POST("/:id/cancel", transition, h.Cancel)
		group.POST("/:id/reactivate", transition, h.Reactivate)
		group.POST("/:id/payments", auth.RequirePermission("conference-bookings", auth.ActionPayment), h.RecordPayment)
	}
}
