package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/room-reservations")
	group.Use(authMiddleware)
	{
		read := auth.RequirePermission("room-reservations", auth.ActionRead)
		transition := auth.RequirePermission("room-reservations", auth.ActionTransition)

		group.GET("", read, h.List)
		group.GET("/availability", read, h.Availability)
		group.GET("/free-rooms", read, h.FreeRooms)
		group.GET("/:id", read, h.Get)
		group.POST("", auth.RequirePermission("room-reservations", auth.ActionCreate), h.Create)
		group.PATCH("/:id", auth.RequirePermission("room-reservations", auth.ActionUpdate), h.Update)
		group.DELETE("/:id", auth.RequirePermission("room-reservations", auth.ActionDelete), h.Delete)

		group.POST("/:id/check-in", transition, h.CheckIn)
		group.POST("/:id/check-out", transition, h.CheckOut)
		group.POST("/:id/cancel", transition, h.Cancel)
		group.POST("/:id/no-show", transition, h.MarkNoShow)
		group.POST("/:id/reactivate", transition, h.Reactivate)
		group.POST("/:id/payments", auth.RequirePermission("room-reservations", auth.ActionPayment), h.RecordPayment)
	}
}
