package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.POST("/auth/login", h.Login)

	// === Authenticated Routes ===
	g.GET("/auth/me", authMiddleware, h.Me)

	users := g.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("", auth.RequirePermission("users", auth.ActionRead), h.List)
		users.GET("/:id", auth.RequirePermission("users", auth.ActionRead), h.Get)
		users.POST("", auth.RequirePermission("users", auth.ActionManage), h.Create)
		users.PATCH("/:id", auth.RequirePermission("users", auth.ActionManage), h.Update)
	}
}
