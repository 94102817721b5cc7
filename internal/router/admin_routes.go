package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/handler"
	"github.com/Visheshvd/playarena/internal/middleware"
	"github.com/Visheshvd/playarena/internal/model"
)

// RegisterAdmin registers the admin console under /v1/admin.  Every
// route requires a valid token carrying the admin role.
func RegisterAdmin(e *echo.Echo, ab *handler.AdminBookingHandler, am *handler.AdminMatchHandler,
	au *handler.AdminUserHandler, as *handler.AdminStatsHandler, p *handler.PricingHandler,
	jwtSecret string) {

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/booking-requests", ab.ListPending)
	g.GET("/bookings", ab.ListResolved)
	g.POST("/bookings", ab.Create)
	g.PATCH("/bookings/:id", ab.Update)
	g.DELETE("/bookings/:id", ab.Delete)
	g.PATCH("/bookings/:id/accept", ab.Accept)
	g.PATCH("/bookings/:id/decline", ab.Decline)

	g.GET("/matches", am.List)
	g.POST("/matches", am.Create)
	g.PATCH("/matches/:id", am.Update)

	g.GET("/users", au.List)
	g.PATCH("/users/:id/stats", au.SetStats)
	g.POST("/users/:id/recalculate-stats", au.RecalculateStats)

	g.GET("/stats", as.Dashboard)
	g.PUT("/pricing", p.Upsert)
}
