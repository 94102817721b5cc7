package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/handler"
	"github.com/Visheshvd/playarena/internal/middleware"
	"github.com/Visheshvd/playarena/internal/model"
)

// RegisterCustomer registers the authenticated customer endpoints.
// Admins can call these too, which keeps the admin console able to
// book on a customer's behalf from the same client code.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, m *handler.MatchHandler,
	n *handler.NotificationHandler, jwtSecret string) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))

	g.POST("/bookings", b.Create)
	g.GET("/my-bookings", b.MyBookings)
	g.GET("/my-matches", m.MyHistory)

	g.POST("/notifications/subscribe", n.Subscribe)
	g.DELETE("/notifications/unsubscribe", n.Unsubscribe)
	g.GET("/notifications/status", n.Status)
}
