// Package router wires handlers to routes.  Public read endpoints can
// be fronted by the response cache; everything stateful sits behind
// JWT auth and, for the admin console, a role check.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/handler"
)

// RegisterRoutes registers routes that require neither authentication
// nor any domain handler.  Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated read endpoints: the
// rate card, the leaderboard, the lobby scoreboard and slot
// availability.  cache may be nil when Redis is not configured.
func RegisterPublic(e *echo.Echo, p *handler.PricingHandler, l *handler.LeaderboardHandler,
	m *handler.MatchHandler, b *handler.BookingHandler, n *handler.NotificationHandler,
	cache echo.MiddlewareFunc) {

	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/pricing", p.List)
	g.GET("/leaderboard", l.Leaderboard)
	g.GET("/matches/ongoing", m.Ongoing)
	g.GET("/matches/past", m.PastToday)
	g.GET("/bookings/slots", b.AvailableSlots)

	// Key retrieval is cheap and never changes at runtime; keep it out
	// of the cache group so a missing key is not cached as a 404.
	e.GET("/v1/notifications/vapid-public-key", n.VapidPublicKey)
}
