package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/handler"
	"github.com/Visheshvd/playarena/internal/middleware"
)

// RegisterAuth registers the login flows and the profile endpoints.
// otpLimit is the tighter rate limit bucket applied only to the OTP
// endpoints; nil disables it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, otpLimit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if otpLimit != nil {
		g.POST("/send-otp", a.SendOTP, otpLimit)
		g.POST("/verify-otp", a.VerifyOTP, otpLimit)
	} else {
		g.POST("/send-otp", a.SendOTP)
		g.POST("/verify-otp", a.VerifyOTP)
	}
	// Lives outside the /v1/admin group so it is reachable without a
	// token.
	e.POST("/v1/admin/login", a.AdminLogin)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.GET("/me/stats", a.MyStats)
	auth.POST("/auth/logout", a.Logout)
}
