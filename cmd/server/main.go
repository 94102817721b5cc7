package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Visheshvd/playarena/internal/config"
	"github.com/Visheshvd/playarena/internal/database"
	"github.com/Visheshvd/playarena/internal/handler"
	"github.com/Visheshvd/playarena/internal/middleware"
	"github.com/Visheshvd/playarena/internal/queue"
	"github.com/Visheshvd/playarena/internal/repository"
	"github.com/Visheshvd/playarena/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs rate limiting, response caching and the OTP store.
	// nil means degraded mode: limits and cache off, OTP login reports
	// a configuration error.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting, caching and otp login degraded")
	}

	users := repository.NewUserRepo(db)
	bookings := repository.NewBookingRepo(db)
	matches := repository.NewMatchRepo(db)
	pricing := repository.NewPricingRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	authH := &handler.AuthHandler{Cfg: cfg, Users: users, Rdb: rdb}
	bookingH := &handler.BookingHandler{Cfg: cfg, Bookings: bookings, Pricing: pricing, Users: users}
	matchH := &handler.MatchHandler{Matches: matches}
	pricingH := &handler.PricingHandler{Pricing: pricing}
	leaderH := &handler.LeaderboardHandler{Users: users}
	notifH := &handler.NotificationHandler{Cfg: cfg, Subs: subs}
	adminBookingH := &handler.AdminBookingHandler{Bookings: bookings}
	adminMatchH := &handler.AdminMatchHandler{Matches: matches, Users: users}
	adminUserH := &handler.AdminUserHandler{Users: users, Matches: matches}
	adminStatsH := &handler.AdminStatsHandler{Users: users, Bookings: bookings, Matches: matches}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}
	otpLimit := middleware.NewTokenBucket(config.LoadOTPRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, pricingH, leaderH, matchH, bookingH, notifH, cache)
	router.RegisterAuth(e, authH, cfg.JWTSecret, otpLimit)
	router.RegisterCustomer(e, bookingH, matchH, notifH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminBookingH, adminMatchH, adminUserH, adminStatsH, pricingH, cfg.JWTSecret)

	// The consumer reconnects on its own; it never takes the API down.
	consumer := &queue.NotificationConsumer{Users: users, Subs: subs}
	go func() {
		if err := consumer.Start(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
