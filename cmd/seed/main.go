// Command seed provisions the baseline data a fresh install needs: the
// rate card for both game types and the admin account.  It is safe to
// run repeatedly; every write is an upsert.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/config"
	"github.com/Visheshvd/playarena/internal/database"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/repository"
	"github.com/Visheshvd/playarena/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pricing := repository.NewPricingRepo(db)
	for _, p := range []model.Pricing{
		{GameType: booking.GamePool, PricePerHourCents: 30000, Currency: "INR", IsActive: true},
		{GameType: booking.GameSnooker, PricePerHourCents: 40000, Currency: "INR", IsActive: true},
	} {
		if err := pricing.Upsert(ctx, &p); err != nil {
			log.Fatalf("seed pricing %s: %v", p.GameType, err)
		}
		log.Printf("pricing %s: %d cents/hour", p.GameType, p.PricePerHourCents)
	}

	mobile := os.Getenv("ADMIN_MOBILE")
	password := os.Getenv("ADMIN_PASSWORD")
	if mobile == "" || password == "" {
		log.Println("ADMIN_MOBILE/ADMIN_PASSWORD not set, skipping admin account")
		return
	}
	if !utils.ValidMobile(mobile) {
		log.Fatalf("ADMIN_MOBILE must be a 10-digit number")
	}
	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}
	users := repository.NewUserRepo(db)
	id, err := users.UpsertAdmin(ctx, mobile, name, hash)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("admin account ready (id=%d)", id)
}
