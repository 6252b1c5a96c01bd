// Command seed provisions demo users and products for local runs. User rows
// normally come from the auth service; this exists so fulfillment can be
// exercised on an empty database.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/internal/repo"
	"github.com/swiftcart/fulfillment/pkg/config"
	"github.com/swiftcart/fulfillment/pkg/db"
	"github.com/swiftcart/fulfillment/pkg/hash"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found, using system environment")
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.AutoMigrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	pwHash, err := hash.HashPassword("password")
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}

	seller := models.User{ID: uuid.New(), Name: "Demo Seller", Phone: "08030000001", Role: models.RoleSeller, PasswordHash: pwHash}
	buyer := models.User{ID: uuid.New(), Name: "Demo Buyer", Phone: "08030000002", Role: models.RoleBuyer, PasswordHash: pwHash}
	rider := models.User{ID: uuid.New(), Name: "Demo Rider", Phone: "08030000003", Role: models.RoleRider, PasswordHash: pwHash}

	for _, u := range []models.User{seller, buyer, rider} {
		if err := database.WithContext(ctx).Create(&u).Error; err != nil {
			log.Fatalf("seed user %s: %v", u.Name, err)
		}
		log.Printf("created %s %s (%s)", u.Role, u.Name, u.ID)
	}

	products := []models.Product{
		{ID: uuid.New(), SellerID: seller.ID, Name: "Jollof Rice Pack", Price: 2500, Stock: 50},
		{ID: uuid.New(), SellerID: seller.ID, Name: "Chicken Suya", Price: 3500, Stock: 30},
		{ID: uuid.New(), SellerID: seller.ID, Name: "Chapman Bottle", Price: 1200, Stock: 100},
	}
	for _, p := range products {
		if err := database.WithContext(ctx).Create(&p).Error; err != nil {
			log.Fatalf("seed product %s: %v", p.Name, err)
		}
		log.Printf("created product %s (%s)", p.Name, p.ID)
	}
}
