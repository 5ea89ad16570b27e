package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/identity"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/datamark/backend/internal/infrastructure/config"
	"github.com/datamark/backend/internal/infrastructure/logger"
	"github.com/datamark/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	demoStoreName = "Demo Store"
	demoAdminMail = "admin@demo.com"
	demoAdminPass = "admin123"
)

type demoProduct struct {
	name     string
	category string
	sku      string
	price    string
	cost     string
	stock    int
}

var demoProducts = []demoProduct{
	{"Espresso Beans 1kg", "Coffee", "COF-001", "18.50", "9.20", 40},
	{"Filter Coffee 500g", "Coffee", "COF-002", "9.90", "4.80", 60},
	{"Ceramic Mug", "Accessories", "ACC-001", "7.50", "2.10", 120},
	{"Travel Tumbler", "Accessories", "ACC-002", "14.00", "6.30", 35},
	{"Green Tea Box", "Tea", "TEA-001", "6.40", "2.90", 80},
}

// Seeds a demo store with an admin user and a starter catalog.
// Safe to run repeatedly: existing records are left untouched.
func main() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// The admin user anchors idempotency: if it exists, the store and
	// catalog were seeded before.
	admin, err := userRepo.FindByEmail(ctx, demoAdminMail)
	switch {
	case err == nil:
		log.Info("Demo data already seeded", zap.String("admin", admin.Email))
	case errors.Is(err, shared.ErrNotFound):
		store, err := identity.NewStore(demoStoreName)
		if err != nil {
			log.Fatal("Failed to build demo store", zap.Error(err))
		}
		if err := storeRepo.Save(ctx, store); err != nil {
			log.Fatal("Failed to save demo store", zap.Error(err))
		}
		log.Info("Demo store created", zap.String("id", store.ID.String()))

		admin, err = identity.NewUser(store.ID, demoAdminMail, demoAdminPass, "Demo Admin", identity.UserRoleAdmin)
		if err != nil {
			log.Fatal("Failed to build admin user", zap.Error(err))
		}
		if err := userRepo.Save(ctx, admin); err != nil {
			log.Fatal("Failed to save admin user", zap.Error(err))
		}
		log.Info("Admin user created", zap.String("email", admin.Email))
	default:
		log.Fatal("Failed to check for existing seed data", zap.Error(err))
	}

	created := 0
	for _, dp := range demoProducts {
		exists, err := productRepo.ExistsBySKU(ctx, admin.StoreID, dp.sku)
		if err != nil {
			log.Fatal("Failed to check product SKU", zap.String("sku", dp.sku), zap.Error(err))
		}
		if exists {
			continue
		}

		product, err := catalog.NewProduct(admin.StoreID, dp.name, dp.category)
		if err != nil {
			log.Fatal("Failed to build product", zap.String("name", dp.name), zap.Error(err))
		}
		if err := product.SetSKU(dp.sku); err != nil {
			log.Fatal("Failed to set SKU", zap.String("sku", dp.sku), zap.Error(err))
		}
		price, _ := decimal.NewFromString(dp.price)
		cost, _ := decimal.NewFromString(dp.cost)
		if err := product.SetPricing(price, cost); err != nil {
			log.Fatal("Failed to set pricing", zap.String("name", dp.name), zap.Error(err))
		}
		if err := product.SetStock(dp.stock); err != nil {
			log.Fatal("Failed to set stock", zap.String("name", dp.name), zap.Error(err))
		}

		if err := productRepo.Save(ctx, product); err != nil {
			log.Fatal("Failed to save product", zap.String("name", dp.name), zap.Error(err))
		}
		created++
	}

	log.Info("Seed complete",
		zap.String("store_id", admin.StoreID.String()),
		zap.Int("products_created", created),
	)
}
