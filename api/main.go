package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/storefront/internal/cache"
	"github.com/rogerio-castellano/storefront/internal/config"
	"github.com/rogerio-castellano/storefront/internal/db"
	api "github.com/rogerio-castellano/storefront/internal/http"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
)

// @title Storefront API
// @version 1.0
// @description REST API for a product catalog with an inventory-aware shopping cart.
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.Load()

	var products repo.ProductRepository
	var items repo.CartRepository

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		products = repo.NewPostgresProductRepository(database)
		items = repo.NewPostgresCartRepository(database)
	} else {
		log.Println("DATABASE_URL not set, using in-memory storage")
		memProducts := repo.NewInMemoryProductRepository()
		seedCatalog(memProducts)
		products = memProducts
		items = repo.NewInMemoryCartRepository()
	}

	var catalogCache *cache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		cancel()
		defer rdb.Close()
		catalogCache = cache.New(rdb, cfg.CacheTTL)
	}

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartVisitorCleanupLoop()

	h := handlers.New(products, items, catalogCache)
	r := api.NewRouter(h, limiter)

	log.Println("✅ Server running on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}

// seedCatalog fills the in-memory backend with a small demo catalog so the
// storefront has something to show out of the box.
func seedCatalog(products *repo.InMemoryProductRepository) {
	samples := []models.Product{
		{
			Name:      "Premium Watch",
			Price:     decimal.RequireFromString("199.99"),
			Image:     "https://images.unsplash.com/photo-1523275335684-37898b6baf30",
			Category:  "accessories",
			Inventory: 10,
		},
		{
			Name:      "Wireless Headphones",
			Price:     decimal.RequireFromString("159.99"),
			Image:     "https://images.unsplash.com/photo-1505740420928-5e560c06d30e",
			Category:  "audio",
			Inventory: 25,
		},
		{
			Name:      "Smart Watch",
			Price:     decimal.RequireFromString("299.99"),
			Image:     "https://images.unsplash.com/photo-1596460107916-430662021049",
			Category:  "accessories",
			Inventory: 8,
		},
		{
			Name:      "Coffee Maker",
			Price:     decimal.RequireFromString("79.99"),
			Image:     "https://images.unsplash.com/photo-1615615228002-890bb61cac6e",
			Category:  "kitchen",
			Inventory: 15,
		},
	}
	for _, p := range samples {
		if _, err := products.Create(p); err != nil {
			log.Printf("seeding catalog: %v", err)
		}
	}
}
