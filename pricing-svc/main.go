package main

import (
	"context"
	"log"
	"time"

	"overcooked-ordering/config"
	httpapi "overcooked-ordering/pricing-svc/internal/api/http"
	"overcooked-ordering/pricing-svc/internal/pricing"
	"overcooked-ordering/pricing-svc/internal/service"
	"overcooked-ordering/pricing-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.EventTopic())
	defer writer.Close()

	policy, err := pricing.ParseStackingPolicy(config.StackingMode())
	if err != nil {
		log.Fatal("Invalid OFFER_STACKING:", err)
	}

	clock := service.NewLocalClock(config.RestaurantLocation())
	cache := storage.NewRedisCache(rdb, config.GetDuration("CATALOG_CACHE_TTL", 5*time.Minute))
	catalogSvc := service.NewCatalogService(repo, cache, clock)
	if _, err := catalogSvc.Reload(context.Background()); err != nil {
		log.Printf("Initial catalog load failed: %v", err)
	}

	pricingSvc := service.NewPricingService(catalogSvc, clock, policy)
	orderSvc := service.NewOrderService(
		pricingSvc,
		repo,
		storage.NewKafkaPublisher(writer),
		service.DefaultQRGenerator{BaseURL: config.GetEnv("RECEIPT_BASE_URL", "http://localhost")},
		clock,
	)

	log.Printf("Offer stacking policy: %s, restaurant zone: %s", policy, clock.Location)

	handler := httpapi.NewHandler(pricingSvc, orderSvc)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8084"), httpapi.NewRouter(handler))
}
