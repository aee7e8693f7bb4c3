package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"overcooked-ordering/config"
	httpapi "overcooked-ordering/promo-agg-svc/internal/api/http"
	"overcooked-ordering/promo-agg-svc/internal/service"
	"overcooked-ordering/promo-agg-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	store := storage.NewStore(db, rdb)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	reader := config.NewKafkaReader(config.EventTopic(), "promo-agg-svc-consumer")
	defer reader.Close()

	reports := service.NewReportService(store, config.RestaurantLocation())
	go httpapi.StartServer(":"+config.GetEnv("PORT", "8085"), httpapi.NewRouter(httpapi.NewHandler(reports)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, store)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Consumer exited: %v", err)
	}
}
