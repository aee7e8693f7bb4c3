package main

import (
	"log"
	"net/http"
	"time"

	"overcooked-ordering/api-gateway/internal/gateway"
	"overcooked-ordering/config"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()

	gw := gateway.NewGateway(gateway.Config{
		PricingSvcURL: config.GetEnv("PRICING_SVC_URL", "http://localhost:8084"),
		PromoSvcURL:   config.GetEnv("PROMO_SVC_URL", "http://localhost:8085"),
		StaticDir:     config.GetEnv("STATIC_DIR", "./frontend"),
	}, &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", 10*time.Second)})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(gw.SetupRoutes())

	addr := ":" + config.GetEnv("GATEWAY_PORT", "8080")
	log.Printf("API Gateway starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
