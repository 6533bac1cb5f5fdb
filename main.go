package main

import (
	"context"
	"log"
	"os"

	"github.com/valyala/fasthttp"

	"plan-engine/internal/catalogsource"
	"plan-engine/internal/engine"
	"plan-engine/internal/handler"
	"plan-engine/internal/metrics"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := catalogsource.ConfigFromEnv()
	c, err := catalogsource.Load(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Catalog load failed: %v", err)
	}
	log.Printf("Loaded catalog %s from %s source (%d prices, %d overrides)",
		c.Version(), cfg.Driver, c.PriceCount(), len(c.Overrides()))

	h, err := handler.New(engine.New(c), metrics.New())
	if err != nil {
		log.Fatalf("Handler setup failed: %v", err)
	}

	log.Printf("Plan engine starting on port %s", port)
	if err := fasthttp.ListenAndServe(":"+port, h.Serve); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
