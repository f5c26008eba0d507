package main

import (
	"context"
	"log"
	"os"

	"github.com/example/patterns-shop/config"
	"github.com/example/patterns-shop/modules/api"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/eventbus"
	"github.com/example/patterns-shop/modules/shop"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	cfg := config.Load()

	log.Println("=== Patterns Shop ===")
	log.Printf("HTTP enabled: %t (port %d)", cfg.HTTPEnabled, cfg.Port)
	log.Printf("Run demo: %t", cfg.RunDemo)

	seed, err := config.LoadSeed(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog seed: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	logger := app.Logger()

	components := shop.Build(shop.Options{
		JWT: auth.JWTConfig{
			SecretKey:     cfg.JWTSecret,
			TokenDuration: cfg.TokenTTL,
			Issuer:        "patterns-shop",
		},
		BcryptCost: cfg.BcryptCost,
	}, logger)
	facade := shop.NewFacade(components, logger.WithModule("facade"))

	// Order: the event bus first, then the shop, then the HTTP adapter.
	modules := []mono.Module{
		eventbus.NewModule(components.Bus, logger.WithModule("eventbus")),
		shop.NewModule(facade, logger.WithModule("shop")),
	}
	if cfg.HTTPEnabled {
		modules = append(modules, api.NewModule(cfg.Port, logger.WithModule("api")))
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register %s module: %v", m.Name(), err)
		}
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	if cfg.RunDemo {
		if err := runDemo(ctx, facade, seed); err != nil {
			log.Printf("Demo failed: %v", err)
		}
	} else if err := loadSeed(ctx, facade, seed); err != nil {
		log.Printf("Seeding failed: %v", err)
	}

	if !cfg.HTTPEnabled {
		if err := app.Stop(ctx); err != nil {
			log.Fatalf("Failed to stop application: %v", err)
		}
		return
	}

	printEndpoints(cfg.Port)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printEndpoints(port int) {
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  GET    /api/v1/products              - List catalog (min_price, max_price, available)")
	log.Println("  GET    /api/v1/products/search?q=    - Search catalog")
	log.Println("  POST   /api/v1/products              - Ingest a product (Bearer)")
	log.Println("  POST   /api/v1/auth/login            - Log in")
	log.Println("  POST   /api/v1/auth/logout           - Log out (Bearer)")
	log.Println("  GET    /api/v1/carts/:id             - View cart (Bearer)")
	log.Println("  POST   /api/v1/carts/:id/items       - Add to cart (Bearer)")
	log.Println("  POST   /api/v1/carts/:id/checkout    - Checkout (Bearer)")
	log.Println("  GET    /api/v1/accounting/balance    - Accounting balance")
	log.Println("  GET    /api/v1/audit?limit=          - Recent audit records")
	log.Println("  GET    /health                       - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
