package main

import (
	"context"
	"fmt"
	"log"

	"github.com/example/patterns-shop/config"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/order"
	"github.com/example/patterns-shop/modules/shop"
)

const auditSummarySize = 5

// loadSeed ingests the seed catalog and registers the seed accounts.
func loadSeed(ctx context.Context, facade *shop.Facade, seed *config.Seed) error {
	for _, p := range seed.Products {
		if err := facade.AddProduct(ctx, p); err != nil {
			return fmt.Errorf("failed to ingest product %d: %w", p.ID, err)
		}
	}
	for _, u := range seed.Users {
		if _, err := facade.Register(u.User(), u.Password); err != nil {
			return fmt.Errorf("failed to register %s: %w", u.Email, err)
		}
	}
	return nil
}

// runDemo walks one client through browsing, buying and reporting.
func runDemo(ctx context.Context, facade *shop.Facade, seed *config.Seed) error {
	if err := loadSeed(ctx, facade, seed); err != nil {
		return err
	}
	if len(seed.Users) == 0 {
		return fmt.Errorf("seed has no users to log in with")
	}
	user := seed.Users[0]

	session, err := facade.Login(user.Email, user.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	log.Println("--- Available catalog ---")
	facade.ViewCatalog(&catalog.Filters{AvailableOnly: true})

	log.Println("--- Search 'shoes' ---")
	for _, p := range facade.Search("shoes") {
		log.Printf("  %d: %s", p.ID, p.Name)
	}

	clientID := user.ID
	for _, item := range []struct{ productID, quantity int }{{101, 2}, {102, 1}} {
		cart, err := facade.AddToCart(clientID, item.productID, item.quantity)
		if err != nil {
			return fmt.Errorf("add to cart failed: %w", err)
		}
		log.Printf("Cart total before payment: %.2f", cart.Total)
	}

	log.Println("--- Processing purchase ---")
	invoice, err := facade.FinalizeCheckout(ctx, clientID, clientID, order.PaymentInfo{
		Method: "card",
		Number: "4111-****",
	})
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}
	log.Printf("Invoice #%d for %s: %.2f (%s)",
		invoice.ID, invoice.Client.Name, invoice.Total, invoice.Authorization)

	log.Println("--- Catalog after purchase ---")
	facade.ViewCatalog(nil)

	log.Println("--- Accounting balance ---")
	balance := facade.Balance()
	log.Printf("Income %.2f, expenses %.2f, balance %.2f", balance.Income, balance.Expenses, balance.Balance)

	log.Println("--- Audit summary ---")
	for _, r := range facade.RecentAudit(auditSummarySize) {
		log.Printf("  %s | product %d | %s", r.Timestamp.Format("15:04:05"), r.ProductID, r.Event)
	}

	if err := facade.Logout(session.Token); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
