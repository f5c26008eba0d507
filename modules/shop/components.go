// Package shop composes the shop services behind a single facade and
// exposes them to the mono application.
package shop

import (
	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/events"
	"github.com/example/patterns-shop/modules/accounting"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/eventbus"
	"github.com/example/patterns-shop/modules/inventory"
	"github.com/example/patterns-shop/modules/observer"
	"github.com/example/patterns-shop/modules/order"
	"github.com/example/patterns-shop/modules/product"
	"github.com/go-monolith/mono/pkg/types"
)

// Options configures the collaborators that vary between runs.
type Options struct {
	JWT        auth.JWTConfig
	BcryptCost int
	// Gateway defaults to an always-approving stub.
	Gateway order.PaymentGateway
}

// Components holds every service sharing one Store and one event bus.
type Components struct {
	Store         *domain.Store
	Bus           *eventbus.EventBus
	Products      *product.Repository
	Inventory     *inventory.Service
	Accounting    *accounting.Service
	Orders        *order.Service
	Catalog       *catalog.Service
	Auth          *auth.Service
	Audit         *observer.AuditLog
	Sales         *observer.SalesTally
	Notifications *observer.LogSender
}

// Build constructs the services and subscribes the process-wide observers:
//
//	product.updated -> audit, notification
//	sale.completed  -> sales tally, audit, notification
//	order.completed -> audit
//
// Cart observers are registered per cart by the facade.
func Build(opts Options, logger types.Logger) *Components {
	store := domain.NewStore()
	bus := eventbus.New(logger.WithModule("eventbus"))
	repo := product.NewRepository(store)

	gateway := opts.Gateway
	if gateway == nil {
		gateway = order.NewStubGateway(logger.WithModule("payment"))
	}

	inv := inventory.NewService(repo, bus, logger.WithModule("inventory"))
	acct := accounting.NewService(logger.WithModule("accounting"))

	c := &Components{
		Store:      store,
		Bus:        bus,
		Products:   repo,
		Inventory:  inv,
		Accounting: acct,
		Orders:     order.NewService(store, repo, inv, acct, bus, gateway, logger.WithModule("order")),
		Catalog:    catalog.NewService(repo),
		Auth: auth.NewService(store,
			auth.NewPasswordHasher(opts.BcryptCost),
			auth.NewJWTManager(opts.JWT),
			logger.WithModule("auth")),
		Audit:         observer.NewAuditLog(logger.WithModule("audit")),
		Sales:         observer.NewSalesTally(store, logger.WithModule("sales")),
		Notifications: observer.NewLogSender(logger.WithModule("notification")),
	}

	notifier := observer.NewNotifier(store, c.Notifications)
	observer.Register(bus, c.Audit, events.KindProductUpdated)
	observer.Register(bus, notifier, events.KindProductUpdated)
	observer.Register(bus, c.Sales, events.KindSaleCompleted)
	observer.Register(bus, c.Audit, events.KindSaleCompleted)
	observer.Register(bus, notifier, events.KindSaleCompleted)
	observer.Register(bus, c.Audit, events.KindOrderCompleted)

	return c
}
