package api

import (
	"errors"
	"strconv"

	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/order"
	"github.com/gofiber/fiber/v2"
)

const defaultAuditLimit = 5

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api/v1")

	authRequired := AuthMiddleware(m.shop)

	products := api.Group("/products")
	products.Get("/", m.listProducts)
	products.Get("/search", m.searchProducts)
	products.Post("/", authRequired, m.createProduct)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", m.login)
	authGroup.Post("/logout", authRequired, m.logout)

	carts := api.Group("/carts")
	carts.Get("/:id", authRequired, CartOwnerMiddleware(), m.getCart)
	carts.Post("/:id/items", authRequired, CartOwnerMiddleware(), m.addItem)
	carts.Post("/:id/checkout", authRequired, CartOwnerMiddleware(), m.checkout)

	api.Get("/accounting/balance", m.balance)
	api.Get("/audit", m.audit)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// listProducts handles GET /api/v1/products.
// Optional query parameters: min_price, max_price, available.
func (m *APIModule) listProducts(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	items, err := m.shop.ListProducts(c.UserContext(), filters)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(ProductListResponse{Products: items, Count: len(items)})
}

// searchProducts handles GET /api/v1/products/search?q=.
func (m *APIModule) searchProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Query parameter q is required",
		})
	}

	items, err := m.shop.SearchProducts(c.UserContext(), query)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(ProductListResponse{Products: items, Count: len(items)})
}

// createProduct handles POST /api/v1/products.
func (m *APIModule) createProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if req.ID <= 0 || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Product id and name are required",
		})
	}

	p := domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := m.shop.AddProduct(c.UserContext(), p); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// login handles POST /api/v1/auth/login.
func (m *APIModule) login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	session, err := m.shop.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid email or password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "login_failed",
			Message: err.Error(),
		})
	}

	return c.JSON(TokenResponse{
		AccessToken: session.Token,
		ExpiresIn:   session.ExpiresIn,
		TokenType:   session.TokenType,
	})
}

// logout handles POST /api/v1/auth/logout.
func (m *APIModule) logout(c *fiber.Ctx) error {
	token, _ := c.Locals(TokenContextKey).(string)
	if err := m.shop.Logout(c.UserContext(), token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// getCart handles GET /api/v1/carts/:id.
func (m *APIModule) getCart(c *fiber.Ctx) error {
	cartID, _ := c.ParamsInt("id")

	cart, err := m.shop.Cart(c.UserContext(), cartID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toCartResponse(cart))
}

// addItem handles POST /api/v1/carts/:id/items.
func (m *APIModule) addItem(c *fiber.Ctx) error {
	cartID, _ := c.ParamsInt("id")

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	cart, err := m.shop.AddToCart(c.UserContext(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCartResponse(cart))
}

// checkout handles POST /api/v1/carts/:id/checkout.
func (m *APIModule) checkout(c *fiber.Ctx) error {
	cartID, _ := c.ParamsInt("id")

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	invoice, err := m.shop.Checkout(c.UserContext(), cartID, cartID, order.PaymentInfo{
		Method: req.Method,
		Number: req.Number,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(invoice))
}

// balance handles GET /api/v1/accounting/balance.
func (m *APIModule) balance(c *fiber.Ctx) error {
	balance, err := m.shop.Balance(c.UserContext())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(balance)
}

// audit handles GET /api/v1/audit?limit=.
func (m *APIModule) audit(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultAuditLimit)
	records, err := m.shop.RecentAudit(c.UserContext(), limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(AuditResponse{Records: records, Count: len(records)})
}

// parseFilters reads catalog filters from the query string. It returns nil
// when no filter is given.
func parseFilters(c *fiber.Ctx) (*catalog.Filters, error) {
	var filters catalog.Filters
	set := false

	if v := c.Query("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("min_price must be a number")
		}
		filters.MinPrice = &price
		set = true
	}
	if v := c.Query("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("max_price must be a number")
		}
		filters.MaxPrice = &price
		set = true
	}
	if c.QueryBool("available") {
		filters.AvailableOnly = true
		set = true
	}

	if !set {
		return nil, nil
	}
	return &filters, nil
}
