package shop

import (
	"sync"
)

// Store provides in-memory storage for every shop record.
// One Store is constructed per process and handed to each service.
type Store struct {
	products     map[int]*Product
	productOrder []int
	clients      map[int]Client
	carts        map[int]*Cart
	invoices     map[int]Invoice
	users        map[string]User
	invoiceSeq   int
	mu           sync.RWMutex
}

// NewStore creates an empty store. The invoice sequence starts at 1.
func NewStore() *Store {
	return &Store{
		products:   make(map[int]*Product),
		clients:    make(map[int]Client),
		carts:      make(map[int]*Cart),
		invoices:   make(map[int]Invoice),
		users:      make(map[string]User),
		invoiceSeq: 1,
	}
}

// PutProduct inserts or replaces a product.
func (s *Store) PutProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		s.productOrder = append(s.productOrder, p.ID)
	}
	stored := p
	s.products[p.ID] = &stored
}

// Product returns a copy of the product with the given id.
func (s *Store) Product(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[id]
	if !exists {
		return Product{}, false
	}
	return *p, true
}

// Products returns copies of all products in insertion order.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		result = append(result, *s.products[id])
	}
	return result
}

// AddStock applies delta to a product's stock and returns the new value.
func (s *Store) AddStock(id, delta int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[id]
	if !exists {
		return 0, false
	}
	p.Stock += delta
	return p.Stock, true
}

// EnsureClient returns the client with the given id, creating a default
// record on first use.
func (s *Store) EnsureClient(id int) Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.clients[id]
	if !exists {
		c = DefaultClient(id)
		s.clients[id] = c
	}
	return c
}

// Client returns the client with the given id.
func (s *Store) Client(id int) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.clients[id]
	return c, exists
}

// PutClient inserts or replaces a client record.
func (s *Store) PutClient(c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c.ID] = c
}

// EnsureCart returns the cart owned by clientID, creating an empty one on
// first use. created reports whether the cart was just created.
func (s *Store) EnsureCart(clientID int) (cart Cart, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[clientID]
	if !exists {
		c = &Cart{ID: clientID, ClientID: clientID, Items: []LineItem{}}
		s.carts[clientID] = c
		created = true
	}
	return copyCart(c), created
}

// Cart returns a copy of the cart with the given id.
func (s *Store) Cart(id int) (Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.carts[id]
	if !exists {
		return Cart{}, false
	}
	return copyCart(c), true
}

// AppendLineItem appends an item to the end of a cart.
func (s *Store) AppendLineItem(cartID int, item LineItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[cartID]
	if !exists {
		return false
	}
	c.Items = append(c.Items, item)
	return true
}

// RemoveProductFromCart drops every line item for productID from a cart and
// returns how many were removed.
func (s *Store) RemoveProductFromCart(cartID, productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[cartID]
	if !exists {
		return 0
	}
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	removed := len(c.Items) - len(kept)
	c.Items = kept
	return removed
}

// SetCartTotal stores the cached total of a cart.
func (s *Store) SetCartTotal(cartID int, total float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[cartID]
	if !exists {
		return false
	}
	c.Total = total
	return true
}

// RepriceCart recomputes a cart's cached total from current product prices.
// Line items whose product no longer exists count as zero.
func (s *Store) RepriceCart(cartID int) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[cartID]
	if !exists {
		return 0, false
	}
	total := 0.0
	for _, item := range c.Items {
		if p, ok := s.products[item.ProductID]; ok {
			total += p.Price * float64(item.Quantity)
		}
	}
	c.Total = total
	return total, true
}

// ClearCart empties a cart and resets its cached total.
func (s *Store) ClearCart(cartID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[cartID]
	if !exists {
		return false
	}
	c.Items = []LineItem{}
	c.Total = 0
	return true
}

// NextInvoiceID allocates the next invoice id.
func (s *Store) NextInvoiceID() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.invoiceSeq
	s.invoiceSeq++
	return id
}

// SaveInvoice stores an invoice. Invoices are never replaced.
func (s *Store) SaveInvoice(inv Invoice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; exists {
		return false
	}
	inv.Items = append([]LineItem(nil), inv.Items...)
	s.invoices[inv.ID] = inv
	return true
}

// Invoice returns the invoice with the given id.
func (s *Store) Invoice(id int) (Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, exists := s.invoices[id]
	if !exists {
		return Invoice{}, false
	}
	inv.Items = append([]LineItem(nil), inv.Items...)
	return inv, true
}

// InvoiceCount returns the number of stored invoices.
func (s *Store) InvoiceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}

// PutUser inserts or replaces a user keyed by email.
func (s *Store) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.Email] = u
}

// UserByEmail returns the user registered with the given email.
func (s *Store) UserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[email]
	return u, exists
}

func copyCart(c *Cart) Cart {
	out := *c
	out.Items = append([]LineItem{}, c.Items...)
	return out
}
