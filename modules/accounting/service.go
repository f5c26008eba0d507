// Package accounting tracks the shop's income and expenses.
package accounting

import (
	"sync"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/go-monolith/mono/pkg/types"
)

// Service keeps running income and expense totals.
type Service struct {
	income   float64
	expenses float64
	logger   types.Logger
	mu       sync.RWMutex
}

// NewService creates a ledger with zero balance.
func NewService(logger types.Logger) *Service {
	return &Service{logger: logger}
}

// RecordIncome adds an invoice total to income.
func (s *Service) RecordIncome(inv shop.Invoice) {
	s.mu.Lock()
	s.income += inv.Total
	s.mu.Unlock()

	s.logger.Info("Income recorded", "invoiceID", inv.ID, "amount", inv.Total)
}

// RecordExpense adds amount to expenses.
func (s *Service) RecordExpense(amount float64) {
	s.mu.Lock()
	s.expenses += amount
	s.mu.Unlock()

	s.logger.Info("Expense recorded", "amount", amount)
}

// Income returns total income.
func (s *Service) Income() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.income
}

// Expenses returns total expenses.
func (s *Service) Expenses() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses
}

// Balance returns income minus expenses.
func (s *Service) Balance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.income - s.expenses
}
