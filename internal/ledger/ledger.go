// Package ledger is the stock ledger: checkout (stock-out), purchase
// receipt (stock-in), receipt assembly, and the dashboard summary.
//
// Consistency model: each line item is its own atomic conditional update on
// one product document. The item loop as a whole is NOT transactional — a
// checkout that fails on line 3 leaves lines 1 and 2 applied and performs no
// compensation. That partial application is accepted and surfaced, never
// hidden. Purchase and Sale documents are append-only history; they are
// never replayed to rebuild quantities.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/auth"
	"stockflow/internal/models"
	"stockflow/internal/store"
)

// ErrValidation marks a malformed request (empty cart, non-positive
// quantity, negative price). Handlers turn it into a 400.
var ErrValidation = errors.New("validation failed")

// InsufficientStockError aborts a checkout, naming the offending product.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "Not enough stock for " + e.ProductName
}

// Service applies stock-changing operations against the store.
type Service struct {
	store store.Store
}

// NewService builds the ledger service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// SaleLine is one requested line of a checkout. The selling price is taken
// from the submitted cart; the total is always recomputed server-side.
type SaleLine struct {
	ProductID    primitive.ObjectID
	Quantity     int
	SellingPrice float64
}

// PurchaseLine is one requested line of a purchase receipt.
type PurchaseLine struct {
	ProductID primitive.ObjectID
	Quantity  int
	CostPrice float64
}

// Checkout sells the given lines: for each line it performs an atomic
// conditional decrement of the product's stock, then records one immutable
// Sale document. A line that cannot be satisfied aborts the checkout with
// InsufficientStockError; earlier lines stay applied.
func (s *Service) Checkout(ctx context.Context, cashier auth.Principal, lines []SaleLine, paymentMethod string) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no items in sale", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if line.SellingPrice < 0 {
			return nil, fmt.Errorf("%w: selling price cannot be negative", ErrValidation)
		}
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	for _, line := range lines {
		ok, err := s.store.Products().DecrementQuantity(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &InsufficientStockError{ProductName: s.productName(ctx, line.ProductID)}
		}
	}

	sale := &models.Sale{
		Items:         make([]models.SaleItem, 0, len(lines)),
		PaymentMethod: paymentMethod,
		Date:          time.Now().UTC(),
		CashierID:     cashier.UserID,
		CashierName:   cashier.Username,
	}
	for _, line := range lines {
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			SellingPrice: line.SellingPrice,
		})
		sale.TotalAmount += float64(line.Quantity) * line.SellingPrice
	}

	if err := s.store.Sales().Insert(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// RecordPurchase receives stock from a supplier: every line increments its
// product unconditionally (max_stock is advisory metadata, never enforced),
// then one immutable Purchase document is recorded.
func (s *Service) RecordPurchase(ctx context.Context, supplierID primitive.ObjectID, lines []PurchaseLine) (*models.Purchase, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no items in purchase", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if line.CostPrice < 0 {
			return nil, fmt.Errorf("%w: cost price cannot be negative", ErrValidation)
		}
	}

	for _, line := range lines {
		if err := s.store.Products().IncrementQuantity(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	purchase := &models.Purchase{
		SupplierID: supplierID,
		Items:      make([]models.PurchaseItem, 0, len(lines)),
		Date:       time.Now().UTC(),
	}
	for _, line := range lines {
		purchase.Items = append(purchase.Items, models.PurchaseItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			CostPrice: line.CostPrice,
		})
		purchase.TotalCost += float64(line.Quantity) * line.CostPrice
	}

	if err := s.store.Purchases().Insert(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// productName is a best-effort lookup for error messages.
func (s *Service) productName(ctx context.Context, id primitive.ObjectID) string {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return "Unknown"
	}
	return product.Name
}
