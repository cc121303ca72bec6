// Package store defines the typed document-store contract the rest of the
// application talks to, plus its MongoDB and in-memory implementations.
//
// The only concurrency primitive the contract offers is the conditional
// decrement on a product's current_quantity: filter and mutation travel in a
// single update call, so two concurrent checkouts can never jointly overdraw
// a product. Nothing spanning more than one document is transactional.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
)

var (
	// ErrNotFound is returned when a lookup by ID or username matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID marks a malformed object ID. Callers treat it as not-found.
	ErrInvalidID = errors.New("invalid id")
)

// ParseID converts an ID from the outside world into an ObjectID.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Store bundles the per-collection stores.
type Store interface {
	Users() UserStore
	Businesses() BusinessStore
	Products() ProductStore
	Suppliers() SupplierStore
	Purchases() PurchaseStore
	Sales() SaleStore
}

// UserStore covers the users collection.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindByUsername matches exactly, case-sensitive.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	FindByBusinessAndRole(ctx context.Context, businessID primitive.ObjectID, role string) ([]models.User, error)
	Insert(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBusinessAndRole(ctx context.Context, businessID primitive.ObjectID, role string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// BusinessStore covers the businesses collection.
type BusinessStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error)
	// List returns businesses newest first.
	List(ctx context.Context) ([]models.Business, error)
	Insert(ctx context.Context, b *models.Business) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductUpdate is the editable field set of a product. Updates replace
// exactly these fields; there is no per-field merge.
type ProductUpdate struct {
	Name            string
	Description     string
	Unit            string
	PurchasePrice   float64
	SellingPrice    float64
	MinStock        int
	MaxStock        *int
	CurrentQuantity int
}

// ProductStore covers the products collection.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	// ListInStock returns products with current_quantity > 0, for the POS screen.
	ListInStock(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DecrementQuantity subtracts qty from current_quantity only if the
	// product still has at least qty on hand. Filter and decrement are a
	// single atomic call; false means the precondition did not hold (or the
	// product is gone).
	DecrementQuantity(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	// IncrementQuantity adds qty unconditionally. max_stock is advisory and
	// never checked here.
	IncrementQuantity(ctx context.Context, id primitive.ObjectID, qty int) error
}

// SupplierUpdate is the editable field set of a supplier.
type SupplierUpdate struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

// SupplierStore covers the suppliers collection.
type SupplierStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error)
	List(ctx context.Context) ([]models.Supplier, error)
	Insert(ctx context.Context, s *models.Supplier) error
	Update(ctx context.Context, id primitive.ObjectID, upd SupplierUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PurchaseStore covers the purchases collection. Purchases are append-only.
type PurchaseStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error)
	// List returns purchases newest first.
	List(ctx context.Context) ([]models.Purchase, error)
	Insert(ctx context.Context, p *models.Purchase) error
}

// SaleStore covers the sales collection. Sales are append-only.
type SaleStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error)
	// List returns sales newest first.
	List(ctx context.Context) ([]models.Sale, error)
	Insert(ctx context.Context, s *models.Sale) error
}
