// Package catalog owns product and supplier CRUD. Deletes are
// unconditional: nothing checks for purchases or sales that still reference
// the record, and those render as "Unknown" afterwards.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
	"stockflow/internal/store"
)

// ErrValidation marks a rejected field value.
var ErrValidation = errors.New("validation failed")

// defaultMinStock is the reorder threshold applied when a product is
// created without one.
const defaultMinStock = 10

// Service implements the catalog operations.
type Service struct {
	store store.Store
}

// NewService builds the catalog service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// ProductInput is the editable field set of a product. MinStock is a
// pointer so "omitted" (take the default) and "explicitly zero" stay
// distinguishable; MaxStock is genuinely nullable.
type ProductInput struct {
	Name            string
	Description     string
	Unit            string
	PurchasePrice   float64
	SellingPrice    float64
	MinStock        *int
	MaxStock        *int
	CurrentQuantity int
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Unit == "" {
		in.Unit = "piece"
	}
	if in.PurchasePrice < 0 || in.SellingPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", ErrValidation)
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return fmt.Errorf("%w: min_stock cannot be negative", ErrValidation)
	}
	if in.MaxStock != nil && *in.MaxStock < 0 {
		return fmt.Errorf("%w: max_stock cannot be negative", ErrValidation)
	}
	if in.CurrentQuantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	minStock := defaultMinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}

	product := &models.Product{
		Name:            in.Name,
		Description:     in.Description,
		Unit:            in.Unit,
		PurchasePrice:   in.PurchasePrice,
		SellingPrice:    in.SellingPrice,
		MinStock:        minStock,
		MaxStock:        in.MaxStock,
		CurrentQuantity: in.CurrentQuantity,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Products().Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the editable field set of an existing product.
// A MinStock left out of the submission keeps the stored value.
func (s *Service) UpdateProduct(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	minStock := existing.MinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	upd := store.ProductUpdate{
		Name:            in.Name,
		Description:     in.Description,
		Unit:            in.Unit,
		PurchasePrice:   in.PurchasePrice,
		SellingPrice:    in.SellingPrice,
		MinStock:        minStock,
		MaxStock:        in.MaxStock,
		CurrentQuantity: in.CurrentQuantity,
	}
	if err := s.store.Products().Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.store.Products().FindByID(ctx, id)
}

// GetProduct fetches one product.
func (s *Service) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.store.Products().FindByID(ctx, id)
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.Products().List(ctx)
}

// ListInStock returns only sellable products, for the POS screen.
func (s *Service) ListInStock(ctx context.Context) ([]models.Product, error) {
	return s.store.Products().ListInStock(ctx)
}

// DeleteProduct removes a product unconditionally.
func (s *Service) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Products().Delete(ctx, id)
}

// SupplierInput is the editable field set of a supplier.
type SupplierInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

func (in SupplierInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// CreateSupplier validates and stores a new supplier.
func (s *Service) CreateSupplier(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	supplier := &models.Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Suppliers().Insert(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier replaces the editable field set of an existing supplier.
func (s *Service) UpdateSupplier(ctx context.Context, id primitive.ObjectID, in SupplierInput) (*models.Supplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	upd := store.SupplierUpdate{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
	}
	if err := s.store.Suppliers().Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.store.Suppliers().FindByID(ctx, id)
}

// GetSupplier fetches one supplier.
func (s *Service) GetSupplier(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	return s.store.Suppliers().FindByID(ctx, id)
}

// ListSuppliers returns every supplier.
func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.store.Suppliers().List(ctx)
}

// DeleteSupplier removes a supplier unconditionally. Purchases keep their
// dangling supplier reference.
func (s *Service) DeleteSupplier(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Suppliers().Delete(ctx, id)
}
