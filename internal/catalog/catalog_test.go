package catalog

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/store"
)

func newTestService() (*Service, *store.Memory) {
	mem := store.NewMemory()
	return NewService(mem), mem
}

func intPtr(n int) *int { return &n }

func TestCreateProductDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Soap"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.MinStock != 10 {
		t.Errorf("min stock = %d, want default 10", product.MinStock)
	}
	if product.Unit != "piece" {
		t.Errorf("unit = %q, want piece", product.Unit)
	}
	if product.MaxStock != nil {
		t.Errorf("max stock = %v, want nil", product.MaxStock)
	}

	// An explicit zero is not "omitted" and must survive.
	product, err = svc.CreateProduct(ctx, ProductInput{Name: "Rice", MinStock: intPtr(0)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.MinStock != 0 {
		t.Errorf("min stock = %d, want explicit 0", product.MinStock)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   ProductInput
	}{
		{"missing name", ProductInput{}},
		{"negative price", ProductInput{Name: "Soap", SellingPrice: -1}},
		{"negative min stock", ProductInput{Name: "Soap", MinStock: intPtr(-1)}},
		{"negative quantity", ProductInput{Name: "Soap", CurrentQuantity: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateProduct(ctx, tc.in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateProductKeepsMinStockWhenOmitted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Soap", MinStock: intPtr(7)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateProduct(ctx, product.ID, ProductInput{
		Name: "Bar Soap", Unit: "bar", CurrentQuantity: 3,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Bar Soap" || updated.CurrentQuantity != 3 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.MinStock != 7 {
		t.Errorf("min stock = %d, want retained 7", updated.MinStock)
	}

	updated, err = svc.UpdateProduct(ctx, product.ID, ProductInput{
		Name: "Bar Soap", MinStock: intPtr(2),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.MinStock != 2 {
		t.Errorf("min stock = %d, want 2", updated.MinStock)
	}

	if _, err := svc.UpdateProduct(ctx, primitive.NewObjectID(), ProductInput{Name: "x"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing product err = %v, want ErrNotFound", err)
	}
}

func TestSupplierCRUD(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateSupplier(ctx, SupplierInput{}); !errors.Is(err, ErrValidation) {
		t.Errorf("nameless supplier err = %v, want ErrValidation", err)
	}

	supplier, err := svc.CreateSupplier(ctx, SupplierInput{Name: "Acme Traders", Phone: "0800"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateSupplier(ctx, supplier.ID, SupplierInput{Name: "Acme Ltd"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Acme Ltd" {
		t.Errorf("name = %q, want Acme Ltd", updated.Name)
	}
	// The update replaces the whole field set; the old phone is gone.
	if updated.Phone != "" {
		t.Errorf("phone = %q, want cleared", updated.Phone)
	}

	if err := svc.DeleteSupplier(ctx, supplier.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := mem.Suppliers().FindByID(ctx, supplier.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("supplier still present after delete")
	}
}
