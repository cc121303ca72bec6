package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
)

func TestParseID(t *testing.T) {
	valid := primitive.NewObjectID().Hex()
	id, err := ParseID(valid)
	if err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}
	if id.Hex() != valid {
		t.Errorf("round trip = %q, want %q", id.Hex(), valid)
	}

	if _, err := ParseID("not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestDecrementQuantityPrecondition(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	product := models.Product{Name: "Soap", CurrentQuantity: 3}
	if err := mem.Products().Insert(ctx, &product); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	ok, err := mem.Products().DecrementQuantity(ctx, product.ID, 3)
	if err != nil || !ok {
		t.Fatalf("decrement to zero: ok=%v err=%v", ok, err)
	}

	// Stock is exactly zero now; any further decrement must refuse.
	ok, err = mem.Products().DecrementQuantity(ctx, product.ID, 1)
	if err != nil {
		t.Fatalf("decrement err: %v", err)
	}
	if ok {
		t.Error("decrement below zero was allowed")
	}

	// Missing products also report no match rather than an error.
	ok, err = mem.Products().DecrementQuantity(ctx, primitive.NewObjectID(), 1)
	if err != nil || ok {
		t.Errorf("missing product decrement: ok=%v err=%v", ok, err)
	}
}

func TestDecrementQuantityConcurrent(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	product := models.Product{Name: "Soap", CurrentQuantity: 50}
	if err := mem.Products().Insert(ctx, &product); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := mem.Products().DecrementQuantity(ctx, product.ID, 1)
			if err != nil {
				t.Errorf("decrement err: %v", err)
				return
			}
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 50 {
		t.Errorf("succeeded = %d, want exactly 50", succeeded)
	}
	got, _ := mem.Products().FindByID(ctx, product.ID)
	if got.CurrentQuantity != 0 {
		t.Errorf("final quantity = %d, want 0", got.CurrentQuantity)
	}
}

func TestProductUpdateReplacesFieldSet(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	maxStock := 30
	product := models.Product{Name: "Soap", Unit: "piece", CurrentQuantity: 5, MinStock: 10}
	if err := mem.Products().Insert(ctx, &product); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	upd := ProductUpdate{
		Name: "Bar Soap", Description: "scented", Unit: "bar",
		PurchasePrice: 1.5, SellingPrice: 2.5, MinStock: 4,
		MaxStock: &maxStock, CurrentQuantity: 8,
	}
	if err := mem.Products().Update(ctx, product.ID, upd); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := mem.Products().FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.Name != "Bar Soap" || got.Unit != "bar" || got.CurrentQuantity != 8 {
		t.Errorf("updated product = %+v", got)
	}
	if got.MaxStock == nil || *got.MaxStock != 30 {
		t.Errorf("max stock = %v, want 30", got.MaxStock)
	}

	if err := mem.Products().Update(ctx, primitive.NewObjectID(), upd); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing update err = %v, want ErrNotFound", err)
	}
}

func TestUserStoreQueries(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	users := []models.User{
		{Username: "boss", Role: models.RoleSuperAdmin},
		{Username: "acme_admin", Role: models.RoleAdmin, BusinessID: &businessID},
		{Username: "acme_till", Role: models.RoleCashier, BusinessID: &businessID},
	}
	for i := range users {
		if err := mem.Users().Insert(ctx, &users[i]); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	if n, _ := mem.Users().Count(ctx); n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	u, err := mem.Users().FindByUsername(ctx, "acme_admin")
	if err != nil {
		t.Fatalf("find by username failed: %v", err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", u.Role)
	}
	if _, err := mem.Users().FindByUsername(ctx, "ACME_ADMIN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("username lookup is not case-sensitive: err = %v", err)
	}

	admins, err := mem.Users().FindByBusinessAndRole(ctx, businessID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("find by business failed: %v", err)
	}
	if len(admins) != 1 || admins[0].Username != "acme_admin" {
		t.Errorf("admins = %+v", admins)
	}

	deleted, err := mem.Users().DeleteByBusinessAndRole(ctx, businessID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if _, err := mem.Users().FindByUsername(ctx, "acme_till"); err != nil {
		t.Errorf("cashier was cascaded: %v", err)
	}
}

func TestListInStock(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	for _, p := range []models.Product{
		{Name: "Soap", CurrentQuantity: 3},
		{Name: "Rice", CurrentQuantity: 0},
	} {
		p := p
		if err := mem.Products().Insert(ctx, &p); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	inStock, err := mem.Products().ListInStock(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(inStock) != 1 || inStock[0].Name != "Soap" {
		t.Errorf("in stock = %+v, want just Soap", inStock)
	}
}
