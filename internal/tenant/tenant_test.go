package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/access"
	"stockflow/internal/auth"
	"stockflow/internal/models"
	"stockflow/internal/store"
)

func newTestService() (*Service, *store.Memory) {
	mem := store.NewMemory()
	return NewService(mem), mem
}

func TestCreateBusinessWithAdmin(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	business, admin, err := svc.CreateBusiness(ctx, "Acme", "Lagos", "acme_admin", "pw")
	if err != nil {
		t.Fatalf("create business failed: %v", err)
	}

	if business.Name != "Acme" || business.Location != "Lagos" {
		t.Errorf("business = %+v", business)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("admin role = %q, want admin", admin.Role)
	}
	if admin.BusinessID == nil || *admin.BusinessID != business.ID {
		t.Errorf("admin business id = %v, want %v", admin.BusinessID, business.ID)
	}
	if !auth.CheckPassword(admin.PasswordHash, "pw") {
		t.Error("admin password hash does not verify")
	}

	// The admin can log in and resolves the tenant display name.
	principal, err := access.NewService(mem).Authenticate(ctx, "acme_admin", "pw")
	if err != nil {
		t.Fatalf("admin authenticate failed: %v", err)
	}
	if principal.BusinessName != "Acme" {
		t.Errorf("business display name = %q, want Acme", principal.BusinessName)
	}
}

func TestCreateBusinessValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name                            string
		bizName, loc, username, password string
	}{
		{"missing name", "", "Lagos", "a", "pw"},
		{"missing admin username", "Acme", "Lagos", "", "pw"},
		{"missing admin password", "Acme", "Lagos", "a", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.CreateBusiness(ctx, tc.bizName, tc.loc, tc.username, tc.password); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}

	// Location is the one optional field.
	if _, _, err := svc.CreateBusiness(ctx, "Acme", "", "acme_admin", "pw"); err != nil {
		t.Errorf("missing location rejected: %v", err)
	}
}

func TestCreateBusinessUsernameConflictIsGlobal(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	// Conflicts even against a cashier from a different tenant scope.
	cashier := models.User{Username: "taken", Role: models.RoleCashier, CreatedAt: time.Now()}
	if err := mem.Users().Insert(ctx, &cashier); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if _, _, err := svc.CreateBusiness(ctx, "Acme", "Lagos", "taken", "pw"); !errors.Is(err, access.ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
	businesses, _ := mem.Businesses().List(ctx)
	if len(businesses) != 0 {
		t.Errorf("business inserted despite conflict")
	}
}

func TestDeleteBusinessCascadesAdminsOnly(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	business, _, err := svc.CreateBusiness(ctx, "Acme", "Lagos", "acme_admin", "pw")
	if err != nil {
		t.Fatalf("create business failed: %v", err)
	}
	secondAdmin := models.User{
		Username: "acme_admin2", Role: models.RoleAdmin,
		BusinessID: &business.ID, CreatedAt: time.Now(),
	}
	cashier := models.User{
		Username: "acme_till", Role: models.RoleCashier,
		BusinessID: &business.ID, CreatedAt: time.Now(),
	}
	for _, u := range []*models.User{&secondAdmin, &cashier} {
		if err := mem.Users().Insert(ctx, u); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	name, adminsDeleted, err := svc.DeleteBusiness(ctx, business.ID)
	if err != nil {
		t.Fatalf("delete business failed: %v", err)
	}
	if name != "Acme" {
		t.Errorf("deleted name = %q, want Acme", name)
	}
	if adminsDeleted != 2 {
		t.Errorf("admins deleted = %d, want 2", adminsDeleted)
	}

	if _, err := mem.Businesses().FindByID(ctx, business.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("business still present after delete")
	}
	// The cashier survives with a dangling business reference.
	got, err := mem.Users().FindByID(ctx, cashier.ID)
	if err != nil {
		t.Fatalf("cashier lookup failed: %v", err)
	}
	if got.BusinessID == nil || *got.BusinessID != business.ID {
		t.Errorf("cashier business id = %v, want dangling %v", got.BusinessID, business.ID)
	}
}

func TestDeleteBusinessNotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.DeleteBusiness(context.Background(), primitive.NewObjectID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListBusinessesNewestFirstWithAdmins(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	older := models.Business{Name: "First", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Business{Name: "Second", CreatedAt: time.Now()}
	for _, b := range []*models.Business{&older, &newer} {
		if err := mem.Businesses().Insert(ctx, b); err != nil {
			t.Fatalf("failed to seed business: %v", err)
		}
	}
	admin := models.User{
		Username: "first_admin", Role: models.RoleAdmin,
		BusinessID: &older.ID, CreatedAt: time.Now(),
	}
	if err := mem.Users().Insert(ctx, &admin); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	listings, err := svc.ListBusinesses(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("listings = %d, want 2", len(listings))
	}
	if listings[0].Business.Name != "Second" {
		t.Errorf("listing order wrong: %q first", listings[0].Business.Name)
	}
	if len(listings[1].Admins) != 1 || listings[1].Admins[0] != "first_admin" {
		t.Errorf("admins = %v, want [first_admin]", listings[1].Admins)
	}
}
