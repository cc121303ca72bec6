package auth

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")
	businessID := primitive.NewObjectID()
	p := Principal{
		UserID:       primitive.NewObjectID(),
		Username:     "acme_admin",
		Role:         models.RoleAdmin,
		BusinessID:   &businessID,
		BusinessName: "Acme",
	}

	signed, err := tokens.Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	got, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.UserID != p.UserID || got.Username != "acme_admin" || got.Role != models.RoleAdmin {
		t.Errorf("principal = %+v", got)
	}
	if got.BusinessID == nil || *got.BusinessID != businessID {
		t.Errorf("business id = %v, want %v", got.BusinessID, businessID)
	}
	if got.BusinessName != "Acme" {
		t.Errorf("business name = %q, want Acme", got.BusinessName)
	}
}

func TestTokenWithoutBusiness(t *testing.T) {
	tokens := NewTokens("test-secret")
	p := Principal{
		UserID:       primitive.NewObjectID(),
		Username:     "boss",
		Role:         models.RoleSuperAdmin,
		BusinessName: BusinessNameAll,
	}

	signed, err := tokens.Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	got, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.BusinessID != nil {
		t.Errorf("business id = %v, want nil", got.BusinessID)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	p := Principal{UserID: primitive.NewObjectID(), Username: "boss", Role: models.RoleSuperAdmin}

	signed, err := NewTokens("secret-a").Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := NewTokens("secret-b").Validate(signed); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestIsAdmin(t *testing.T) {
	if !(Principal{Role: models.RoleAdmin}).IsAdmin() {
		t.Error("admin should clear admin access")
	}
	if !(Principal{Role: models.RoleSuperAdmin}).IsAdmin() {
		t.Error("super_admin should clear admin access")
	}
	if (Principal{Role: models.RoleCashier}).IsAdmin() {
		t.Error("cashier should not clear admin access")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret" {
		t.Error("password stored in the clear")
	}
	if !CheckPassword(hash, "secret") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
