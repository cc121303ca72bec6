// Package tenant is the super-admin-only directory of businesses and their
// branch admins.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/access"
	"stockflow/internal/auth"
	"stockflow/internal/models"
	"stockflow/internal/store"
)

// ErrValidation marks a rejected field value.
var ErrValidation = errors.New("validation failed")

// Service implements the tenant-directory operations.
type Service struct {
	store store.Store
}

// NewService builds the tenant service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// BusinessListing is one business enriched with its admin usernames, the
// shape the directory view wants.
type BusinessListing struct {
	Business models.Business `json:"business"`
	Admins   []string        `json:"admins"`
}

// CreateBusiness creates a business together with exactly one branch admin
// scoped to it. The two inserts are not wrapped in a cross-document
// transaction; a crash in between leaves a business with no admin.
func (s *Service) CreateBusiness(ctx context.Context, name, location, adminUsername, adminPassword string) (*models.Business, *models.User, error) {
	if name == "" || adminUsername == "" || adminPassword == "" {
		return nil, nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	// Username uniqueness is global, not per tenant.
	if _, err := s.store.Users().FindByUsername(ctx, adminUsername); err == nil {
		return nil, nil, access.ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, err
	}

	business := &models.Business{
		Name:      name,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Businesses().Insert(ctx, business); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, nil, err
	}
	admin := &models.User{
		Username:     adminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		BusinessID:   &business.ID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Users().Insert(ctx, admin); err != nil {
		return nil, nil, err
	}

	return business, admin, nil
}

// DeleteBusiness removes a business and cascades onto its admin-role users
// only. Non-admin users scoped to it are left with a dangling business
// reference. Returns the business name and how many admins went with it.
func (s *Service) DeleteBusiness(ctx context.Context, id primitive.ObjectID) (string, int64, error) {
	business, err := s.store.Businesses().FindByID(ctx, id)
	if err != nil {
		return "", 0, err
	}

	adminsDeleted, err := s.store.Users().DeleteByBusinessAndRole(ctx, id, models.RoleAdmin)
	if err != nil {
		return "", 0, err
	}

	if err := s.store.Businesses().Delete(ctx, id); err != nil {
		return "", adminsDeleted, err
	}
	return business.Name, adminsDeleted, nil
}

// ListBusinesses returns every business newest first, each with its admin
// usernames.
func (s *Service) ListBusinesses(ctx context.Context) ([]BusinessListing, error) {
	businesses, err := s.store.Businesses().List(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]BusinessListing, 0, len(businesses))
	for _, business := range businesses {
		admins, err := s.store.Users().FindByBusinessAndRole(ctx, business.ID, models.RoleAdmin)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(admins))
		for _, admin := range admins {
			names = append(names, admin.Username)
		}
		listings = append(listings, BusinessListing{Business: business, Admins: names})
	}
	return listings, nil
}
