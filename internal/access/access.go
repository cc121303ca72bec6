// Package access owns authentication and user management: credential
// verification, the first-user bootstrap, and the rules around creating and
// deleting accounts.
package access

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

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned on an exact, case-sensitive conflict.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrSelfDelete rejects an account deleting itself, regardless of role.
	ErrSelfDelete = errors.New("you cannot delete yourself")
)

// Service implements the access-control operations over the store.
type Service struct {
	store store.Store
}

// NewService builds the access service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Authenticate verifies credentials and resolves the full principal,
// including the tenant display name.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*auth.Principal, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	p := &auth.Principal{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		BusinessID: user.BusinessID,
	}
	if user.BusinessID == nil {
		p.BusinessName = auth.BusinessNameAll
	} else {
		business, err := s.store.Businesses().FindByID(ctx, *user.BusinessID)
		switch {
		case err == nil:
			p.BusinessName = business.Name
		case errors.Is(err, store.ErrNotFound):
			p.BusinessName = "Unknown Business"
		default:
			return nil, err
		}
	}
	return p, nil
}

// Register creates an account through the self-signup path. The first
// account ever created becomes the super admin; everyone after that is a
// cashier with no business assignment. Tenant assignment only happens via
// the tenant directory's admin-creation path.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	if err := s.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}

	total, err := s.store.Users().Count(ctx)
	if err != nil {
		return nil, err
	}
	role := models.RoleCashier
	if total == 0 {
		role = models.RoleSuperAdmin
	}

	return s.insertUser(ctx, username, password, role)
}

// CreateUser is the admin path: the role comes from the request, the
// business assignment stays empty.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	switch role {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleCashier:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if err := s.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	return s.insertUser(ctx, username, password, role)
}

// DeleteUser removes an account. Self-deletion is rejected.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return ErrSelfDelete
	}
	return s.store.Users().Delete(ctx, targetID)
}

// ListUsers returns every account in the system.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users().List(ctx)
}

func (s *Service) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.store.Users().FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) insertUser(ctx context.Context, username, password, role string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		BusinessID:   nil,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Users().Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
