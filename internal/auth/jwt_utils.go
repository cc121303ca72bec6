package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
)

// BusinessNameAll is the display label for principals not scoped to a
// single business, i.e. the super admin.
const BusinessNameAll = "All Businesses (Super Admin)"

// Principal is the authenticated identity every protected operation
// receives. It is resolved once at login and travels inside the token.
type Principal struct {
	UserID       primitive.ObjectID
	Username     string
	Role         string
	BusinessID   *primitive.ObjectID // nil for super_admin
	BusinessName string
}

// IsAdmin reports whether the principal clears the "admin access" bar.
// Both admins and the super admin do.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleSuperAdmin
}

// Claims defines what is inside the token.
type Claims struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	BusinessID   string `json:"business_id,omitempty"`
	BusinessName string `json:"business_name"`
	jwt.RegisteredClaims
}

// Tokens signs and validates the JWTs that carry a Principal between
// requests.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token service around an HS256 secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: 24 * time.Hour}
}

// Generate creates a signed JWT for a principal.
func (t *Tokens) Generate(p Principal) (string, error) {
	claims := &Claims{
		UserID:       p.UserID.Hex(),
		Username:     p.Username,
		Role:         p.Role,
		BusinessName: p.BusinessName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if p.BusinessID != nil {
		claims.BusinessID = p.BusinessID.Hex()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks a token and reconstructs the Principal it carries.
func (t *Tokens) Validate(tokenString string) (*Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	p := &Principal{
		UserID:       userID,
		Username:     claims.Username,
		Role:         claims.Role,
		BusinessName: claims.BusinessName,
	}
	if claims.BusinessID != "" {
		bid, err := primitive.ObjectIDFromHex(claims.BusinessID)
		if err != nil {
			return nil, errors.New("invalid business id in token")
		}
		p.BusinessID = &bid
	}
	return p, nil
}
