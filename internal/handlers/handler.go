// Package handlers translates HTTP requests into service calls and service
// results into JSON. Business-rule failures come back as user-readable
// messages with the right status code; nothing in here is allowed to panic
// on bad input.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/access"
	"stockflow/internal/auth"
	"stockflow/internal/catalog"
	"stockflow/internal/ledger"
	"stockflow/internal/store"
	"stockflow/internal/tenant"
)

// Handler bundles the services the HTTP layer depends on.
type Handler struct {
	Access  *access.Service
	Ledger  *ledger.Service
	Catalog *catalog.Service
	Tenant  *tenant.Service
	Tokens  *auth.Tokens
}

// New constructs a Handler over a store.
func New(st store.Store, tokens *auth.Tokens) *Handler {
	return &Handler{
		Access:  access.NewService(st),
		Ledger:  ledger.NewService(st),
		Catalog: catalog.NewService(st),
		Tenant:  tenant.NewService(st),
		Tokens:  tokens,
	}
}

// respondError maps service errors onto status codes. Malformed IDs are
// downgraded to not-found rather than leaking a parse error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, access.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete yourself!"})
	case errors.Is(err, access.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, catalog.ErrValidation),
		errors.Is(err, tenant.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// parseID reads an object ID out of a URL parameter. On garbage it answers
// 404 and reports false.
func parseID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	parsed, err := store.ParseID(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return primitive.NilObjectID, false
	}
	return parsed, true
}
