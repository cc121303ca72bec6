package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createBusinessRequest struct {
	Name          string `json:"business_name" binding:"required"`
	Location      string `json:"location"`
	AdminUsername string `json:"admin_username" binding:"required"`
	AdminPassword string `json:"admin_password" binding:"required"`
}

// ListBusinesses returns every business with its admin usernames.
// Super admin only.
func (h *Handler) ListBusinesses(c *gin.Context) {
	listings, err := h.Tenant.ListBusinesses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// CreateBusiness creates a business and its initial branch admin.
// Super admin only.
func (h *Handler) CreateBusiness(c *gin.Context) {
	var input createBusinessRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	business, admin, err := h.Tenant.CreateBusiness(c.Request.Context(),
		input.Name, input.Location, input.AdminUsername, input.AdminPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Business %q created with admin %q!", business.Name, admin.Username),
		"business": business,
		"admin":    admin,
	})
}

// DeleteBusiness removes a business and its branch admins. Super admin only.
func (h *Handler) DeleteBusiness(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	name, adminsDeleted, err := h.Tenant.DeleteBusiness(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("Business %q deleted successfully. %d branch admin(s) also removed.", name, adminsDeleted),
		"admins_deleted": adminsDeleted,
	})
}
