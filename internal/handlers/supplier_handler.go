package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockflow/internal/catalog"
)

type supplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (r supplierRequest) toInput() catalog.SupplierInput {
	return catalog.SupplierInput{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
	}
}

// GetSuppliers lists every supplier.
func (h *Handler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.Catalog.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// GetSupplier fetches one supplier by ID.
func (h *Handler) GetSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	supplier, err := h.Catalog.GetSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// AddSupplier creates a supplier.
func (h *Handler) AddSupplier(c *gin.Context) {
	var input supplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	supplier, err := h.Catalog.CreateSupplier(c.Request.Context(), input.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Supplier added successfully!",
		"supplier_id": supplier.ID.Hex(),
	})
}

// UpdateSupplier replaces a supplier's editable fields.
func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input supplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	supplier, err := h.Catalog.UpdateSupplier(c.Request.Context(), id, input.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier updated successfully!", "supplier": supplier})
}

// DeleteSupplier removes a supplier. Purchases keep the dangling reference
// and render "Unknown" as the supplier name.
func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}
