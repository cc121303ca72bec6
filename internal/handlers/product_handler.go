package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockflow/internal/catalog"
)

type productRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Unit            string  `json:"unit"`
	PurchasePrice   float64 `json:"purchase_price"`
	SellingPrice    float64 `json:"selling_price"`
	MinStock        *int    `json:"min_stock"`
	MaxStock        *int    `json:"max_stock"`
	CurrentQuantity int     `json:"current_quantity"`
}

func (r productRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:            r.Name,
		Description:     r.Description,
		Unit:            r.Unit,
		PurchasePrice:   r.PurchasePrice,
		SellingPrice:    r.SellingPrice,
		MinStock:        r.MinStock,
		MaxStock:        r.MaxStock,
		CurrentQuantity: r.CurrentQuantity,
	}
}

// GetProducts lists the whole catalog.
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductsInStock lists only sellable products, for the POS screen.
func (h *Handler) GetProductsInStock(c *gin.Context) {
	products, err := h.Catalog.ListInStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct fetches one product by ID.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AddProduct creates a product.
func (h *Handler) AddProduct(c *gin.Context) {
	var input productRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := h.Catalog.CreateProduct(c.Request.Context(), input.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully!", "product": product})
}

// UpdateProduct replaces a product's editable fields.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input productRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := h.Catalog.UpdateProduct(c.Request.Context(), id, input.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully!", "product": product})
}

// DeleteProduct removes a product. Historical transactions that reference
// it will render the product as "Unknown" from now on.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
