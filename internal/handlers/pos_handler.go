package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockflow/internal/ledger"
	"stockflow/internal/middleware"
	"stockflow/internal/store"
)

type checkoutItem struct {
	ProductID    string  `json:"product_id" binding:"required"`
	Quantity     int     `json:"quantity"`
	SellingPrice float64 `json:"selling_price"`
}

type checkoutRequest struct {
	Items         []checkoutItem `json:"items" binding:"required"`
	PaymentMethod string         `json:"payment_method"`
}

// Checkout processes a sale. Unlike the redirect-style endpoints it always
// answers with a structured success/failure result, since the POS screen
// submits it programmatically.
func (h *Handler) Checkout(c *gin.Context) {
	var input checkoutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	lines := make([]ledger.SaleLine, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := store.ParseID(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}
		lines = append(lines, ledger.SaleLine{
			ProductID:    productID,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
		})
	}

	cashier, _ := middleware.PrincipalFrom(c)
	sale, err := h.Ledger.Checkout(c.Request.Context(), cashier, lines, input.PaymentMethod)
	if err != nil {
		var insufficient *ledger.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": insufficient.Error()})
		case errors.Is(err, ledger.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Sale completed!",
		"sale_id":  sale.ID.Hex(),
		"total":    sale.TotalAmount,
		"redirect": "/pos/receipt/" + sale.ID.Hex(),
	})
}

// GetSaleReceipt assembles a printable receipt for one sale. Product names
// are resolved at render time.
func (h *Handler) GetSaleReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.Ledger.SaleReceipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GetSales returns the full sales history, newest first.
func (h *Handler) GetSales(c *gin.Context) {
	history, err := h.Ledger.SalesHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetDashboard returns the aggregate inventory snapshot.
func (h *Handler) GetDashboard(c *gin.Context) {
	summary, err := h.Ledger.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
