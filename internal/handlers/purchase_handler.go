package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockflow/internal/ledger"
	"stockflow/internal/store"
)

type purchaseItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
}

type purchaseRequest struct {
	SupplierID string         `json:"supplier_id" binding:"required"`
	Items      []purchaseItem `json:"items" binding:"required"`
}

// CreatePurchase records incoming stock. Same structured response shape as
// checkout.
func (h *Handler) CreatePurchase(c *gin.Context) {
	var input purchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	supplierID, err := store.ParseID(input.SupplierID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid supplier id"})
		return
	}
	lines := make([]ledger.PurchaseLine, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := store.ParseID(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}
		lines = append(lines, ledger.PurchaseLine{
			ProductID: productID,
			Quantity:  item.Quantity,
			CostPrice: item.CostPrice,
		})
	}

	purchase, err := h.Ledger.RecordPurchase(c.Request.Context(), supplierID, lines)
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Purchase recorded successfully!",
		"purchase_id": purchase.ID.Hex(),
		"total":       purchase.TotalCost,
		"redirect":    "/purchases/receipt/" + purchase.ID.Hex(),
	})
}

// GetPurchaseReceipt assembles a printable receipt for one purchase.
func (h *Handler) GetPurchaseReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.Ledger.PurchaseReceipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GetPurchases returns the full purchase history, newest first.
func (h *Handler) GetPurchases(c *gin.Context) {
	history, err := h.Ledger.PurchaseHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
