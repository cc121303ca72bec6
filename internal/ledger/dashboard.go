package ledger

import (
	"context"

	"stockflow/internal/models"
)

// DashboardSummary is the landing-page snapshot. It is recomputed from the
// current product set on every request; nothing is cached or maintained
// incrementally.
type DashboardSummary struct {
	TotalProducts       int              `json:"total_products"`
	TotalStockValue     float64          `json:"total_stock_value"`
	PotentialSalesValue float64          `json:"potential_sales_value"`
	LowStockCount       int              `json:"low_stock_count"`
	LowStockItems       []models.Product `json:"low_stock_items"`
}

// Dashboard aggregates the full product set: counts, stock valuation at
// purchase price, potential revenue at selling price, and the items sitting
// below their reorder threshold.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalProducts: len(products),
		LowStockItems: []models.Product{},
	}
	for _, p := range products {
		summary.TotalStockValue += float64(p.CurrentQuantity) * p.PurchasePrice
		summary.PotentialSalesValue += float64(p.CurrentQuantity) * p.SellingPrice
		if p.CurrentQuantity < p.MinStock {
			summary.LowStockItems = append(summary.LowStockItems, p)
		}
	}
	summary.LowStockCount = len(summary.LowStockItems)
	return summary, nil
}
