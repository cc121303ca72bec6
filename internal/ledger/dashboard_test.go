package ledger

import (
	"context"
	"testing"

	"stockflow/internal/models"
)

func TestDashboardAggregation(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	// One item below its reorder threshold, one comfortably above.
	seedProduct(t, mem, models.Product{
		Name: "Soap", CurrentQuantity: 2, MinStock: 10,
		PurchasePrice: 3, SellingPrice: 5,
	})
	seedProduct(t, mem, models.Product{
		Name: "Rice", CurrentQuantity: 20, MinStock: 5,
		PurchasePrice: 1, SellingPrice: 2,
	})

	summary, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if summary.TotalProducts != 2 {
		t.Errorf("total products = %d, want 2", summary.TotalProducts)
	}
	if want := 2*3.0 + 20*1.0; summary.TotalStockValue != want {
		t.Errorf("stock value = %v, want %v", summary.TotalStockValue, want)
	}
	if want := 2*5.0 + 20*2.0; summary.PotentialSalesValue != want {
		t.Errorf("potential sales value = %v, want %v", summary.PotentialSalesValue, want)
	}
	if summary.LowStockCount != 1 {
		t.Errorf("low stock count = %d, want 1", summary.LowStockCount)
	}
	if len(summary.LowStockItems) != 1 || summary.LowStockItems[0].Name != "Soap" {
		t.Errorf("low stock items = %+v, want just Soap", summary.LowStockItems)
	}
}

func TestDashboardEmptyCatalog(t *testing.T) {
	svc, _ := newTestService()

	summary, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if summary.TotalProducts != 0 || summary.LowStockCount != 0 {
		t.Errorf("empty catalog summary = %+v", summary)
	}
}
