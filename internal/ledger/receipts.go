package ledger

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stockflow/internal/models"
)

// ReceiptLine is a transaction line enriched for display. Product names are
// resolved at render time by a fresh lookup, so a renamed product changes
// how old receipts read, and a deleted one shows as "Unknown". That is a
// deliberate choice, covered by tests.
type ReceiptLine struct {
	ProductID   primitive.ObjectID `json:"product_id"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity"`
	UnitPrice   float64            `json:"unit_price"`
	LineTotal   float64            `json:"line_total"`
}

// SaleReceipt is a sale ready to print.
type SaleReceipt struct {
	Sale  models.Sale   `json:"sale"`
	Lines []ReceiptLine `json:"lines"`
}

// PurchaseReceipt is a purchase ready to print.
type PurchaseReceipt struct {
	Purchase     models.Purchase `json:"purchase"`
	SupplierName string          `json:"supplier_name"`
	Lines        []ReceiptLine   `json:"lines"`
}

// SaleReceipt assembles the printable form of one sale.
func (s *Service) SaleReceipt(ctx context.Context, saleID primitive.ObjectID) (*SaleReceipt, error) {
	sale, err := s.store.Sales().FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	receipt := &SaleReceipt{Sale: *sale}
	for _, item := range sale.Items {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductID:   item.ProductID,
			ProductName: s.productName(ctx, item.ProductID),
			Quantity:    item.Quantity,
			UnitPrice:   item.SellingPrice,
			LineTotal:   float64(item.Quantity) * item.SellingPrice,
		})
	}
	return receipt, nil
}

// PurchaseReceipt assembles the printable form of one purchase.
func (s *Service) PurchaseReceipt(ctx context.Context, purchaseID primitive.ObjectID) (*PurchaseReceipt, error) {
	purchase, err := s.store.Purchases().FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	receipt := &PurchaseReceipt{Purchase: *purchase, SupplierName: "Unknown"}
	if supplier, err := s.store.Suppliers().FindByID(ctx, purchase.SupplierID); err == nil {
		receipt.SupplierName = supplier.Name
	}
	for _, item := range purchase.Items {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductID:   item.ProductID,
			ProductName: s.productName(ctx, item.ProductID),
			Quantity:    item.Quantity,
			UnitPrice:   item.CostPrice,
			LineTotal:   float64(item.Quantity) * item.CostPrice,
		})
	}
	return receipt, nil
}

// SalesHistory lists all sales newest first, with display names resolved.
func (s *Service) SalesHistory(ctx context.Context) ([]SaleReceipt, error) {
	sales, err := s.store.Sales().List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.productNames(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]SaleReceipt, 0, len(sales))
	for _, sale := range sales {
		receipt := SaleReceipt{Sale: sale}
		for _, item := range sale.Items {
			receipt.Lines = append(receipt.Lines, ReceiptLine{
				ProductID:   item.ProductID,
				ProductName: nameOr(names, item.ProductID),
				Quantity:    item.Quantity,
				UnitPrice:   item.SellingPrice,
				LineTotal:   float64(item.Quantity) * item.SellingPrice,
			})
		}
		history = append(history, receipt)
	}
	return history, nil
}

// PurchaseHistory lists all purchases newest first, with display names
// resolved.
func (s *Service) PurchaseHistory(ctx context.Context) ([]PurchaseReceipt, error) {
	purchases, err := s.store.Purchases().List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.productNames(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.store.Suppliers().List(ctx)
	if err != nil {
		return nil, err
	}
	supplierNames := make(map[primitive.ObjectID]string, len(suppliers))
	for _, sup := range suppliers {
		supplierNames[sup.ID] = sup.Name
	}

	history := make([]PurchaseReceipt, 0, len(purchases))
	for _, purchase := range purchases {
		receipt := PurchaseReceipt{Purchase: purchase, SupplierName: nameOr(supplierNames, purchase.SupplierID)}
		for _, item := range purchase.Items {
			receipt.Lines = append(receipt.Lines, ReceiptLine{
				ProductID:   item.ProductID,
				ProductName: nameOr(names, item.ProductID),
				Quantity:    item.Quantity,
				UnitPrice:   item.CostPrice,
				LineTotal:   float64(item.Quantity) * item.CostPrice,
			})
		}
		history = append(history, receipt)
	}
	return history, nil
}

func (s *Service) productNames(ctx context.Context) (map[primitive.ObjectID]string, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func nameOr(names map[primitive.ObjectID]string, id primitive.ObjectID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}
