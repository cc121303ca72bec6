package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values for User.Role.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleCashier    = "cashier"
)

// User - an account that can log into the system
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username     string              `bson:"username" json:"username"`
	PasswordHash string              `bson:"password_hash" json:"-"` // Never return this in JSON
	Role         string              `bson:"role" json:"role"`
	BusinessID   *primitive.ObjectID `bson:"business_id" json:"business_id,omitempty"` // nil for super_admin
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}

// Business - a tenant. Branch admins and their staff hang off one of these.
type Business struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Location  string             `bson:"location" json:"location"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Product - the inventory. CurrentQuantity is the single source of truth
// for on-hand stock; purchases and sales mutate it directly.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	Unit            string             `bson:"unit" json:"unit"`
	PurchasePrice   float64            `bson:"purchase_price" json:"purchase_price"`
	SellingPrice    float64            `bson:"selling_price" json:"selling_price"`
	MinStock        int                `bson:"min_stock" json:"min_stock"`
	MaxStock        *int               `bson:"max_stock" json:"max_stock,omitempty"` // advisory only, never enforced
	CurrentQuantity int                `bson:"current_quantity" json:"current_quantity"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// Supplier - referenced by purchases by ID only; no cascade on delete.
type Supplier struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	ContactPerson string             `bson:"contact_person" json:"contact_person"`
	Phone         string             `bson:"phone" json:"phone"`
	Email         string             `bson:"email" json:"email"`
	Address       string             `bson:"address" json:"address"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// PurchaseItem - one line of a stock-in transaction.
type PurchaseItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CostPrice float64            `bson:"cost_price" json:"cost_price"`
}

// Purchase - immutable stock-in record. Written once, never updated.
type Purchase struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SupplierID primitive.ObjectID `bson:"supplier_id" json:"supplier_id"`
	Items      []PurchaseItem     `bson:"items" json:"items"`
	TotalCost  float64            `bson:"total_cost" json:"total_cost"`
	Date       time.Time          `bson:"date" json:"date"`
}

// SaleItem - one line of a checkout.
type SaleItem struct {
	ProductID    primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	SellingPrice float64            `bson:"selling_price" json:"selling_price"`
}

// Sale - immutable stock-out record with the cashier snapshotted on it.
type Sale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items         []SaleItem         `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Date          time.Time          `bson:"date" json:"date"`
	CashierID     primitive.ObjectID `bson:"cashier_id" json:"cashier_id"`
	CashierName   string             `bson:"cashier_name" json:"cashier_name"`
}
