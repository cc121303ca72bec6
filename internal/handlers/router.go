package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stockflow/internal/middleware"
	"stockflow/internal/models"
)

// Router wires up the HTTP API.
//
// Route access: everything under /api needs a valid token; user management
// accepts admin and super_admin; business management is super_admin only.
// Registration is feature-flagged so operators can close it once the first
// accounts exist.
func (h *Handler) Router(corsOrigin string, allowRegistration bool) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)
	if allowRegistration {
		r.POST("/signup", h.Register)
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(h.Tokens))
	{
		// Open to all authenticated staff.
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/products", h.GetProducts)
		api.GET("/products/in-stock", h.GetProductsInStock)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", h.AddProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		api.GET("/suppliers", h.GetSuppliers)
		api.GET("/suppliers/:id", h.GetSupplier)
		api.POST("/suppliers", h.AddSupplier)
		api.PUT("/suppliers/:id", h.UpdateSupplier)
		api.DELETE("/suppliers/:id", h.DeleteSupplier)

		api.POST("/checkout", h.Checkout)
		api.GET("/sales", h.GetSales)
		api.GET("/sales/receipt/:id", h.GetSaleReceipt)

		api.POST("/purchases", h.CreatePurchase)
		api.GET("/purchases", h.GetPurchases)
		api.GET("/purchases/receipt/:id", h.GetPurchaseReceipt)

		// Admin only (super admin included).
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
		{
			admin.GET("/users", h.ListUsers)
			admin.POST("/users", h.AddUser)
			admin.DELETE("/users/:id", h.DeleteUser)
		}

		// Super admin only.
		super := api.Group("/")
		super.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			super.GET("/businesses", h.ListBusinesses)
			super.POST("/businesses", h.CreateBusiness)
			super.DELETE("/businesses/:id", h.DeleteBusiness)
		}
	}

	return r
}
