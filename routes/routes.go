package routes

import (
	"github.com/gin-gonic/gin"

	"backend/controllers"
	"backend/middleware"
	"backend/models"
	"backend/utils"
)

func InitializeRoutes(router *gin.Engine, ct *controllers.Controller, tokens *utils.TokenIssuer, scanAPIKey string) {
	router.POST("/login", ct.Login)
	router.Static("/uploads", "./uploads")
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	cashier := router.Group("/cashier")
	cashier.Use(middleware.AuthMiddleware(tokens, models.RoleCashier, models.RoleOwner))
	{
		cashier.GET("/products", ct.ListProducts)
		cashier.GET("/customers", ct.ListCustomers)

		cashier.GET("/cart", ct.GetCart)
		cashier.POST("/cart/items", ct.AddCartItem)
		cashier.PUT("/cart/items/:productID", ct.SetCartQuantity)
		cashier.DELETE("/cart/items/:productID", ct.RemoveCartItem)
		cashier.POST("/cart/customer", ct.AttachCartCustomer)
		cashier.DELETE("/cart/customer", ct.DetachCartCustomer)
		cashier.DELETE("/cart", ct.CancelCart)

		cashier.POST("/checkout", ct.Checkout)
	}

	owner := router.Group("/owner")
	owner.Use(middleware.AuthMiddleware(tokens, models.RoleOwner))
	{
		owner.GET("/products", ct.ListProducts)
		owner.POST("/products", ct.CreateProduct)
		owner.GET("/products/lowstock", ct.LowStockProducts)
		owner.GET("/products/:id", ct.GetProduct)
		owner.PUT("/products/:id", ct.UpdateProduct)
		owner.DELETE("/products/:id", ct.DeactivateProduct)
		owner.POST("/products/:id/restock", ct.RestockProduct)
		owner.POST("/products/:id/photo", ct.UploadProductPhoto)

		owner.GET("/customers", ct.ListCustomers)
		owner.POST("/customers", ct.CreateCustomer)
		owner.GET("/customers/:id", ct.GetCustomer)
		owner.PUT("/customers/:id", ct.UpdateCustomer)
		owner.GET("/customers/:id/transactions", ct.CustomerTransactions)
		owner.POST("/customers/:id/payment", ct.RecordPayment)
		owner.GET("/udhaar", ct.Udhaar)

		owner.GET("/transactions", ct.RecentTransactions)
		owner.GET("/transactions/:id", ct.GetTransaction)
		owner.GET("/dashboard", ct.Dashboard)

		owner.GET("/users", ct.ListUsers)
		owner.POST("/users", ct.CreateUser)
	}

	stock := router.Group("/stock")
	stock.Use(middleware.AuthMiddleware(tokens, models.RoleStockManager, models.RoleOwner))
	{
		stock.GET("/products", ct.ListProducts)
		stock.GET("/products/lowstock", ct.LowStockProducts)
		stock.GET("/products/:id", ct.GetProduct)
		stock.POST("/products/:id/restock", ct.RestockProduct)
		stock.POST("/products/:id/photo", ct.UploadProductPhoto)
	}

	accountant := router.Group("/accountant")
	accountant.Use(middleware.AuthMiddleware(tokens, models.RoleAccountant, models.RoleOwner))
	{
		accountant.GET("/transactions", ct.RecentTransactions)
		accountant.GET("/transactions/:id", ct.GetTransaction)
		accountant.GET("/udhaar", ct.Udhaar)
		accountant.GET("/dashboard", ct.Dashboard)
	}

	scan := router.Group("/scan")
	scan.Use(middleware.APIKeyMiddleware(scanAPIKey))
	{
		scan.POST("/product", ct.ScanProduct)
		scan.POST("/slip", ct.ScanSlip)
	}
}
