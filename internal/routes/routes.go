package routes

import (
	"os"
	"strings"
	"time"

	adminhandlers "bookhaven_back_end/internal/handlers/admin"
	"bookhaven_back_end/internal/handlers/payement"
	"bookhaven_back_end/internal/handlers/product"
	"bookhaven_back_end/internal/handlers/vault"
	"bookhaven_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	allowed := os.Getenv("CORS_ORIGINS")
	if allowed == "" {
		allowed = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowed, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Storefront catalog
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)

	// Checkout and verification
	api.POST("/checkout", payement.Checkout)
	api.GET("/checkout/verify", payement.VerifyTransaction)

	// Vault
	api.POST("/vault/request-code", middleware.AccessCodeRateLimit(), vault.RequestAccessCode)
	api.POST("/vault/unlock", vault.UnlockVault)
	api.POST("/vault/lock", vault.LockVault)
	api.GET("/vault/download", vault.DownloadFile)

	// Admin dashboard
	api.POST("/admin/login", middleware.AdminLoginRateLimit(), adminhandlers.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/products", adminhandlers.GetAllProducts)
		admin.POST("/products", adminhandlers.CreateProduct)
		admin.PUT("/products/:id", adminhandlers.UpdateProduct)
		admin.DELETE("/products/:id", adminhandlers.DeleteProduct)
		admin.POST("/products/upload", adminhandlers.UploadProductFile)
		admin.GET("/orders", payement.GetAllOrders)
		admin.GET("/stats", payement.GetDashboardStats)
	}
}
