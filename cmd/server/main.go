package main

import (
	"context"
	"log"
	"os"

	"bookhaven_back_end/internal/config"
	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/routes"
	"bookhaven_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	secret := os.Getenv("STRIPE_SECRET_KEY")
	stripe.Key = secret
	if stripe.Key == "" {
		log.Fatal("❌ Cannot initialize Stripe: key missing")
	}
	log.Println("✅ Stripe initialized")

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ Cannot start: JWT_SECRET missing")
	}

	services.InitPaystack()

	database.ConnectDatabases()

	// ✅ Prepare the hot-path statements up front
	database.InitPreparedStatements()

	// ✅ Pre-warm the Redis connection
	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 BookHaven server running on port", port)
	r.Run(":" + port)
}

// warmupRedisCache establishes the Redis connection before the first request
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
