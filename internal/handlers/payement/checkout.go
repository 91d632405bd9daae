package payement

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"
	"bookhaven_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Checkout creates a pending order from the client-held cart and opens
// a hosted transaction with the gateway for the selected currency.
// The order is persisted BEFORE the gateway call, so every
// initialization attempt leaves a durable local trace even when the
// gateway rejects it.
func Checkout(c *gin.Context) {
	var req struct {
		Email    string            `json:"email"`
		Items    []models.CartItem `json:"items"`
		Currency string            `json:"currency"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if req.Email == "" || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and a non-empty cart are required"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}
	if currency != "NGN" && currency != "USD" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
		return
	}

	// ✅ 1. Re-read every product server-side; client prices are never trusted
	catalog := make(map[string]models.Product, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id: " + item.ProductID})
			return
		}

		var p models.Product
		err = database.GetPreparedProductByID().Bind(gocql.UUID(pid)).Scan(
			&p.ID, &p.Title, &p.Description, &p.PriceNGN, &p.PriceUSD, &p.Kind,
			&p.CoverURL, &p.FileURL, &p.PreviewURL, &p.Published, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			if status := lookupFailureStatus(err); status == http.StatusNotFound {
				c.JSON(status, gin.H{"error": "Product not found: " + item.ProductID})
			} else {
				c.JSON(status, gin.H{"error": "Product read error"})
			}
			return
		}
		if !p.Published {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not available: " + p.Title})
			return
		}
		catalog[item.ProductID] = p
	}

	// ✅ 2. Snapshot and total, server-side
	items, ok := buildOrderItems(req.Items, catalog, currency)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	totalPrice := calcTotal(items)

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order serialization error"})
		return
	}

	// ✅ 3. Persist the pending order before talking to the gateway
	order := models.Order{
		ID:         gocql.TimeUUID(),
		Email:      req.Email,
		Items:      items,
		TotalPrice: totalPrice,
		Currency:   currency,
		Status:     models.OrderPending,
		CreatedAt:  time.Now(),
	}

	emailLC := models.EmailKey(req.Email)

	if err := database.GetPreparedInsertOrder().Bind(
		order.ID, order.Email, emailLC, string(itemsJSON), order.TotalPrice,
		order.Currency, order.Status, "", order.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order creation error"})
		return
	}

	if err := database.GetPreparedInsertOrderByEmail().Bind(
		emailLC, order.ID, string(itemsJSON), order.TotalPrice,
		order.Currency, order.Status, "", order.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ orders_by_email indexing error: %v", err)
	}

	// ✅ 4. Open the hosted transaction
	callbackURL := os.Getenv("CHECKOUT_CALLBACK_URL")
	if callbackURL == "" {
		callbackURL = "http://localhost:3000/checkout/callback"
	}

	var redirectURL string

	if currency == "USD" {
		redirectURL, err = services.InitializeStripeCheckout(req.Email, items, order.ID.String(), callbackURL)
	} else {
		// Paystack expects the amount in kobo
		var init *services.PaystackInitResult
		init, err = services.Paystack.InitializeTransaction(
			context.Background(), req.Email, services.MinorUnits(totalPrice), currency, callbackURL, order.ID.String())
		if err == nil {
			redirectURL = init.AuthorizationURL
		}
	}

	if err != nil {
		// The order stays pending for later reconciliation, no rollback
		log.Printf("❌ Gateway initialization failed for order %s: %v", order.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 Checkout created: order %s (%.2f %s) for %s", order.ID, totalPrice, currency, req.Email)

	c.JSON(http.StatusOK, gin.H{
		"url":         redirectURL,
		"order_id":    order.ID.String(),
		"amount":      totalPrice,
		"currency":    currency,
		"items_count": len(items),
	})
}
