package payement

import (
	"encoding/json"
	"log"
	"net/http"

	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetDashboardStats returns the admin dashboard figures
func GetDashboardStats(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	// Order statistics
	var totalOrders int
	revenue := map[string]float64{} // per currency, settled orders only
	statusCount := make(map[string]int)

	iter := session.Query("SELECT status, total_price, currency FROM orders").Iter()
	var status, currency string
	var price float64

	for iter.Scan(&status, &price, &currency) {
		totalOrders++
		statusCount[status]++
		if status == models.OrderSuccess {
			revenue[currency] += price
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Stats read error: %v", err)
	}

	// Catalog statistics
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var totalProducts, publishedProducts int
	kindCount := make(map[string]int)

	prodIter := productsSession.Query("SELECT published, kind FROM products").Iter()
	var published bool
	var kind string

	for prodIter.Scan(&published, &kind) {
		totalProducts++
		if published {
			publishedProducts++
		}
		kindCount[kind]++
	}

	if err := prodIter.Close(); err != nil {
		log.Printf("❌ Catalog stats read error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"total":     totalOrders,
			"by_status": statusCount,
			"revenue":   revenue,
		},
		"catalog": gin.H{
			"total":     totalProducts,
			"published": publishedProducts,
			"by_kind":   kindCount,
		},
	})
}

// GetAllOrders lists every order for the admin dashboard. Stale
// pending orders show up here for manual reconciliation, nothing
// sweeps them automatically.
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT order_id, email, items, total_price, currency, status, reference, created_at FROM orders`).Iter()

	var orders []models.Order
	var order models.Order
	var itemsJSON string
	var orderID gocql.UUID

	for iter.Scan(&orderID, &order.Email, &itemsJSON, &order.TotalPrice, &order.Currency, &order.Status, &order.Reference, &order.CreatedAt) {
		order.ID = orderID
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			order.Items = nil
		}
		orders = append(orders, order)
		order = models.Order{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order read error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}
