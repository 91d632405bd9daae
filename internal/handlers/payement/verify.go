package payement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"bookhaven_back_end/internal/cache"
	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"
	"bookhaven_back_end/internal/services"
	"bookhaven_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// VerifyTransaction is the single point where an externally confirmed
// payment becomes a durable entitlement. It re-checks the reference
// with the gateway, never trusting the client's redirect, and settles
// the order idempotently: redirect callback and client polling may
// both land here with the same reference.
func VerifyTransaction(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing transaction reference"})
		return
	}

	// 1. Independent gateway round-trip
	var orderID string
	var err error

	if services.IsStripeReference(reference) {
		orderID, err = services.VerifyStripeCheckout(reference)
	} else {
		var result *services.PaystackVerifyResult
		result, err = services.Paystack.VerifyTransaction(context.Background(), reference)
		if err == nil {
			orderID = result.OrderID
		}
	}

	if err != nil {
		if errors.Is(err, services.ErrPaymentNotVerified) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not verified"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway verification error"})
		return
	}

	// 2. Resolve the order id echoed back through the gateway metadata
	orderUUID, parseErr := gocql.ParseUUID(orderID)
	if orderID == "" || parseErr != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for this transaction"})
		return
	}

	order, alreadySettled, err := settleOrder(orderUUID, reference)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for this transaction"})
			return
		}
		log.Printf("❌ Settlement error for order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement error"})
		return
	}

	if !alreadySettled {
		log.Printf("✅ Order settled: %s (%.2f %s) for %s", order.ID, order.TotalPrice, order.Currency, order.Email)
		go sendOrderConfirmation(*order)
	} else {
		log.Printf("🔁 Order %s already settled, returning as-is", order.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"files":   resolveOrderFiles(*order),
	})
}

// settleOrder transitions a pending order to success with a
// conditional single-row update. Exactly one of two racing
// verifications wins the transition; the loser re-reads and returns
// the settled row. alreadySettled is true when no transition happened.
func settleOrder(orderID gocql.UUID, reference string) (*models.Order, bool, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, false, err
	}

	applied, err := session.Query(
		`UPDATE orders SET status = ?, reference = ? WHERE order_id = ? IF status = ?`,
		models.OrderSuccess, reference, orderID, models.OrderPending).ScanCAS()
	if err != nil {
		return nil, false, err
	}

	order, err := loadOrder(orderID)
	if err != nil {
		return nil, false, err
	}

	order, alreadySettled, err := resolveSettlement(applied, order, reference)
	if err != nil || alreadySettled {
		return order, alreadySettled, err
	}

	// Mirror the transition into the by-email table used by the vault
	if err := session.Query(
		`UPDATE orders_by_email SET status = ?, reference = ? WHERE email_lc = ? AND order_id = ?`,
		models.OrderSuccess, reference, models.EmailKey(order.Email), orderID).Exec(); err != nil {
		log.Printf("⚠️ orders_by_email settlement mirror error: %v", err)
	}

	return order, false, nil
}

// resolveSettlement decides the outcome of the conditional update
// against the re-read row. A lost race or a replayed reference is fine
// only when the row already reads success; a pending or failed row
// that did not transition can never settle.
func resolveSettlement(applied bool, order *models.Order, reference string) (*models.Order, bool, error) {
	if !applied {
		if order.Status != models.OrderSuccess {
			return nil, false, fmt.Errorf("order %s is %s, cannot settle", order.ID, order.Status)
		}
		return order, true, nil
	}

	order.Status = models.OrderSuccess
	order.Reference = reference
	return order, false, nil
}

// loadOrder reads an order row and unpacks its item snapshots
func loadOrder(orderID gocql.UUID) (*models.Order, error) {
	var order models.Order
	var itemsJSON string

	err := database.GetPreparedOrderByID().Bind(orderID).Scan(
		&order.ID, &order.Email, &itemsJSON, &order.TotalPrice,
		&order.Currency, &order.Status, &order.Reference, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("order %s items decode error: %w", orderID, err)
	}

	return &order, nil
}

// resolveOrderFiles maps each line item to its live secure file
// reference. Items whose product has since been deleted are skipped,
// never an error.
func resolveOrderFiles(order models.Order) []gin.H {
	files := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		p, err := cache.GetProductFromCache(item.ProductID)
		if err != nil || p == nil {
			continue
		}
		files = append(files, gin.H{
			"product_id": item.ProductID,
			"title":      item.Title,
			"kind":       p.Kind,
			"file_url":   p.FileURL,
		})
	}
	return files
}

// sendOrderConfirmation mails the receipt after a fresh settlement.
// Failures are logged only; email can never block or undo settlement.
func sendOrderConfirmation(order models.Order) {
	vaultURL := utils.GetFrontendVaultURL()
	html := utils.GenerateOrderConfirmationHTML(order, vaultURL)

	var pdf []byte
	qr, err := utils.GenerateVaultQR(vaultURL)
	if err != nil {
		log.Printf("❌ QR generation error: %v", err)
	} else {
		pdf, err = utils.RenderReceiptPDF(utils.GetFrontendReceiptBaseURL(), order.ID.String(), qr)
		if err != nil {
			log.Printf("❌ Receipt PDF generation error: %v", err)
			pdf = nil
		}
	}

	if err := utils.SendEmail(order.Email, "Your BookHaven order confirmation", html, pdf); err != nil {
		log.Printf("❌ Confirmation email error for %s: %v", order.Email, err)
	} else {
		log.Printf("📧 Confirmation email sent to %s", order.Email)
	}
}
