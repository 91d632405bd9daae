package payement

import (
	"errors"
	"net/http"

	"github.com/gocql/gocql"

	"bookhaven_back_end/internal/models"
)

// buildOrderItems snapshots the cart against the live catalog for the
// selected currency. Prices and titles are copied into the order so
// later catalog edits never touch a settled receipt. Returns false if
// any cart entry references an unknown product.
func buildOrderItems(cart []models.CartItem, catalog map[string]models.Product, currency string) ([]models.OrderItem, bool) {
	items := make([]models.OrderItem, 0, len(cart))
	for _, entry := range cart {
		p, ok := catalog[entry.ProductID]
		if !ok {
			return nil, false
		}
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.OrderItem{
			ProductID: entry.ProductID,
			Title:     p.Title,
			Price:     p.Price(currency),
			Quantity:  qty,
		})
	}
	return items, true
}

// lookupFailureStatus maps a product read error to the client status.
// A missing row is the caller's problem; anything else is a storage
// failure and must not masquerade as a 404.
func lookupFailureStatus(err error) int {
	if errors.Is(err, gocql.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// calcTotal computes the order total from the snapshotted items. The
// client never supplies a total; this is the only place it comes from.
func calcTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
