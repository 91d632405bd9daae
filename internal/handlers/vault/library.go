package vault

import (
	"encoding/json"
	"sort"

	"bookhaven_back_end/internal/cache"
	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"

	"github.com/gocql/gocql"
)

// fetchSettledOrders returns every settled order for an email,
// matched case-insensitively through the lowercased partition key.
func fetchSettledOrders(email string) ([]models.Order, error) {
	iter := database.GetPreparedOrdersByEmail().Bind(models.EmailKey(email)).Iter()

	var orders []models.Order
	var order models.Order
	var itemsJSON string
	var orderID gocql.UUID

	for iter.Scan(&orderID, &itemsJSON, &order.TotalPrice, &order.Currency, &order.Status, &order.Reference, &order.CreatedAt) {
		if order.Status == models.OrderSuccess {
			order.ID = orderID
			order.Email = email
			if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err == nil {
				orders = append(orders, order)
			}
		}
		order = models.Order{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return orders, nil
}

// buildVaultItems flattens settled orders into the vault view: one
// entry per unique product, earliest purchase wins. Titles come from
// the order snapshots; cover, kind and file reference come from the
// live catalog so re-uploaded files stay reachable. Items whose
// product has been deleted since purchase are skipped.
func buildVaultItems(orders []models.Order, catalog map[string]models.Product) []models.VaultItem {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	seen := make(map[string]bool)
	items := make([]models.VaultItem, 0)

	for _, order := range orders {
		for _, line := range order.Items {
			if seen[line.ProductID] {
				continue
			}
			p, ok := catalog[line.ProductID]
			if !ok {
				continue
			}
			seen[line.ProductID] = true
			items = append(items, models.VaultItem{
				ProductID:   line.ProductID,
				Title:       line.Title,
				Kind:        p.Kind,
				CoverURL:    p.CoverURL,
				FileURL:     p.FileURL,
				PurchasedAt: order.CreatedAt,
			})
		}
	}

	return items
}

// ResolveVault aggregates everything an email is entitled to
func ResolveVault(email string) ([]models.VaultItem, error) {
	orders, err := fetchSettledOrders(email)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]models.Product)
	for _, order := range orders {
		for _, line := range order.Items {
			if _, ok := catalog[line.ProductID]; ok {
				continue
			}
			p, err := cache.GetProductFromCache(line.ProductID)
			if err != nil || p == nil {
				// Deleted products drop out of the vault silently
				continue
			}
			catalog[line.ProductID] = *p
		}
	}

	return buildVaultItems(orders, catalog), nil
}

// HasSettledOrders reports whether an email owns at least one
// settled order. Used to refuse access codes for unknown addresses.
func HasSettledOrders(email string) (bool, error) {
	orders, err := fetchSettledOrders(email)
	if err != nil {
		return false, err
	}
	return len(orders) > 0, nil
}
