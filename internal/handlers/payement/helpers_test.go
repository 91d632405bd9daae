package payement

import (
	"errors"
	"fmt"
	"testing"

	"bookhaven_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() map[string]models.Product {
	p1 := gocql.TimeUUID()
	p2 := gocql.TimeUUID()
	return map[string]models.Product{
		p1.String(): {ID: p1, Title: "Atlas of Tides", PriceNGN: 5000, PriceUSD: 12, Kind: models.KindEbook, Published: true},
		p2.String(): {ID: p2, Title: "Night Sessions", PriceNGN: 7500, PriceUSD: 18, Kind: models.KindAudio, Published: true},
	}
}

func catalogIDs(catalog map[string]models.Product) []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	return ids
}

func TestBuildOrderItems(t *testing.T) {
	catalog := testCatalog()
	ids := catalogIDs(catalog)

	t.Run("snapshots title and currency price", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: ids[0], Quantity: 2}}

		items, ok := buildOrderItems(cart, catalog, "NGN")
		require.True(t, ok)
		require.Len(t, items, 1)

		assert.Equal(t, catalog[ids[0]].Title, items[0].Title)
		assert.Equal(t, catalog[ids[0]].PriceNGN, items[0].Price)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("selects USD price for USD carts", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: ids[0], Quantity: 1}}

		items, ok := buildOrderItems(cart, catalog, "USD")
		require.True(t, ok)
		assert.Equal(t, catalog[ids[0]].PriceUSD, items[0].Price)
	})

	t.Run("unknown product fails the whole cart", func(t *testing.T) {
		cart := []models.CartItem{
			{ProductID: ids[0], Quantity: 1},
			{ProductID: gocql.TimeUUID().String(), Quantity: 1},
		}

		items, ok := buildOrderItems(cart, catalog, "NGN")
		assert.False(t, ok)
		assert.Nil(t, items)
	})

	t.Run("quantity floor is one", func(t *testing.T) {
		cart := []models.CartItem{{ProductID: ids[0], Quantity: 0}}

		items, ok := buildOrderItems(cart, catalog, "NGN")
		require.True(t, ok)
		assert.Equal(t, 1, items[0].Quantity)
	})
}

func TestCalcTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.OrderItem
		expected float64
	}{
		{
			name:     "single item times quantity",
			items:    []models.OrderItem{{Price: 5000, Quantity: 2}},
			expected: 10000,
		},
		{
			name: "sums across items",
			items: []models.OrderItem{
				{Price: 5000, Quantity: 2},
				{Price: 7500, Quantity: 1},
			},
			expected: 17500,
		},
		{
			name:     "empty cart is zero",
			items:    nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calcTotal(tt.items))
		})
	}
}

func TestLookupFailureStatus(t *testing.T) {
	t.Run("missing row is a 404", func(t *testing.T) {
		assert.Equal(t, 404, lookupFailureStatus(gocql.ErrNotFound))
		assert.Equal(t, 404, lookupFailureStatus(fmt.Errorf("read product: %w", gocql.ErrNotFound)))
	})

	t.Run("storage failure is a 500, never a 404", func(t *testing.T) {
		assert.Equal(t, 500, lookupFailureStatus(errors.New("no connections available")))
	})
}

func TestServerSideTotalIgnoresClientPrices(t *testing.T) {
	// The client only ever supplies identities and quantities; the
	// total is always recomputed from catalog prices.
	catalog := testCatalog()
	ids := catalogIDs(catalog)

	cart := []models.CartItem{{ProductID: ids[0], Quantity: 3}}
	items, ok := buildOrderItems(cart, catalog, "NGN")
	require.True(t, ok)

	assert.Equal(t, catalog[ids[0]].PriceNGN*3, calcTotal(items))
}
