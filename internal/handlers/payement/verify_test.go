package payement

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookhaven_back_end/internal/models"
)

func pendingOrder() *models.Order {
	return &models.Order{
		ID:         gocql.TimeUUID(),
		Email:      "reader@bookhaven.test",
		Items:      []models.OrderItem{{ProductID: "p1", Title: "Clean Architecture", Price: 5000, Quantity: 1}},
		TotalPrice: 5000,
		Currency:   "NGN",
		Status:     models.OrderPending,
		CreatedAt:  time.Now(),
	}
}

func TestResolveSettlement(t *testing.T) {
	t.Run("fresh settlement stamps status and reference", func(t *testing.T) {
		order := pendingOrder()

		settled, alreadySettled, err := resolveSettlement(true, order, "ref_001")
		require.NoError(t, err)

		assert.False(t, alreadySettled)
		assert.Equal(t, models.OrderSuccess, settled.Status)
		assert.Equal(t, "ref_001", settled.Reference)
	})

	t.Run("second verification of the same reference returns the settled order unchanged", func(t *testing.T) {
		order := pendingOrder()

		first, alreadySettled, err := resolveSettlement(true, order, "ref_001")
		require.NoError(t, err)
		require.False(t, alreadySettled)

		// The replay loses the conditional update and re-reads the row
		second, alreadySettled, err := resolveSettlement(false, first, "ref_001")
		require.NoError(t, err)

		assert.True(t, alreadySettled)
		assert.Same(t, first, second)
		assert.Equal(t, models.OrderSuccess, second.Status)
		assert.Equal(t, "ref_001", second.Reference)
	})

	t.Run("lost race against a still-pending row cannot settle", func(t *testing.T) {
		order := pendingOrder()

		settled, alreadySettled, err := resolveSettlement(false, order, "ref_001")
		assert.Error(t, err)
		assert.False(t, alreadySettled)
		assert.Nil(t, settled)
	})

	t.Run("failed order never settles", func(t *testing.T) {
		order := pendingOrder()
		order.Status = models.OrderFailed

		settled, alreadySettled, err := resolveSettlement(false, order, "ref_001")
		assert.Error(t, err)
		assert.False(t, alreadySettled)
		assert.Nil(t, settled)

		// The row keeps its failed status, nothing entitles from it
		assert.Equal(t, models.OrderFailed, order.Status)
	})
}
