package database

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bind mutates the *gocql.Query it is called on, so two concurrent
// requests must never receive the same instance from an accessor.
func TestStatementAccessorsReturnFreshQueries(t *testing.T) {
	stmtProductsSession = &gocql.Session{}
	stmtOrdersSession = &gocql.Session{}

	t.Run("distinct instance per call", func(t *testing.T) {
		q1 := GetPreparedProductByID()
		q2 := GetPreparedProductByID()
		require.NotNil(t, q1)
		assert.NotSame(t, q1, q2)

		assert.NotSame(t, GetPreparedOrderByID(), GetPreparedOrderByID())
		assert.NotSame(t, GetPreparedInsertOrder(), GetPreparedInsertOrder())
		assert.NotSame(t, GetPreparedInsertOrderByEmail(), GetPreparedInsertOrderByEmail())
		assert.NotSame(t, GetPreparedOrdersByEmail(), GetPreparedOrdersByEmail())
	})

	t.Run("bound values do not leak across calls", func(t *testing.T) {
		q1 := GetPreparedOrdersByEmail().Bind("first@bookhaven.test")
		q2 := GetPreparedOrdersByEmail().Bind("second@bookhaven.test")

		assert.Equal(t, []interface{}{"first@bookhaven.test"}, q1.Values())
		assert.Equal(t, []interface{}{"second@bookhaven.test"}, q2.Values())
	})
}
