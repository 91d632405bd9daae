package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// Hot-path statements for checkout and the vault. Each accessor builds
// a fresh *gocql.Query per call: the driver prepares and caches the
// statement server-side, but the Query wrapper itself is mutable
// (Bind writes into it), so handing one shared instance to concurrent
// requests would race.
const (
	cqlProductByID = `SELECT product_id, title, description, price_ngn, price_usd, kind, cover_url, file_url, preview_url, published, created_at, updated_at
		FROM products WHERE product_id = ?`

	cqlInsertOrder = `INSERT INTO orders (order_id, email, email_lc, items, total_price, currency, status, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	cqlInsertOrderByEmail = `INSERT INTO orders_by_email (email_lc, order_id, items, total_price, currency, status, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	cqlOrdersByEmail = `SELECT order_id, items, total_price, currency, status, reference, created_at
		FROM orders_by_email WHERE email_lc = ?`

	cqlOrderByID = `SELECT order_id, email, items, total_price, currency, status, reference, created_at
		FROM orders WHERE order_id = ?`
)

var (
	stmtProductsSession *gocql.Session
	stmtOrdersSession   *gocql.Session

	preparedOnce sync.Once
)

// InitPreparedStatements resolves the hot-path sessions up front so the
// first request does not pay the connection cost
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		productsSession, err := GetProductsSession()
		if err != nil {
			log.Printf("⚠️ Could not initialize prepared statements: %v", err)
			return
		}
		ordersSession, err := GetOrdersSession()
		if err != nil {
			log.Printf("⚠️ Could not initialize prepared statements: %v", err)
			return
		}

		stmtProductsSession = productsSession
		stmtOrdersSession = ordersSession

		log.Println("✅ Prepared statements initialized")
	})
}

func GetPreparedProductByID() *gocql.Query {
	return stmtProductsSession.Query(cqlProductByID)
}

func GetPreparedInsertOrder() *gocql.Query {
	return stmtOrdersSession.Query(cqlInsertOrder)
}

func GetPreparedInsertOrderByEmail() *gocql.Query {
	return stmtOrdersSession.Query(cqlInsertOrderByEmail)
}

func GetPreparedOrdersByEmail() *gocql.Query {
	return stmtOrdersSession.Query(cqlOrdersByEmail)
}

func GetPreparedOrderByID() *gocql.Query {
	return stmtOrdersSession.Query(cqlOrderByID)
}
