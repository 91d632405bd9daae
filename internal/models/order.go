package models

import (
	"strings"
	"time"

	"github.com/gocql/gocql"
)

// Order lifecycle. An order is created pending and only moves to
// success through a verified gateway round-trip. There is no
// failed → success transition.
const (
	OrderPending = "pending"
	OrderSuccess = "success"
	OrderFailed  = "failed"
)

// OrderItem is a snapshot taken at checkout time. Title and unit price
// are copied from the product so later catalog edits never rewrite a
// receipt.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID         gocql.UUID  `json:"id" db:"order_id"`
	Email      string      `json:"email" db:"email"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	Currency   string      `json:"currency" db:"currency"`
	Status     string      `json:"status" db:"status"`
	Reference  string      `json:"reference,omitempty" db:"reference"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// EmailKey lowercases an email for storage keys and lookups. Orders
// keep the customer's original casing in the email column; matching is
// always done on the lowercased form.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
