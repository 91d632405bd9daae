package models

// CartItem is what the client sends at checkout. Only the product
// identity and quantity are trusted; prices are re-read server-side.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
