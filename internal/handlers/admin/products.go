package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"bookhaven_back_end/internal/cache"
	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"
	"bookhaven_back_end/internal/services"
)

// CreateProduct adds a catalog entry. Prices are minor-unit-free
// decimals in both list currencies; the secure file reference is set
// separately through the upload endpoint.
func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The 'title' field is required"})
		return
	}
	if !models.IsValidKind(p.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kind must be one of ebook, audio, video, course"})
		return
	}
	if p.PriceNGN < 0 || p.PriceUSD < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices cannot be negative"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (product_id, title, description, price_ngn, price_usd, kind, cover_url, file_url, preview_url, published, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := session.Query(query, p.ID, p.Title, p.Description, p.PriceNGN, p.PriceUSD, p.Kind, p.CoverURL, p.FileURL, p.PreviewURL, p.Published, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product creation error: " + err.Error()})
		return
	}

	cache.InvalidateCatalogCache()

	// 🔄 Elasticsearch indexing
	if p.Published {
		go services.IndexProduct(p)
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProduct patches the provided fields only. Settled orders are
// untouched: line items carry their own price and title snapshots.
func UpdateProduct(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		PriceNGN    *float64 `json:"price_ngn"`
		PriceUSD    *float64 `json:"price_usd"`
		Kind        *string  `json:"kind"`
		CoverURL    *string  `json:"cover_url"`
		PreviewURL  *string  `json:"preview_url"`
		Published   *bool    `json:"published"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if input.Title != nil {
		updates = append(updates, "title = ?")
		values = append(values, *input.Title)
	}
	if input.Description != nil {
		updates = append(updates, "description = ?")
		values = append(values, *input.Description)
	}
	if input.PriceNGN != nil {
		updates = append(updates, "price_ngn = ?")
		values = append(values, *input.PriceNGN)
	}
	if input.PriceUSD != nil {
		updates = append(updates, "price_usd = ?")
		values = append(values, *input.PriceUSD)
	}
	if input.Kind != nil {
		if !models.IsValidKind(*input.Kind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind"})
			return
		}
		updates = append(updates, "kind = ?")
		values = append(values, *input.Kind)
	}
	if input.CoverURL != nil {
		updates = append(updates, "cover_url = ?")
		values = append(values, *input.CoverURL)
	}
	if input.PreviewURL != nil {
		updates = append(updates, "preview_url = ?")
		values = append(values, *input.PreviewURL)
	}
	if input.Published != nil {
		updates = append(updates, "published = ?")
		values = append(values, *input.Published)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, productUUID)

	query := "UPDATE products SET " + updates[0]
	for i := 1; i < len(updates); i++ {
		query += ", " + updates[i]
	}
	query += " WHERE product_id = ?"

	if err := session.Query(query, values...).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update error"})
		return
	}

	// 🔹 Invalidate Redis and refresh the search index
	cache.InvalidateProductCache(productUUID.String())
	if p, err := cache.GetProductFromCache(productUUID.String()); err == nil && p != nil {
		if p.Published {
			go services.IndexProduct(*p)
		} else {
			go services.RemoveProductFromIndex(productUUID.String())
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteProduct removes a catalog entry. Vault resolution tolerates
// the gap: items pointing at a deleted product are skipped, not
// errored.
func DeleteProduct(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query("DELETE FROM products WHERE product_id = ?", productUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Deletion error"})
		return
	}

	cache.InvalidateProductCache(productUUID.String())
	go services.RemoveProductFromIndex(productUUID.String())

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAllProducts lists the full catalog for the dashboard, drafts and
// secure references included
func GetAllProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT product_id, title, description, price_ngn, price_usd, kind, cover_url, file_url, preview_url, published, created_at, updated_at FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Title, &p.Description, &p.PriceNGN, &p.PriceUSD, &p.Kind, &p.CoverURL, &p.FileURL, &p.PreviewURL, &p.Published, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product read error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}
