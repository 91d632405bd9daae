package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookhaven_back_end/internal/cache"
	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"
	"bookhaven_back_end/internal/services"
)

// GetAllProducts lists the published storefront catalog
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()

	// ✅ Check the Redis cache first
	if val, err := database.RedisClient.Get(ctx, cache.CatalogCacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	// ✅ Fall back to ScyllaDB
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT product_id, title, description, price_ngn, price_usd, kind, cover_url, file_url, preview_url, published, created_at, updated_at FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Title, &p.Description, &p.PriceNGN, &p.PriceUSD, &p.Kind, &p.CoverURL, &p.FileURL, &p.PreviewURL, &p.Published, &p.CreatedAt, &p.UpdatedAt) {
		if p.Published {
			products = append(products, p.PublicView())
		}
		p = models.Product{} // reset for the next row
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product read error: " + err.Error()})
		return
	}

	// ✅ Refill the cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cache.CatalogCacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns one published product, secure reference stripped
func GetProduct(c *gin.Context) {
	p, err := cache.GetProductFromCache(c.Param("id"))
	if err != nil || p == nil || !p.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, p.PublicView())
}

// SearchProducts queries Elasticsearch first, with an in-database
// fallback scan when the index is empty
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'q' parameter"})
		return
	}

	// 🔎 1️⃣ Elasticsearch (preferred)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		// ✅ Sign the cover URLs before returning
		for i := range results {
			if cover, ok := results[i]["cover_url"].(string); ok && cover != "" {
				signedURL, err := services.GenerateSignedURL(context.Background(), cover, 24*time.Hour)
				if err == nil {
					results[i]["cover_url"] = signedURL
				}
			}
		}
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ ScyllaDB fallback when ES is empty (full scan, in-memory filter)
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT product_id, title, description, price_ngn, price_usd, kind, cover_url, file_url, preview_url, published, created_at, updated_at FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Title, &p.Description, &p.PriceNGN, &p.PriceUSD, &p.Kind, &p.CoverURL, &p.FileURL, &p.PreviewURL, &p.Published, &p.CreatedAt, &p.UpdatedAt) {
		if p.Published && (containsIgnoreCase(p.Title, query) || containsIgnoreCase(p.Description, query) || containsIgnoreCase(p.Kind, query)) {
			products = append(products, p.PublicView())
		}
		p = models.Product{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Case-insensitive search helper
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
