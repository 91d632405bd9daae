package cache

import (
	"encoding/json"
	"time"

	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const (
	ProductCacheTTL = 10 * time.Minute
	CatalogCacheKey = "products:published"
)

// GetProductFromCache fetches a product from Redis, falling back to
// ScyllaDB and refilling the cache on a miss.
func GetProductFromCache(productID string) (*models.Product, error) {
	key := "product:" + productID

	// 1. Try Redis first
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var p models.Product
		if json.Unmarshal([]byte(data), &p) == nil {
			return &p, nil
		}
	}

	// 2. Fall back to ScyllaDB
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = database.GetPreparedProductByID().Bind(gocql.UUID(pid)).Scan(
		&p.ID, &p.Title, &p.Description, &p.PriceNGN, &p.PriceUSD, &p.Kind,
		&p.CoverURL, &p.FileURL, &p.PreviewURL, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 3. Refill the cache
	jsonData, _ := json.Marshal(p)
	database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)

	return &p, nil
}

// InvalidateProductCache drops the cached copies of a product
func InvalidateProductCache(productID string) {
	database.Redis.Del(ctx, "product:"+productID, CatalogCacheKey)
}

// InvalidateCatalogCache drops the cached published-products listing
func InvalidateCatalogCache() {
	database.Redis.Del(ctx, CatalogCacheKey)
}
