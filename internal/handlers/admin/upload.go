package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"bookhaven_back_end/internal/cache"
	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/services"
)

// UploadProductFile receives a multipart file for a product and stores
// it in MinIO. The 'target' form field picks the slot: file (secure
// asset), cover or preview.
func UploadProductFile(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.PostForm("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	target := c.PostForm("target")
	var column, prefix string
	switch target {
	case "file", "":
		column, prefix = "file_url", "assets"
	case "cover":
		column, prefix = "cover_url", "covers"
	case "preview":
		column, prefix = "preview_url", "previews"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target must be file, cover or preview"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file received"})
		return
	}

	objectKey, err := services.UploadFile(prefix, fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "MinIO upload error", "details": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query("UPDATE products SET "+column+" = ?, updated_at = ? WHERE product_id = ?",
		objectKey, time.Now(), productUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product update error"})
		return
	}

	cache.InvalidateProductCache(productUUID.String())

	log.Printf("📦 Uploaded %s for product %s: %s", target, productUUID, objectKey)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"key":     objectKey,
	})
}
