package vault

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"bookhaven_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// DownloadFile streams a stored object back as an attachment with a
// synthetic filename, so the origin bucket layout never reaches the
// browser.
func DownloadFile(c *gin.Context) {
	fileRef := c.Query("file")
	if fileRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file reference"})
		return
	}

	obj, info, err := services.GetObject(context.Background(), fileRef)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer obj.Close()

	filename := "bookhaven_download" + filepath.Ext(fileRef)
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
	}

	c.DataFromReader(http.StatusOK, info.Size, contentType, obj, extraHeaders)
}
