package services

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"bookhaven_back_end/internal/database"
)

// GenerateSignedURL produces a time-limited URL for a stored object.
// Used for cover images; secure files are never exposed this way, they
// go through the authenticated download endpoint.
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	reqParams := make(url.Values)

	bucket := os.Getenv("MINIO_BUCKET")

	// Accept both bare object keys and full URLs persisted by older rows
	key := objectPath
	if idx := strings.Index(objectPath, "/"+bucket+"/"); idx >= 0 {
		key = objectPath[idx+len(bucket)+2:]
	}

	presignedURL, err := database.MinioClient.PresignedGetObject(
		ctx,
		bucket,
		key,
		duration,
		reqParams,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
