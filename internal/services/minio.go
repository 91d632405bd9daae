package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"bookhaven_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFile stores an uploaded file under the given object name and
// returns the bucket-relative reference persisted on the product.
func UploadFile(prefix string, file *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO not initialized")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("%s/%d%s", prefix, time.Now().UnixNano(), filepath.Ext(file.Filename))

	_, err = database.MinioClient.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// GetObject opens a stored object for streaming. The caller owns the
// returned reader.
func GetObject(ctx context.Context, objectKey string) (*minio.Object, minio.ObjectInfo, error) {
	if database.MinioClient == nil {
		return nil, minio.ObjectInfo{}, fmt.Errorf("MinIO not initialized")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	obj, err := database.MinioClient.GetObject(ctx, bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}

	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, minio.ObjectInfo{}, err
	}

	return obj, info, nil
}
