package util

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func InitMinIO() error {
	if common.Config.MinIoEndpoint == nil || common.Config.MinIoAccessKey == nil || common.Config.MinIoSecretKey == nil {
		return fmt.Errorf("MinIO configuration is incomplete")
	}

	client, err := minio.New(*common.Config.MinIoEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(*common.Config.MinIoAccessKey, *common.Config.MinIoSecretKey, ""),
		Secure: true,
	})

	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	common.MinIOClient = client
	return nil
}

func ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := common.MinIOClient.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := common.MinIOClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadBuffer stores raw bytes under bucket/folder/objectName and returns the public URL.
func UploadBuffer(ctx context.Context, bucketName string, folder string, objectName string, data []byte, contentType string) (string, error) {
	if common.MinIOClient == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	if err := ensureBucket(ctx, bucketName); err != nil {
		return "", err
	}

	objectPath := objectName
	if folder != "" {
		objectPath = strings.TrimSuffix(folder, "/") + "/" + objectName
	}

	reader := bytes.NewReader(data)
	_, err := common.MinIOClient.PutObject(ctx, bucketName, objectPath, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("https://%s/%s/%s", *common.Config.MinIoEndpoint, bucketName, objectPath), nil
}

// UploadMultipartFile stores an uploaded form file and returns its public URL and object key.
func UploadMultipartFile(ctx context.Context, bucketName string, folder string, objectName string, file *multipart.FileHeader) (string, string, error) {
	if common.MinIOClient == nil {
		return "", "", fmt.Errorf("MinIO client not initialized")
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := ensureBucket(ctx, bucketName); err != nil {
		return "", "", err
	}

	objectPath := objectName
	if folder != "" {
		objectPath = strings.TrimSuffix(folder, "/") + "/" + objectName
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = common.MinIOClient.PutObject(ctx, bucketName, objectPath, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object: %w", err)
	}

	url := fmt.Sprintf("https://%s/%s/%s", *common.Config.MinIoEndpoint, bucketName, objectPath)
	return url, objectPath, nil
}

// RemoveObject deletes a stored object by key.
func RemoveObject(ctx context.Context, bucketName string, objectPath string) error {
	if common.MinIOClient == nil {
		return fmt.Errorf("MinIO client not initialized")
	}
	return common.MinIOClient.RemoveObject(ctx, bucketName, objectPath, minio.RemoveObjectOptions{})
}
