// services/storage.go - S3-compatible object storage for avatar uploads
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	storageClient *s3.Client
	storageBucket string
	publicBaseURL string
)

// InitStorage configures the object-storage client from the environment.
// Uploads are disabled (calls return an error) when no endpoint is set.
func InitStorage() error {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKeyID := os.Getenv("S3_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("S3_ACCESS_KEY_SECRET")
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "auto"
	}
	storageBucket = os.Getenv("S3_BUCKET_NAME")
	publicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")
	if publicBaseURL == "" && endpoint != "" {
		publicBaseURL = fmt.Sprintf("%s/%s", endpoint, storageBucket)
	}

	if endpoint == "" || storageBucket == "" {
		return errors.New("object storage not configured")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
	)
	if err != nil {
		return fmt.Errorf("failed to load storage config: %w", err)
	}

	storageClient = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return nil
}

// StorageReady reports whether uploads are configured.
func StorageReady() bool {
	return storageClient != nil
}

// UploadAvatar stores a user's avatar under a per-user key and returns the
// public URL.
func UploadAvatar(fileHeader *multipart.FileHeader, userID uint) (string, error) {
	key := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	return uploadObject(fileHeader, key)
}

func uploadObject(fileHeader *multipart.FileHeader, key string) (string, error) {
	if storageClient == nil {
		return "", errors.New("object storage not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = storageClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s", publicBaseURL, key), nil
}
