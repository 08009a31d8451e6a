package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
)

// BucketService stores product and company images. Upload returns the
// object's stable public URL, which is what gets persisted on the row.
type BucketService interface {
	UploadImage(ctx context.Context, key string, file io.Reader) (string, error)
	DeleteImage(ctx context.Context, key string) error
	PublicURL(key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	bucketName := os.Getenv("IMAGE_GCS_BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var IMAGE_GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("IMAGE_CDN_DOMAIN")

	ctx := context.Background()
	opts := ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucketName,
		cdnDomain:     cdnDomain,
	}, nil
}

func (bs *bucketService) UploadImage(ctx context.Context, key string, file io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write image to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return bs.PublicURL(key), nil
}

func (bs *bucketService) DeleteImage(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := bs.storageClient.Bucket(bs.bucketName).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.bucketName, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", strings.TrimSuffix(bs.cdnDomain, "/"), key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	default:
		return ""
	}
}
