package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"b2bmarket/internal/domain/service"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

const publicHost = "https://storage.googleapis.com/"

// CloudStorageClient keeps product images in a single bucket. Objects are
// public-read and addressed by their storage.googleapis.com URL.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

var _ service.FileUploadService = (*CloudStorageClient)(nil)

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func objectName(folder, contentType string, now time.Time) string {
	ext, ok := extensions[contentType]
	if !ok {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%s-%s%s", strings.Trim(folder, "/"), uuid.New().String(), now.Format("20060102150405"), ext)
}

// objectFromURL extracts the object name from a public URL of this bucket.
func objectFromURL(bucket, fileURL string) (string, bool) {
	if !strings.HasPrefix(fileURL, publicHost) {
		return "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(fileURL, publicHost), "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	name := objectName(folder, contentType, time.Now())

	obj := c.client.Bucket(c.bucketName).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"
	wc.PredefinedACL = "publicRead"

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		logger.RemoteFailure("upload image", name, err)
		return "", errors.Remote("upload image", err)
	}
	if err := wc.Close(); err != nil {
		logger.RemoteFailure("upload image", name, err)
		return "", errors.Remote("upload image", err)
	}

	return publicHost + c.bucketName + "/" + name, nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	name, ok := objectFromURL(c.bucketName, fileURL)
	if !ok {
		return errors.BadRequest("Invalid file URL", nil)
	}

	if err := c.client.Bucket(c.bucketName).Object(name).Delete(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return nil
		}
		logger.RemoteFailure("delete image", name, err)
		return errors.Remote("delete image", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
