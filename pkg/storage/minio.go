package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object describes a stored media object.
type Object struct {
	// Key identifies the object for later deletion.
	Key string
	// URL is the public address clients use to fetch the object.
	URL string
	// Size is the stored size in bytes.
	Size int64
}

// Client uploads media files to an S3-compatible object store.
type Client struct {
	client *minio.Client
	bucket string
	secure bool
}

// NewClient creates a media storage client and ensures the bucket exists.
func NewClient(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Client, error) {
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Client{client: mc, bucket: bucket, secure: useSSL}, nil
}

// Upload streams a file into the bucket under a generated key and returns
// the stored object's URL and key. The original filename only contributes
// its extension; keys are unique per upload.
func (c *Client) Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (*Object, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	info, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &Object{
		Key:  key,
		URL:  c.objectURL(key),
		Size: info.Size,
	}, nil
}

// Delete removes an object by key. Callers treat failures as best-effort
// cleanup except in compensation flows.
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// Ping checks that the storage endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.client.BucketExists(ctx, c.bucket); err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}
	return nil
}

func (c *Client) objectURL(key string) string {
	scheme := "http"
	if c.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.client.EndpointURL().Host, c.bucket, key)
}
