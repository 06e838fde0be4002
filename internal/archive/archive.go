// Package archive uploads generated statement documents to a GCS bucket
// so statements remain retrievable after the chat session.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// Uploader writes statement documents into one bucket. The client is
// created once and shared for the process lifetime.
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader creates an uploader for the given bucket. It assumes
// Application Default Credentials are configured.
func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewUploader: create storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Upload stores data under objectName and returns the gs:// URI.
func (u *Uploader) Upload(ctx context.Context, objectName string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("Upload: copy to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Upload: finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", u.bucket, objectName), nil
}

// Close releases the storage client.
func (u *Uploader) Close() error {
	return u.client.Close()
}
