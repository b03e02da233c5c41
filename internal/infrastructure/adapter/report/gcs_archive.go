package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/report"
)

// ObjectURI returns the gs:// location of an object
func ObjectURI(bucket, objectName string) string {
	return "gs://" + bucket + "/" + strings.TrimPrefix(objectName, "/")
}

// GCSArchive uploads rendered reports to a Cloud Storage bucket
type GCSArchive struct {
	client *storage.Client
	bucket string
	logger coreport.Logger
}

// NewGCSArchive creates a storage client. Empty credentialsJSON means Application Default Credentials.
func NewGCSArchive(ctx context.Context, bucket, credentialsJSON string, logger coreport.Logger) (*GCSArchive, error) {
	if bucket == "" {
		return nil, errors.New("report bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSArchive{client: client, bucket: bucket, logger: logger}, nil
}

// Upload writes data to objectName and returns its gs:// URI
func (a *GCSArchive) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	wc := a.client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("write %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectName, err)
	}

	uri := ObjectURI(a.bucket, objectName)
	a.logger.Info("Report archived", map[string]any{
		"uri":   uri,
		"bytes": len(data),
	})
	return uri, nil
}

// Close releases the storage client
func (a *GCSArchive) Close() error {
	return a.client.Close()
}

var _ report.Archive = (*GCSArchive)(nil)
