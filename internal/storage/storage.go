// Package storage reads objects from S3-compatible storage. The seed tool uses
// it to load an exercise catalog from s3://bucket/key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ObjectStore defines the read operations the app needs from object storage.
type ObjectStore interface {
	// Open streams the object at bucket/key. The caller closes the reader.
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Error constants for storage layer
var (
	ErrObjectNotFound = errors.New("object not found in storage")
	ErrInvalidURL     = errors.New("invalid object URL")
)

// IsObjectURL reports whether location names an object (s3://...) rather than a local path.
func IsObjectURL(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// ParseObjectURL splits s3://bucket/path/to/key into bucket and key.
func ParseObjectURL(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: scheme must be s3, got %q", ErrInvalidURL, u.Scheme)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidURL, location)
	}
	return u.Host, key, nil
}
