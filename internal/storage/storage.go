package storage

import (
	"context"
	"io"
)

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Bucket string
	Key    string
	Size   int64
}

// ObjectStorage captures the S3-compatible reads the ingest sources need.
type ObjectStorage interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
}
