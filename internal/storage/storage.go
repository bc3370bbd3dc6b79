// Package storage stores uploaded documents in an S3-compatible bucket and
// hands back durable public URLs for them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	cfg "github.com/rihla-travel/portal/internal/config"
)

// ErrExists is returned by Save when the key is already taken. Objects are
// write-once.
var ErrExists = errors.New("object already exists")

// Object is a listed object.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Storage interface {
	// Save writes r under key and fails with ErrExists instead of overwriting.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// URL returns the durable public URL for key.
	URL(key string) string

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
}

// New builds the configured backend: "s3" (AWS, R2, Spaces and friends via
// aws-sdk-go-v2) or "minio".
func New(ctx context.Context, c *cfg.Config) (Storage, error) {
	slog.Info("initializing storage",
		"driver", c.StorageDriver,
		"bucket", c.StorageBucket,
		"endpoint", c.StorageEndpoint,
	)

	switch c.StorageDriver {
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Region:    c.StorageRegion,
			Bucket:    c.StorageBucket,
			AccessKey: c.StorageAccessKey,
			SecretKey: c.StorageSecretKey,
			Endpoint:  c.StorageEndpoint,
			PublicURL: c.StoragePublicURL,
		})
	case "minio":
		return NewMinIOStorage(ctx, MinIOConfig{
			Endpoint:  c.StorageEndpoint,
			Bucket:    c.StorageBucket,
			AccessKey: c.StorageAccessKey,
			SecretKey: c.StorageSecretKey,
			UseSSL:    c.StorageUseSSL,
			PublicURL: c.StoragePublicURL,
		})
	}
	return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
}

// PublicURL joins base and key, escaping each key segment. S3 decodes a
// literal "+" in a path as a space, so it is escaped too.
func PublicURL(base, key string) string {
	segs := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, seg := range segs {
		segs[i] = strings.ReplaceAll(url.PathEscape(seg), "+", "%2B")
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segs, "/")
}

// KeysFromURL returns the object keys under folder that ref may point at,
// whatever base URL it was stored with. Both the decoded path and the raw
// text are tried so URLs stored without escaping still resolve.
func KeysFromURL(ref, folder string) []string {
	var keys []string
	if u, err := url.Parse(ref); err == nil {
		dir, file := path.Split(u.Path)
		if file != "" && path.Base(dir) == folder {
			keys = append(keys, folder+"/"+file)
		}
	}
	if i := strings.LastIndex(ref, "/"+folder+"/"); i >= 0 {
		if file := ref[i+len(folder)+2:]; file != "" && !strings.Contains(file, "/") {
			keys = append(keys, folder+"/"+file)
		}
	}
	return keys
}
