package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	cfg "github.com/rihla-travel/portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"plain", "https://cdn.example.com/uploads/", "europe-visa/1_a.pdf", "https://cdn.example.com/uploads/europe-visa/1_a.pdf"},
		{"leading slash", "http://localhost:9000/uploads", "/x", "http://localhost:9000/uploads/x"},
		{"hash and space", "https://cdn.example.com", "europe-visa/1_passport #2.pdf", "https://cdn.example.com/europe-visa/1_passport%20%232.pdf"},
		{"question mark", "https://cdn.example.com", "europe-visa/1_a?b.pdf", "https://cdn.example.com/europe-visa/1_a%3Fb.pdf"},
		{"percent", "https://cdn.example.com", "europe-visa/1_50%.pdf", "https://cdn.example.com/europe-visa/1_50%25.pdf"},
		{"plus", "https://cdn.example.com", "europe-visa/1_a+b.pdf", "https://cdn.example.com/europe-visa/1_a%2Bb.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PublicURL(tt.base, tt.key)
			assert.Equal(t, tt.want, got)

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.Empty(t, u.Fragment)
			assert.Empty(t, u.RawQuery)
			assert.True(t, strings.HasSuffix(u.Path, "/"+strings.TrimPrefix(tt.key, "/")))
		})
	}
}

func TestKeysFromURL(t *testing.T) {
	key := "global-jobs/1_passport #2.pdf"

	assert.Contains(t, KeysFromURL(PublicURL("https://cdn.example.com/uploads", key), "global-jobs"), key)
	assert.Contains(t, KeysFromURL(PublicURL("https://bucket.s3.eu-west-1.amazonaws.com", key), "global-jobs"), key)
	// stored before escaping
	assert.Contains(t, KeysFromURL("https://bucket.s3.amazonaws.com/global-jobs/1_passport #2.pdf", "global-jobs"), key)

	assert.Empty(t, KeysFromURL("https://cdn.example.com/europe-visa/1_a.pdf", "global-jobs"))
	assert.Empty(t, KeysFromURL("https://cdn.example.com/global-jobs/", "global-jobs"))
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &cfg.Config{StorageDriver: "ftp"})
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestMinIORequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), MinIOConfig{Bucket: "uploads"})
	assert.ErrorContains(t, err, "endpoint is required")
}

// fakeBucket is a minimal path-style S3 endpoint holding one bucket.
type fakeBucket struct {
	mu      sync.Mutex
	bucket  string
	objects map[string][]byte
	puts    []http.Header
}

func newFakeBucket(t *testing.T, bucket string) (*fakeBucket, *httptest.Server) {
	t.Helper()
	fb := &fakeBucket{bucket: bucket, objects: make(map[string][]byte)}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	key := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"+fb.bucket), "/")
	if key == "" {
		if _, ok := r.URL.Query()["location"]; ok {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	_, exists := fb.objects[key]
	switch r.Method {
	case http.MethodHead:
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("Content-Length", "0")
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		fb.puts = append(fb.puts, r.Header.Clone())
		if exists && r.Header.Get("If-None-Match") == "*" {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusPreconditionFailed)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>PreconditionFailed</Code><Message>At least one of the pre-conditions you specified did not hold</Message></Error>`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		fb.objects[key] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3SaveIsWriteOnce(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	fb, srv := newFakeBucket(t, "uploads")

	s, err := NewS3Storage(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "uploads",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
	})
	require.NoError(t, err)

	key := "global-jobs/1_cv.pdf"
	require.NoError(t, s.Save(context.Background(), key, bytes.NewReader([]byte("v1")), 2, "application/pdf"))

	err = s.Save(context.Background(), key, bytes.NewReader([]byte("v2")), 2, "application/pdf")
	assert.True(t, errors.Is(err, ErrExists), "got %v", err)

	require.Len(t, fb.puts, 2)
	for _, h := range fb.puts {
		assert.Equal(t, "*", h.Get("If-None-Match"))
	}
	assert.Contains(t, string(fb.objects[key]), "v1")
	assert.NotContains(t, string(fb.objects[key]), "v2")
	assert.Equal(t, srv.URL+"/uploads/global-jobs/1_cv.pdf", s.URL(key))
}

func TestMinIOSaveIsWriteOnce(t *testing.T) {
	fb, srv := newFakeBucket(t, "uploads")

	m, err := NewMinIOStorage(context.Background(), MinIOConfig{
		Endpoint:  srv.URL,
		Bucket:    "uploads",
		AccessKey: "test",
		SecretKey: "testtesttest",
	})
	require.NoError(t, err)

	key := "events-service/1_hall.jpg"
	require.NoError(t, m.Save(context.Background(), key, bytes.NewReader([]byte("v1")), 2, "image/jpeg"))

	err = m.Save(context.Background(), key, bytes.NewReader([]byte("v2")), 2, "image/jpeg")
	assert.True(t, errors.Is(err, ErrExists), "got %v", err)

	assert.Len(t, fb.puts, 1)
	assert.Contains(t, string(fb.objects[key]), "v1")
}
