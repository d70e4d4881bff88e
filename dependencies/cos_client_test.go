package dependencies

import (
	"context"
	"hash/crc64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeBucket 在内存中模拟存储桶的 PUT / DELETE
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]string
	status  int
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != 0 {
		w.WriteHeader(b.status)
		_, _ = io.WriteString(w, "<Error><Code>AccessDenied</Code></Error>")
		return
	}
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = string(body)
		sum := crc64.Checksum(body, crc64.MakeTable(crc64.ECMA))
		w.Header().Set("x-cos-hash-crc64ecma", strconv.FormatUint(sum, 10))
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(b.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newBucketClient(t *testing.T, publicBase string) (*cosClient, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: make(map[string]string)}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	bucketURL, _ := url.Parse(srv.URL)
	public := bucketURL
	if publicBase != "" {
		public, _ = url.Parse(publicBase)
	}
	return newCOSClient(bucketURL, public, srv.Client(), zap.NewNop()), bucket
}

func TestCOSUploadAndDelete(t *testing.T) {
	client, bucket := newBucketClient(t, "https://cdn.example.org/media/")
	ctx := context.Background()
	key := "blog-images/cover.png"

	got, err := client.UploadFile(ctx, key, strings.NewReader("png-bytes"), int64(len("png-bytes")), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got != "https://cdn.example.org/media/blog-images/cover.png" {
		t.Errorf("url = %q", got)
	}
	if bucket.objects["/"+key] != "png-bytes" {
		t.Fatalf("bucket objects = %v", bucket.objects)
	}

	if err := client.DeleteObject(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := bucket.objects["/"+key]; ok {
		t.Errorf("object still present after delete")
	}
}

func TestCOSUploadRejected(t *testing.T) {
	client, bucket := newBucketClient(t, "")
	bucket.status = http.StatusForbidden

	if _, err := client.UploadFile(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png"); err == nil {
		t.Fatal("expected error for rejected upload")
	}
}

func TestCOSObjectURL(t *testing.T) {
	cases := []struct {
		base, key, want string
	}{
		{"https://bucket.cos.example.com", "a/b.png", "https://bucket.cos.example.com/a/b.png"},
		{"https://cdn.example.org/media", "/a.png", "https://cdn.example.org/media/a.png"},
		{"https://cdn.example.org/media/", "a.png", "https://cdn.example.org/media/a.png"},
	}
	for _, tc := range cases {
		client, _ := newBucketClient(t, tc.base)
		if got := client.objectURL(tc.key); got != tc.want {
			t.Errorf("objectURL(%q, %q) = %q, want %q", tc.base, tc.key, got, tc.want)
		}
	}
}
