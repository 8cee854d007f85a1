package media

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
}

type fakeS3 struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
	status := f.status
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
		if r.Method == http.MethodDelete {
			status = http.StatusNoContent
		}
	}
	w.WriteHeader(status)
}

func newTestStore(t *testing.T, handler http.Handler) *S3Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:           "us-east-1",
		BaseEndpoint:     aws.String(srv.URL),
		UsePathStyle:     true,
		Credentials:      credentials.NewStaticCredentialsProvider("key", "secret", ""),
		RetryMaxAttempts: 1,
	})
	return NewS3StoreWithClient(client, "media", "https://cdn.example.com/")
}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestS3Store_Upload(t *testing.T) {
	backend := &fakeS3{}
	store := newTestStore(t, backend)

	asset, err := store.Upload(context.Background(), fileHeader(t, "avatar", "Me.PNG", []byte("png-bytes")), FolderAvatars)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(asset.Key, "avatars/"))
	assert.True(t, strings.HasSuffix(asset.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+asset.Key, asset.URL)

	require.Len(t, backend.requests, 1)
	assert.Equal(t, http.MethodPut, backend.requests[0].method)
	assert.Equal(t, "/media/"+asset.Key, backend.requests[0].path)
	assert.Contains(t, string(backend.requests[0].body), "png-bytes")
}

func TestS3Store_UploadEmpty(t *testing.T) {
	backend := &fakeS3{}
	store := newTestStore(t, backend)

	_, err := store.Upload(context.Background(), nil, FolderAvatars)
	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Empty(t, backend.requests)
}

func TestS3Store_UploadFailure(t *testing.T) {
	backend := &fakeS3{status: http.StatusForbidden}
	store := newTestStore(t, backend)

	_, err := store.Upload(context.Background(), fileHeader(t, "avatar", "a.jpg", []byte("x")), FolderAvatars)
	assert.Error(t, err)
}

func TestS3Store_Delete(t *testing.T) {
	backend := &fakeS3{}
	store := newTestStore(t, backend)

	require.NoError(t, store.Delete(context.Background(), "avatars/2024/01/01/x.png"))
	require.Len(t, backend.requests, 1)
	assert.Equal(t, http.MethodDelete, backend.requests[0].method)
	assert.Equal(t, "/media/avatars/2024/01/01/x.png", backend.requests[0].path)
}

func TestS3Store_DeleteEmptyKey(t *testing.T) {
	backend := &fakeS3{}
	store := newTestStore(t, backend)

	require.NoError(t, store.Delete(context.Background(), ""))
	assert.Empty(t, backend.requests)
}

func TestStorageKey(t *testing.T) {
	a := StorageKey(FolderCoverImages, "banner.JPG")
	b := StorageKey(FolderCoverImages, "banner.JPG")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "cover-images/"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
}
