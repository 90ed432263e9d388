package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0x01}, 64)...)

func newTestUploads(store *memObjectStore, maxBytes int64) *UploadService {
	svc := NewUploadService(store, maxBytes, nopLogger)
	svc.now = func() time.Time { return time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestUploadService_StoresUnderDatedKey(t *testing.T) {
	store := newMemObjectStore()
	svc := newTestUploads(store, 1<<20)

	result, err := svc.Upload(context.Background(), UploadInput{
		Prefix:       "projects",
		File:         bytes.NewReader(pngBytes),
		DeclaredType: "image/png",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "projects/2024/05/17/"), result.Key)
	assert.True(t, strings.HasSuffix(result.Key, ".png"), result.Key)
	assert.Equal(t, objectBaseURL+result.Key, result.URL)
	assert.Equal(t, "image/png", result.MIME)
	assert.Equal(t, int64(len(pngBytes)), result.Size)
	assert.Equal(t, pngBytes, store.objects[result.Key])
	assert.Equal(t, "image/png", store.types[result.Key])
}

func TestUploadService_Rejections(t *testing.T) {
	cases := map[string]struct {
		body     []byte
		declared string
		max      int64
		want     error
	}{
		"svg":      {body: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), declared: "image/svg+xml", max: 1 << 20, want: ErrUnsupportedImage},
		"text":     {body: []byte("hello"), max: 1 << 20, want: ErrUnsupportedImage},
		"empty":    {body: nil, max: 1 << 20, want: ErrUnsupportedImage},
		"mismatch": {body: pngBytes, declared: "image/jpeg", max: 1 << 20, want: ErrUnsupportedImage},
		"too big":  {body: pngBytes, declared: "image/png", max: 16, want: ErrImageTooLarge},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := newMemObjectStore()
			svc := newTestUploads(store, tc.max)
			_, err := svc.Upload(context.Background(), UploadInput{
				Prefix:       "projects",
				File:         bytes.NewReader(tc.body),
				DeclaredType: tc.declared,
			})
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, store.objects)
		})
	}
}

func TestUploadService_OctetStreamUsesSniffedType(t *testing.T) {
	store := newMemObjectStore()
	svc := newTestUploads(store, 1<<20)

	result, err := svc.Upload(context.Background(), UploadInput{
		Prefix:       "projects",
		File:         bytes.NewReader(pngBytes),
		DeclaredType: "application/octet-stream",
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", result.MIME)
}

func TestUploadService_RemoveByURLIgnoresForeignURLs(t *testing.T) {
	store := newMemObjectStore()
	svc := newTestUploads(store, 1<<20)

	svc.RemoveByURL(context.Background(), "https://elsewhere.example/a.png")
	assert.Empty(t, store.removed)

	svc.RemoveByURL(context.Background(), objectBaseURL+"projects/x.png")
	assert.Equal(t, []string{"projects/x.png"}, store.removed)
}
