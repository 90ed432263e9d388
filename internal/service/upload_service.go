package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"portfolio/internal/ids"
	"portfolio/internal/media/sniffer"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image")
	ErrImageTooLarge    = errors.New("image too large")
)

// ObjectStore is the subset of the object storage client uploads need.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	KeyFromURL(raw string) (string, bool)
}

type UploadInput struct {
	Prefix       string
	File         io.Reader
	DeclaredType string
}

type UploadResult struct {
	Key  string
	URL  string
	MIME string
	Size int64
}

type UploadService struct {
	store    ObjectStore
	maxBytes int64
	log      zerolog.Logger
	now      func() time.Time
}

func NewUploadService(store ObjectStore, maxBytes int64, log zerolog.Logger) *UploadService {
	return &UploadService{
		store:    store,
		maxBytes: maxBytes,
		log:      log,
		now:      time.Now,
	}
}

func (s *UploadService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if input.File == nil {
		return UploadResult{}, fmt.Errorf("%w: empty file", ErrUnsupportedImage)
	}

	reader := input.File
	if s.maxBytes > 0 {
		reader = io.LimitReader(input.File, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return UploadResult{}, fmt.Errorf("%w: empty file", ErrUnsupportedImage)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return UploadResult{}, ErrImageTooLarge
	}

	head := data
	if len(head) > sniffer.HeadSize {
		head = head[:sniffer.HeadSize]
	}
	result, err := sniffer.Detect(head)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if input.DeclaredType != "" && input.DeclaredType != "application/octet-stream" && input.DeclaredType != result.MIME {
		return UploadResult{}, fmt.Errorf("%w: declared %s, actual %s", ErrUnsupportedImage, input.DeclaredType, result.MIME)
	}

	key := s.buildObjectKey(input.Prefix, ids.New(), result.Extension())
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME)
	if err != nil {
		return UploadResult{}, fmt.Errorf("put object: %w", err)
	}

	return UploadResult{
		Key:  key,
		URL:  url,
		MIME: result.MIME,
		Size: int64(len(data)),
	}, nil
}

// RemoveByURL deletes an object previously returned by Upload. URLs that do
// not point into the store are ignored.
func (s *UploadService) RemoveByURL(ctx context.Context, url string) {
	key, ok := s.store.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.store.Remove(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("remove object failed")
	}
}

func (s *UploadService) buildObjectKey(prefix, id, ext string) string {
	datePrefix := s.now().UTC().Format("2006/01/02")
	return path.Join(prefix, datePrefix, fmt.Sprintf("%s.%s", id, ext))
}
