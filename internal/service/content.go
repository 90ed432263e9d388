package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"portfolio/internal/repository"
)

var (
	// ErrNotFound is returned for unknown content ids.
	ErrNotFound     = repository.ErrNotFound
	ErrInvalidInput = errors.New("invalid input")
)

// ContentCache holds public listings between writes. Entries are scoped to a
// resource generation that Invalidate advances. Failures are never surfaced
// to callers.
type ContentCache interface {
	Generation(ctx context.Context, resource string) (int64, error)
	Get(ctx context.Context, resource string, generation int64, variant string, dest any) (bool, error)
	Set(ctx context.Context, resource string, generation int64, variant string, value any) error
	Invalidate(ctx context.Context, resource string) error
}

type noCache struct{}

func (noCache) Generation(context.Context, string) (int64, error)              { return 0, nil }
func (noCache) Get(context.Context, string, int64, string, any) (bool, error) { return false, nil }
func (noCache) Set(context.Context, string, int64, string, any) error         { return nil }
func (noCache) Invalidate(context.Context, string) error                      { return nil }

func cacheOrNop(c ContentCache) ContentCache {
	if c == nil {
		return noCache{}
	}
	return c
}

// cachedList serves a listing from cache, falling back to load and storing
// the result. The generation is read before load, so a write that
// invalidates during the load leaves the stored result unreachable.
func cachedList[T any](
	ctx context.Context,
	c ContentCache,
	log zerolog.Logger,
	resource, variant string,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	gen, err := c.Generation(ctx, resource)
	if err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("cache generation read failed")
		return load(ctx)
	}

	var items []T
	hit, err := c.Get(ctx, resource, gen, variant, &items)
	if err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("cache read failed")
	}
	if hit && err == nil {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, resource, gen, variant, items); err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("cache write failed")
	}
	return items, nil
}

func invalidate(ctx context.Context, c ContentCache, log zerolog.Logger, resource string) {
	if err := c.Invalidate(ctx, resource); err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("cache invalidate failed")
	}
}

func requireText(values ...string) error {
	for _, v := range values {
		if v == "" {
			return ErrInvalidInput
		}
	}
	return nil
}
