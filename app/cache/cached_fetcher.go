package cache

import (
	"context"
	"log"
	"strconv"
	"strings"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
)

// CachedFetcher wraps a cms.Fetcher with the document cache. Hits are
// served locally; misses go upstream and are stored best-effort (a
// cache write failure never fails the request). Preview fetches bypass
// the cache entirely so drafts are never stored or served stale.
type CachedFetcher struct {
	upstream cms.Fetcher
	cache    *DocumentCache
}

// NewCachedFetcher wraps upstream with the given cache.
func NewCachedFetcher(upstream cms.Fetcher, cache *DocumentCache) *CachedFetcher {
	return &CachedFetcher{upstream: upstream, cache: cache}
}

// Query serves a paged search from cache when possible. The cursor and
// every other request parameter participate in the cache key, so each
// page of a listing caches independently.
func (f *CachedFetcher) Query(ctx context.Context, docType string, opts cms.QueryOptions) (*cms.Page, error) {
	key := PageKey(
		docType,
		opts.Order,
		strconv.Itoa(opts.PageSize),
		opts.After,
		opts.Cursor,
		strings.Join(opts.Fields, ","),
	)

	var cached cms.Page
	if err := f.cache.Get(key, &cached); err == nil {
		return &cached, nil
	} else if err != ErrMiss {
		log.Printf("cache: read %s: %v", key, err)
	}

	page, err := f.upstream.Query(ctx, docType, opts)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(key, page); err != nil {
		log.Printf("cache: write %s: %v", key, err)
	}

	return page, nil
}

// GetByUID serves a document from cache when possible. Preview
// requests always go upstream.
func (f *CachedFetcher) GetByUID(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error) {
	if opts.PreviewRef != "" {
		return f.upstream.GetByUID(ctx, docType, uid, opts)
	}

	key := DocumentKey(docType, uid)

	var cached models.PostDetail
	if err := f.cache.Get(key, &cached); err == nil {
		return &cached, nil
	} else if err != ErrMiss {
		log.Printf("cache: read %s: %v", key, err)
	}

	detail, err := f.upstream.GetByUID(ctx, docType, uid, opts)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(key, detail); err != nil {
		log.Printf("cache: write %s: %v", key, err)
	}

	return detail, nil
}
