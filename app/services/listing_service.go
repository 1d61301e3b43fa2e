package services

import (
	"context"
	"errors"
	"sync"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
)

// ErrLoadInFlight is returned when LoadMore is called while a previous
// call is still waiting on the content API.
var ErrLoadInFlight = errors.New("listing: load already in flight")

// ErrNoMorePosts is returned when LoadMore is called after the cursor
// has been exhausted. Callers should check HasMore first; the error is
// the guard rail, not the protocol.
var ErrNoMorePosts = errors.New("listing: no more posts")

// ListingService accumulates post summaries page by page. It holds the
// opaque next-page cursor between calls and never re-orders or
// de-duplicates what the API returned: a misbehaving backend that
// repeats uids is passed through as-is.
type ListingService struct {
	fetcher  cms.Fetcher
	docType  string
	pageSize int

	mu        sync.Mutex
	loading   bool
	fetched   bool
	cursor    string
	summaries []models.PostSummary
}

// NewListingService creates a ListingService for the given content type.
func NewListingService(fetcher cms.Fetcher, docType string, pageSize int) *ListingService {
	if pageSize < 1 {
		pageSize = 20
	}
	return &ListingService{
		fetcher:  fetcher,
		docType:  docType,
		pageSize: pageSize,
	}
}

// LoadMore fetches the next page and appends its summaries after the
// stored sequence. The append happens only on success: a failed fetch
// leaves both the sequence and the cursor untouched. Only one load may
// be in flight at a time; the cursor is captured before the fetch and
// updated only after it resolves.
func (s *ListingService) LoadMore(ctx context.Context) ([]models.PostSummary, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrLoadInFlight
	}
	if s.fetched && s.cursor == "" {
		s.mu.Unlock()
		return nil, ErrNoMorePosts
	}
	cursor := s.cursor
	s.loading = true
	s.mu.Unlock()

	page, err := s.fetcher.Query(ctx, s.docType, cms.QueryOptions{
		Order:    cms.OrderDesc,
		PageSize: s.pageSize,
		Cursor:   cursor,
		Fields:   []string{"title", "subtitle", "author"},
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return nil, err
	}

	s.summaries = append(s.summaries, page.Results...)
	s.cursor = page.NextCursor
	s.fetched = true

	return page.Results, nil
}

// Posts returns a copy of the accumulated summaries in fetch order.
func (s *ListingService) Posts() []models.PostSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PostSummary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

// HasMore reports whether another LoadMore call may be issued. Before
// the first load it is always true.
func (s *ListingService) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.fetched || s.cursor != ""
}

// Cursor returns the current opaque next-page cursor, empty when the
// listing is exhausted or not yet loaded.
func (s *ListingService) Cursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}
