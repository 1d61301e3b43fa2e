package services

import (
	"context"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
)

// mockFetcher is a scriptable cms.Fetcher for service tests. Query
// calls are recorded; responses come from queryFn (or pages consumed in
// order when queryFn is nil).
type mockFetcher struct {
	pages   []*cms.Page
	queryFn func(ctx context.Context, docType string, opts cms.QueryOptions) (*cms.Page, error)
	getFn   func(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error)

	queries []cms.QueryOptions
}

func (m *mockFetcher) Query(ctx context.Context, docType string, opts cms.QueryOptions) (*cms.Page, error) {
	m.queries = append(m.queries, opts)
	if m.queryFn != nil {
		return m.queryFn(ctx, docType, opts)
	}
	if len(m.pages) == 0 {
		return &cms.Page{}, nil
	}
	page := m.pages[0]
	m.pages = m.pages[1:]
	return page, nil
}

func (m *mockFetcher) GetByUID(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error) {
	if m.getFn != nil {
		return m.getFn(ctx, docType, uid, opts)
	}
	return nil, &cms.NotFoundError{Type: docType, UID: uid}
}

func summary(uid, title string) models.PostSummary {
	return models.PostSummary{UID: uid, Title: title}
}
