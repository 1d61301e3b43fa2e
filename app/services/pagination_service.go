package services

import (
	"context"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
)

// PaginationService resolves sibling navigation for a post: its
// immediate predecessor and successor among documents of the same
// content type, in publication-date order.
type PaginationService struct {
	fetcher cms.Fetcher
	docType string
}

// NewPaginationService creates a PaginationService for the given
// content type.
func NewPaginationService(fetcher cms.Fetcher, docType string) *PaginationService {
	return &PaginationService{fetcher: fetcher, docType: docType}
}

// Resolve looks up both siblings of the post with the given uid. The
// two lookups are independent single-result queries: a missing
// successor never hides an existing predecessor. There is no
// wrap-around. Any query failure surfaces as-is.
func (s *PaginationService) Resolve(ctx context.Context, uid string) (models.Pagination, error) {
	next, err := s.sibling(ctx, uid, cms.OrderAsc)
	if err != nil {
		return models.Pagination{}, err
	}

	previous, err := s.sibling(ctx, uid, cms.OrderDesc)
	if err != nil {
		return models.Pagination{}, err
	}

	return models.Pagination{Previous: previous, Next: next}, nil
}

// sibling fetches at most one document positioned immediately after uid
// in the given publication order.
func (s *PaginationService) sibling(ctx context.Context, uid, order string) (*models.PageLink, error) {
	page, err := s.fetcher.Query(ctx, s.docType, cms.QueryOptions{
		Order:    order,
		PageSize: 1,
		After:    uid,
		Fields:   []string{"title"},
	})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}

	doc := page.Results[0]
	return &models.PageLink{Title: doc.Title, Href: doc.Href()}, nil
}
